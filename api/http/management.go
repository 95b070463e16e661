// Copyright 2024 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/app"
	"github.com/mendersoftware/fleetsync/client/nats"
	"github.com/mendersoftware/fleetsync/model"
)

// ManagementController contains the administrator end-points
type ManagementController struct {
	app  app.App
	nats nats.Client
}

// NewManagementController returns a new ManagementController
func NewManagementController(
	app app.App,
	nc nats.Client,
) *ManagementController {
	return &ManagementController{
		app:  app,
		nats: nc,
	}
}

// Login responds to POST /login with an admin token
func (h ManagementController) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	req := model.AdminLoginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	token, err := h.app.AdminLogin(ctx, req.Username, req.Password)
	if err == app.ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error logging in",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Dashboard responds to GET /dashboard
func (h ManagementController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}

	dashboard, err := h.app.Dashboard(ctx)
	if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error building the dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func deviceFilterFromQuery(c *gin.Context) (model.DeviceFilter, error) {
	filter := model.DeviceFilter{
		Platform:    c.Query("platform"),
		ThreatLevel: c.Query("threat_level"),
		Search:      c.Query("search"),
	}
	if v := c.Query("is_online"); v != "" {
		online, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.New("is_online must be a boolean")
		}
		filter.IsOnline = &online
	}
	return filter, filter.Validate()
}

func paginationFromQuery(c *gin.Context) model.Pagination {
	page, _ := strconv.ParseInt(c.Query("page"), 10, 64)
	perPage, _ := strconv.ParseInt(c.Query("per_page"), 10, 64)
	p := model.Pagination{Page: page, PerPage: perPage}
	p.Normalize()
	return p
}

// ListDevices responds to GET /devices
func (h ManagementController) ListDevices(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}

	filter, err := deviceFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	page, err := h.app.ListDevices(ctx, filter, paginationFromQuery(c))
	if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error listing the devices",
		})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetDevice responds to GET /devices/:deviceId
func (h ManagementController) GetDevice(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}
	deviceID := c.Param("deviceId")

	detail, err := h.app.GetDeviceDetail(ctx, deviceID)
	if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error fetching the device",
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// DeleteDevice responds to DELETE /devices/:deviceId
func (h ManagementController) DeleteDevice(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}
	deviceID := c.Param("deviceId")

	if err := h.app.DeleteDevice(ctx, deviceID); err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error deleting the device",
		})
		return
	}

	c.Writer.WriteHeader(http.StatusAccepted)
}

// Wipe responds to POST /devices/:deviceId/wipe. The confirmation code
// must match before any command is queued.
func (h ManagementController) Wipe(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}

	req := model.WipeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}
	req.DeviceID = c.Param("deviceId")
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	cmd, err := h.app.RequestWipe(ctx, req)
	if err == app.ErrInvalidConfirmation {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	} else if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error requesting the wipe",
		})
		return
	}

	publishCommand(ctx, h.nats, cmd)

	c.JSON(http.StatusCreated, cmd)
}

// BroadcastCommand responds to POST /commands. One command is created
// per targeted device; every created command is mirrored on the bus for
// immediate push delivery.
func (h ManagementController) BroadcastCommand(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}

	req := model.BroadcastRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	commands, err := h.app.BroadcastCommand(ctx, req)
	if err == app.ErrNoDevicesSelected {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	} else if err == app.ErrInvalidCommand || err == app.ErrDeviceNotFound ||
		err == app.ErrWipeNotConfirmed {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error broadcasting the command",
		})
		return
	}

	result := model.BroadcastResult{
		CommandIDs: make(map[string]string, len(commands)),
	}
	for i := range commands {
		publishCommand(ctx, h.nats, &commands[i])
		result.CommandIDs[commands[i].DeviceID] = commands[i].ID
	}

	c.JSON(http.StatusCreated, result)
}

// Stats responds to GET /stats
func (h ManagementController) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if adminIdentity(c) == nil {
		return
	}

	hours, _ := strconv.Atoi(c.Query("hours"))
	stats, err := h.app.Stats(ctx, hours)
	if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error computing the stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

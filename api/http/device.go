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

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/app"
	"github.com/mendersoftware/fleetsync/client/nats"
	"github.com/mendersoftware/fleetsync/model"
)

// HTTP errors
var (
	ErrDeviceMismatch = errors.New(
		"the device id does not match the authenticated device")
)

// DeviceController contains the device-facing end-points
type DeviceController struct {
	app  app.App
	nats nats.Client
}

// NewDeviceController returns a new DeviceController
func NewDeviceController(app app.App, nc nats.Client) *DeviceController {
	return &DeviceController{app: app, nats: nc}
}

// Register responds to POST /register
func (h DeviceController) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	req := model.RegisterRequest{}
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

	device, tokens, err := h.app.RegisterDevice(ctx, req)
	if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error registering the device",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"device": device,
		"tokens": tokens,
	})
}

// Login responds to POST /login
func (h DeviceController) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	req := struct {
		DeviceID string `json:"device_id"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil || req.DeviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "device_id is required",
		})
		return
	}

	tokens, err := h.app.LoginDevice(ctx, req.DeviceID)
	if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error logging in the device",
		})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Refresh responds to POST /auth/refresh
func (h DeviceController) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	req := struct {
		RefreshToken string `json:"refresh_token"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "refresh_token is required",
		})
		return
	}

	tokens, err := h.app.RefreshTokens(ctx, req.RefreshToken)
	if err == app.ErrInvalidToken || err == app.ErrTokenExpired ||
		err == app.ErrDeviceNotFound {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": app.ErrInvalidToken.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error refreshing the tokens",
		})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout responds to POST /logout
func (h DeviceController) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	idata := deviceIdentity(c)
	if idata == nil {
		return
	}

	if err := h.app.LogoutDevice(ctx, idata.Subject); err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error logging out the device",
		})
		return
	}

	c.Writer.WriteHeader(http.StatusNoContent)
}

// Sync responds to POST /sync
func (h DeviceController) Sync(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	idata := deviceIdentity(c)
	if idata == nil {
		return
	}

	req := model.SyncRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}
	if req.DeviceID == "" {
		req.DeviceID = idata.Subject
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	if req.DeviceID != idata.Subject {
		c.JSON(http.StatusForbidden, gin.H{
			"error": ErrDeviceMismatch.Error(),
		})
		return
	}

	response, err := h.app.SyncDevice(ctx, req)
	if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error synchronizing the device",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ReportStatus responds to POST /status
func (h DeviceController) ReportStatus(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	idata := deviceIdentity(c)
	if idata == nil {
		return
	}

	status := model.StatusSnapshot{}
	if err := c.ShouldBindJSON(&status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}

	assessment, err := h.app.ReportStatus(ctx, idata.Subject, status)
	if err == app.ErrDeviceNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	} else if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error processing the status report",
		})
		return
	}

	publishAdminEvent(ctx, h.nats, model.EventDeviceStatusUpdate, gin.H{
		"device_id":    idata.Subject,
		"threat_level": assessment.ThreatLevel,
		"status":       status,
	})

	c.JSON(http.StatusOK, assessment)
}

// Acknowledge responds to POST /commands/ack. Repeated acknowledgements
// of the same command succeed without effect.
func (h DeviceController) Acknowledge(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	idata := deviceIdentity(c)
	if idata == nil {
		return
	}

	ack := model.CommandAck{}
	if err := c.ShouldBindJSON(&ack); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": errors.Wrap(err, "invalid payload").Error(),
		})
		return
	}
	if err := ack.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	cmd, err := h.app.AcknowledgeCommand(ctx, idata.Subject, ack)
	if err != nil {
		l.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "error acknowledging the command",
		})
		return
	}
	if cmd != nil {
		publishAdminEvent(ctx, h.nats, model.EventCommandCompleted, cmd)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

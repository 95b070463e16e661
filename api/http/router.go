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
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mendersoftware/go-lib-micro/accesslog"
	"github.com/mendersoftware/go-lib-micro/requestid"

	"github.com/mendersoftware/fleetsync/app"
	"github.com/mendersoftware/fleetsync/client/nats"
)

// API URL used by the HTTP router
const (
	APIURLDevices    = "/api/devices/v1/fleetsync"
	APIURLInternal   = "/api/internal/v1/fleetsync"
	APIURLManagement = "/api/management/v1/fleetsync"

	APIURLDevicesRegister    = APIURLDevices + "/register"
	APIURLDevicesLogin       = APIURLDevices + "/login"
	APIURLDevicesRefresh     = APIURLDevices + "/auth/refresh"
	APIURLDevicesLogout      = APIURLDevices + "/logout"
	APIURLDevicesSync        = APIURLDevices + "/sync"
	APIURLDevicesStatus      = APIURLDevices + "/status"
	APIURLDevicesCommandsAck = APIURLDevices + "/commands/ack"
	APIURLDevicesPush        = APIURLDevices + "/push"

	APIURLInternalAlive  = APIURLInternal + "/alive"
	APIURLInternalHealth = APIURLInternal + "/health"

	APIURLManagementLogin      = APIURLManagement + "/login"
	APIURLManagementDashboard  = APIURLManagement + "/dashboard"
	APIURLManagementDevices    = APIURLManagement + "/devices"
	APIURLManagementDevice     = APIURLManagement + "/devices/:deviceId"
	APIURLManagementDeviceWipe = APIURLManagement + "/devices/:deviceId/wipe"
	APIURLManagementCommands   = APIURLManagement + "/commands"
	APIURLManagementStats      = APIURLManagement + "/stats"
)

// NewRouter returns the gin router
func NewRouter(
	fleetApp app.App,
	natsClient nats.Client,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	router := gin.New()
	router.Use(accesslog.Middleware())
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(IdentityMiddleware(fleetApp))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowCredentials: true,
		AllowHeaders: []string{
			"Accept",
			"Allow",
			"Content-Type",
			"Origin",
			"Authorization",
			"Accept-Encoding",
			"Access-Control-Request-Headers",
			"Header-Access-Control-Request",
		},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowWebSockets: true,
		ExposeHeaders: []string{
			"Location",
			"Link",
		},
		MaxAge: time.Hour * 12,
	}))

	status := NewStatusController(fleetApp)
	router.GET(APIURLInternalAlive, status.Alive)
	router.GET(APIURLInternalHealth, status.Health)

	device := NewDeviceController(fleetApp, natsClient)
	router.POST(APIURLDevicesRegister, device.Register)
	router.POST(APIURLDevicesLogin, device.Login)
	router.POST(APIURLDevicesRefresh, device.Refresh)
	router.POST(APIURLDevicesLogout, device.Logout)
	router.POST(APIURLDevicesSync, device.Sync)
	router.POST(APIURLDevicesStatus, device.ReportStatus)
	router.POST(APIURLDevicesCommandsAck, device.Acknowledge)

	push := NewPushController(fleetApp, natsClient)
	router.GET(APIURLDevicesPush, push.Connect)

	management := NewManagementController(fleetApp, natsClient)
	router.POST(APIURLManagementLogin, management.Login)
	router.GET(APIURLManagementDashboard, management.Dashboard)
	router.GET(APIURLManagementDevices, management.ListDevices)
	router.GET(APIURLManagementDevice, management.GetDevice)
	router.DELETE(APIURLManagementDevice, management.DeleteDevice)
	router.POST(APIURLManagementDeviceWipe, management.Wipe)
	router.POST(APIURLManagementCommands, management.BroadcastCommand)
	router.GET(APIURLManagementStats, management.Stats)

	return router, nil
}

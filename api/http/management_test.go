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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mendersoftware/fleetsync/app"
	app_mocks "github.com/mendersoftware/fleetsync/app/mocks"
	nats_mocks "github.com/mendersoftware/fleetsync/client/nats/mocks"
	"github.com/mendersoftware/fleetsync/model"
)

func TestManagementLogin(t *testing.T) {
	testCases := []struct {
		Name     string
		Body     interface{}
		Token    string
		AppError error

		HTTPStatus int
	}{
		{
			Name: "ok",
			Body: model.AdminLoginRequest{
				Username: "admin",
				Password: "letmein",
			},
			Token: "signed-admin-token",

			HTTPStatus: http.StatusOK,
		},
		{
			Name: "ko, wrong credentials",
			Body: model.AdminLoginRequest{
				Username: "admin",
				Password: "wrong",
			},
			AppError: app.ErrInvalidCredentials,

			HTTPStatus: http.StatusUnauthorized,
		},
		{
			Name: "ko, missing password",
			Body: model.AdminLoginRequest{Username: "admin"},

			HTTPStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			mockApp := &app_mocks.App{}
			if tc.HTTPStatus != http.StatusBadRequest {
				mockApp.On("AdminLogin", contextMatcher(),
					"admin", mock.AnythingOfType("string")).
					Return(tc.Token, tc.AppError)
			}

			router, _ := NewRouter(mockApp, &nats_mocks.Client{})

			body, _ := json.Marshal(tc.Body)
			req, _ := http.NewRequest("POST",
				"http://localhost"+APIURLManagementLogin,
				bytes.NewReader(body))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusOK {
				response := map[string]string{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Equal(t, tc.Token, response["token"])
			}

			mockApp.AssertExpectations(t)
		})
	}
}

func TestManagementDashboard(t *testing.T) {
	dashboard := &model.Dashboard{
		TotalDevices:  5,
		OnlineDevices: 2,
		ThreatLevels:  map[string]int64{"low": 5},
	}

	testCases := []struct {
		Name          string
		Authorization string
		Identity      *model.Identity

		Dashboard      *model.Dashboard
		DashboardError error

		HTTPStatus int
	}{
		{
			Name:          "ok",
			Authorization: "Bearer " + adminToken,
			Identity:      adminIdentityFor("admin"),

			Dashboard: dashboard,

			HTTPStatus: http.StatusOK,
		},
		{
			Name: "ko, anonymous",

			HTTPStatus: http.StatusUnauthorized,
		},
		{
			Name:          "ko, device token",
			Authorization: "Bearer " + deviceToken,
			Identity:      deviceIdentityFor("device-1"),

			HTTPStatus: http.StatusForbidden,
		},
		{
			Name:          "ko, app error",
			Authorization: "Bearer " + adminToken,
			Identity:      adminIdentityFor("admin"),

			DashboardError: errors.New("aggregation failed"),

			HTTPStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			mockApp := &app_mocks.App{}
			if tc.Authorization != "" {
				mockApp.On("ValidateToken", contextMatcher(),
					mock.AnythingOfType("string")).
					Return(tc.Identity, nil)
			}
			if tc.Identity != nil && tc.Identity.IsAdmin {
				mockApp.On("Dashboard", contextMatcher()).
					Return(tc.Dashboard, tc.DashboardError)
			}

			router, _ := NewRouter(mockApp, &nats_mocks.Client{})

			req, _ := http.NewRequest("GET",
				"http://localhost"+APIURLManagementDashboard, nil)
			if tc.Authorization != "" {
				req.Header.Set(headerAuthorization, tc.Authorization)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusOK {
				response := &model.Dashboard{}
				_ = json.Unmarshal(w.Body.Bytes(), response)
				assert.Equal(t, tc.Dashboard, response)
			}

			mockApp.AssertExpectations(t)
		})
	}
}

func TestManagementListDevices(t *testing.T) {
	page := &model.DevicePage{
		Devices: []model.DeviceListItem{
			{
				Device:      model.Device{ID: "device-1", Platform: "android"},
				HealthScore: 80,
			},
		},
		Page:       1,
		PerPage:    20,
		TotalCount: 1,
	}

	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", contextMatcher(), adminToken).
		Return(adminIdentityFor("admin"), nil)
	mockApp.On("ListDevices", contextMatcher(),
		mock.MatchedBy(func(filter model.DeviceFilter) bool {
			return filter.Platform == "android" &&
				filter.IsOnline != nil && *filter.IsOnline
		}),
		model.Pagination{Page: 1, PerPage: 20},
	).Return(page, nil)

	router, _ := NewRouter(mockApp, &nats_mocks.Client{})

	req, _ := http.NewRequest("GET",
		"http://localhost"+APIURLManagementDevices+
			"?platform=android&is_online=true", nil)
	req.Header.Set(headerAuthorization, "Bearer "+adminToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	response := &model.DevicePage{}
	_ = json.Unmarshal(w.Body.Bytes(), response)
	assert.Equal(t, page, response)

	mockApp.AssertExpectations(t)
}

func TestManagementListDevicesBadFilter(t *testing.T) {
	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", contextMatcher(), adminToken).
		Return(adminIdentityFor("admin"), nil)

	router, _ := NewRouter(mockApp, &nats_mocks.Client{})

	req, _ := http.NewRequest("GET",
		"http://localhost"+APIURLManagementDevices+"?is_online=banana", nil)
	req.Header.Set(headerAuthorization, "Bearer "+adminToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockApp.AssertExpectations(t)
}

func TestManagementGetDevice(t *testing.T) {
	testCases := []struct {
		Name     string
		DeviceID string

		Detail      *model.DeviceDetail
		DetailError error

		HTTPStatus int
	}{
		{
			Name:     "ok",
			DeviceID: "device-1",

			Detail: &model.DeviceDetail{
				Device:          model.Device{ID: "device-1"},
				PendingCommands: []model.Command{},
				HealthScore:     70,
			},

			HTTPStatus: http.StatusOK,
		},
		{
			Name:     "ko, not found",
			DeviceID: "device-2",

			DetailError: app.ErrDeviceNotFound,

			HTTPStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			mockApp := &app_mocks.App{}
			mockApp.On("ValidateToken", contextMatcher(), adminToken).
				Return(adminIdentityFor("admin"), nil)
			mockApp.On("GetDeviceDetail", contextMatcher(), tc.DeviceID).
				Return(tc.Detail, tc.DetailError)

			router, _ := NewRouter(mockApp, &nats_mocks.Client{})

			url := strings.Replace(
				APIURLManagementDevice, ":deviceId", tc.DeviceID, 1)
			req, _ := http.NewRequest("GET", "http://localhost"+url, nil)
			req.Header.Set(headerAuthorization, "Bearer "+adminToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusOK {
				response := &model.DeviceDetail{}
				_ = json.Unmarshal(w.Body.Bytes(), response)
				assert.Equal(t, tc.Detail, response)
			}

			mockApp.AssertExpectations(t)
		})
	}
}

func TestManagementWipe(t *testing.T) {
	testCases := []struct {
		Name     string
		DeviceID string
		Body     model.WipeRequest

		WipeCommand *model.Command
		WipeError   error

		PublishesCommand bool
		HTTPStatus       int
	}{
		{
			Name:     "ok",
			DeviceID: "device-abc123",
			Body: model.WipeRequest{
				ConfirmationCode: "ABC123",
				Reason:           "stolen",
			},

			WipeCommand: &model.Command{
				ID:       "cmd-1",
				DeviceID: "device-abc123",
				Command:  model.CommandWipe,
				Priority: model.PriorityHigh,
			},

			PublishesCommand: true,
			HTTPStatus:       http.StatusCreated,
		},
		{
			Name:     "ko, wrong confirmation code",
			DeviceID: "device-abc123",
			Body: model.WipeRequest{
				ConfirmationCode: "WRONG1",
			},

			WipeError: app.ErrInvalidConfirmation,

			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name:     "ko, missing confirmation code",
			DeviceID: "device-abc123",
			Body:     model.WipeRequest{},

			HTTPStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			mockApp := &app_mocks.App{}
			mockApp.On("ValidateToken", contextMatcher(), adminToken).
				Return(adminIdentityFor("admin"), nil)
			if tc.Body.ConfirmationCode != "" {
				mockApp.On("RequestWipe", contextMatcher(),
					mock.MatchedBy(func(req model.WipeRequest) bool {
						return req.DeviceID == tc.DeviceID &&
							req.ConfirmationCode == tc.Body.ConfirmationCode
					}),
				).Return(tc.WipeCommand, tc.WipeError)
			}

			nc := &nats_mocks.Client{}
			if tc.PublishesCommand {
				nc.On("Publish",
					model.GetCommandSubject(tc.DeviceID),
					mock.AnythingOfType("[]uint8")).Return(nil)
			}

			router, _ := NewRouter(mockApp, nc)

			url := strings.Replace(
				APIURLManagementDeviceWipe, ":deviceId", tc.DeviceID, 1)
			body, _ := json.Marshal(tc.Body)
			req, _ := http.NewRequest("POST",
				"http://localhost"+url, bytes.NewReader(body))
			req.Header.Set(headerAuthorization, "Bearer "+adminToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			mockApp.AssertExpectations(t)
			nc.AssertExpectations(t)
		})
	}
}

func TestManagementBroadcastCommand(t *testing.T) {
	commands := []model.Command{
		{ID: "cmd-1", DeviceID: "device-1", Command: model.CommandActivate},
		{ID: "cmd-2", DeviceID: "device-2", Command: model.CommandActivate},
	}

	testCases := []struct {
		Name string
		Body model.BroadcastRequest

		Commands       []model.Command
		BroadcastError error

		HTTPStatus int
	}{
		{
			Name: "ok",
			Body: model.BroadcastRequest{
				DeviceIDs: []string{"device-1", "device-2"},
				Command:   model.CommandActivate,
			},

			Commands: commands,

			HTTPStatus: http.StatusCreated,
		},
		{
			Name: "ko, no targets",
			Body: model.BroadcastRequest{
				Command: model.CommandActivate,
			},

			BroadcastError: app.ErrNoDevicesSelected,

			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name: "ko, unknown command",
			Body: model.BroadcastRequest{
				DeviceIDs: []string{"device-1"},
				Command:   "reboot",
			},

			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name: "ko, wipe cannot be broadcast",
			Body: model.BroadcastRequest{
				DeviceIDs: []string{"device-1", "device-2"},
				Command:   model.CommandWipe,
			},

			BroadcastError: app.ErrWipeNotConfirmed,

			HTTPStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			mockApp := &app_mocks.App{}
			mockApp.On("ValidateToken", contextMatcher(), adminToken).
				Return(adminIdentityFor("admin"), nil)
			if tc.Body.Command != "reboot" {
				mockApp.On("BroadcastCommand", contextMatcher(),
					mock.AnythingOfType("model.BroadcastRequest")).
					Return(tc.Commands, tc.BroadcastError)
			}

			nc := &nats_mocks.Client{}
			for _, cmd := range tc.Commands {
				nc.On("Publish",
					model.GetCommandSubject(cmd.DeviceID),
					mock.AnythingOfType("[]uint8")).Return(nil)
			}

			router, _ := NewRouter(mockApp, nc)

			body, _ := json.Marshal(tc.Body)
			req, _ := http.NewRequest("POST",
				"http://localhost"+APIURLManagementCommands,
				bytes.NewReader(body))
			req.Header.Set(headerAuthorization, "Bearer "+adminToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			if tc.HTTPStatus == http.StatusCreated {
				response := model.BroadcastResult{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Len(t, response.CommandIDs, len(tc.Commands))
				assert.Equal(t, "cmd-1", response.CommandIDs["device-1"])
			}

			mockApp.AssertExpectations(t)
			nc.AssertExpectations(t)
		})
	}
}

func TestManagementDeleteDevice(t *testing.T) {
	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", contextMatcher(), adminToken).
		Return(adminIdentityFor("admin"), nil)
	mockApp.On("DeleteDevice", contextMatcher(), "device-1").
		Return(nil)

	router, _ := NewRouter(mockApp, &nats_mocks.Client{})

	url := strings.Replace(APIURLManagementDevice, ":deviceId", "device-1", 1)
	req, _ := http.NewRequest("DELETE", "http://localhost"+url, nil)
	req.Header.Set(headerAuthorization, "Bearer "+adminToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)

	mockApp.AssertExpectations(t)
}

func TestManagementStats(t *testing.T) {
	stats := &model.Stats{
		PeriodHours:   48,
		Syncs:         10,
		StatusReports: 3,
		Commands:      2,
	}

	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", contextMatcher(), adminToken).
		Return(adminIdentityFor("admin"), nil)
	mockApp.On("Stats", contextMatcher(), 48).Return(stats, nil)

	router, _ := NewRouter(mockApp, &nats_mocks.Client{})

	req, _ := http.NewRequest("GET",
		"http://localhost"+APIURLManagementStats+"?hours=48", nil)
	req.Header.Set(headerAuthorization, "Bearer "+adminToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	response := &model.Stats{}
	_ = json.Unmarshal(w.Body.Bytes(), response)
	assert.Equal(t, stats, response)

	mockApp.AssertExpectations(t)
}

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
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	natsio "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/fleetsync/app"
	app_mocks "github.com/mendersoftware/fleetsync/app/mocks"
	nats_mocks "github.com/mendersoftware/fleetsync/client/nats/mocks"
	"github.com/mendersoftware/fleetsync/model"
)

func dialPush(t *testing.T, mockApp *app_mocks.App, nc *nats_mocks.Client,
) (*websocket.Conn, func()) {
	router, _ := NewRouter(mockApp, nc)
	srv := httptest.NewServer(router)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url+APIURLDevicesPush, nil)
	if err != nil {
		srv.Close()
		t.Fatal(err)
	}
	return ws, func() {
		ws.Close()
		// let the server side run its cleanup
		time.Sleep(100 * time.Millisecond)
		srv.Close()
	}
}

func sendEvent(t *testing.T, ws *websocket.Conn, event string, data interface{}) {
	frame, err := model.NewPushEvent(event, data)
	assert.NoError(t, err)
	assert.NoError(t, ws.WriteJSON(frame))
}

func readEvent(t *testing.T, ws *websocket.Conn) *model.PushEvent {
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	event := &model.PushEvent{}
	if err := ws.ReadJSON(event); err != nil {
		t.Fatal(err)
	}
	return event
}

func TestPushPingPong(t *testing.T) {
	mockApp := &app_mocks.App{}
	nc := &nats_mocks.Client{}

	ws, teardown := dialPush(t, mockApp, nc)
	defer teardown()

	sendEvent(t, ws, model.EventDevicePing, nil)

	pong := readEvent(t, ws)
	assert.Equal(t, model.EventDevicePong, pong.Event)

	mockApp.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestPushPongKeepsConnectionAlive(t *testing.T) {
	mockApp := &app_mocks.App{}
	nc := &nats_mocks.Client{}

	ws, teardown := dialPush(t, mockApp, nc)
	defer teardown()

	// an unsolicited pong runs the pong handler on the reading end of
	// the connection; the session must stay usable afterwards
	err := ws.WriteControl(websocket.PongMessage, nil,
		time.Now().Add(time.Second))
	assert.NoError(t, err)

	sendEvent(t, ws, model.EventDevicePing, nil)
	pong := readEvent(t, ws)
	assert.Equal(t, model.EventDevicePong, pong.Event)

	mockApp.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestPushDeviceRegister(t *testing.T) {
	var busChan chan *natsio.Msg

	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", mock.Anything, deviceToken).
		Return(deviceIdentityFor("device-1"), nil)
	mockApp.On("SetDevicePresence", mock.Anything, "device-1", true).
		Return(nil)
	mockApp.On("SetDevicePresence", mock.Anything, "device-1", false).
		Return(nil)

	nc := &nats_mocks.Client{}
	nc.On("ChanSubscribe", model.GetCommandSubject("device-1"),
		mock.AnythingOfType("chan *nats.Msg")).
		Run(func(args mock.Arguments) {
			busChan = args.Get(1).(chan *natsio.Msg)
		}).
		Return(&natsio.Subscription{}, nil)
	// device:connected and device:disconnected fleet events
	nc.On("Publish", model.AdminEventsSubject,
		mock.AnythingOfType("[]uint8")).Return(nil)

	ws, teardown := dialPush(t, mockApp, nc)

	sendEvent(t, ws, model.EventDeviceRegister,
		model.PushRegisterRequest{Token: deviceToken})

	registered := readEvent(t, ws)
	assert.Equal(t, model.EventDeviceRegistered, registered.Event)
	response := map[string]string{}
	_ = json.Unmarshal(registered.Data, &response)
	assert.Equal(t, "device-1", response["device_id"])

	// a command published on the bus reaches the device immediately
	cmd := model.Command{
		ID:       "cmd-1",
		DeviceID: "device-1",
		Command:  model.CommandWipe,
		Priority: model.PriorityHigh,
	}
	data, err := msgpack.Marshal(model.CommandEnvelope{Command: cmd})
	assert.NoError(t, err)
	busChan <- &natsio.Msg{
		Subject: model.GetCommandSubject("device-1"),
		Data:    data,
	}

	sent := readEvent(t, ws)
	assert.Equal(t, model.EventCommandSent, sent.Event)
	delivered := model.Command{}
	_ = json.Unmarshal(sent.Data, &delivered)
	assert.Equal(t, cmd.ID, delivered.ID)
	assert.Equal(t, cmd.Command, delivered.Command)

	teardown()

	mockApp.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestPushDeviceRegisterBadToken(t *testing.T) {
	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", mock.Anything, "garbage").
		Return(nil, app.ErrInvalidToken)

	ws, teardown := dialPush(t, mockApp, &nats_mocks.Client{})
	defer teardown()

	sendEvent(t, ws, model.EventDeviceRegister,
		model.PushRegisterRequest{Token: "garbage"})

	errEvent := readEvent(t, ws)
	assert.Equal(t, model.EventError, errEvent.Event)
	response := map[string]string{}
	_ = json.Unmarshal(errEvent.Data, &response)
	assert.Equal(t, app.ErrInvalidToken.Error(), response["error"])

	mockApp.AssertExpectations(t)
}

func TestPushAdminExecuteCommand(t *testing.T) {
	cmd := &model.Command{
		ID:       "cmd-1",
		DeviceID: "device-1",
		Command:  model.CommandActivate,
		Priority: model.PriorityNormal,
	}

	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", mock.Anything, adminToken).
		Return(adminIdentityFor("admin"), nil)
	mockApp.On("EnqueueCommand", mock.Anything, "device-1",
		model.CommandActivate, map[string]interface{}(nil), "").
		Return(cmd, nil)

	nc := &nats_mocks.Client{}
	nc.On("ChanSubscribe", model.AdminEventsSubject,
		mock.AnythingOfType("chan *nats.Msg")).
		Return(&natsio.Subscription{}, nil)
	nc.On("Publish", model.GetCommandSubject("device-1"),
		mock.AnythingOfType("[]uint8")).Return(nil)

	ws, teardown := dialPush(t, mockApp, nc)
	defer teardown()

	sendEvent(t, ws, model.EventAdminAuthenticate,
		model.PushAdminAuthRequest{Token: adminToken})

	authenticated := readEvent(t, ws)
	assert.Equal(t, model.EventAdminAuthenticated, authenticated.Event)

	sendEvent(t, ws, model.EventCommandExecute, model.PushCommandRequest{
		DeviceID: "device-1",
		Command:  model.CommandActivate,
	})

	sent := readEvent(t, ws)
	assert.Equal(t, model.EventCommandSent, sent.Event)
	delivered := model.Command{}
	_ = json.Unmarshal(sent.Data, &delivered)
	assert.Equal(t, cmd.ID, delivered.ID)

	mockApp.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestPushAdminWipeRejected(t *testing.T) {
	mockApp := &app_mocks.App{}
	mockApp.On("ValidateToken", mock.Anything, adminToken).
		Return(adminIdentityFor("admin"), nil)
	mockApp.On("EnqueueCommand", mock.Anything, "device-1",
		model.CommandWipe, map[string]interface{}(nil), "").
		Return(nil, app.ErrWipeNotConfirmed)

	nc := &nats_mocks.Client{}
	nc.On("ChanSubscribe", model.AdminEventsSubject,
		mock.AnythingOfType("chan *nats.Msg")).
		Return(&natsio.Subscription{}, nil)

	ws, teardown := dialPush(t, mockApp, nc)
	defer teardown()

	sendEvent(t, ws, model.EventAdminAuthenticate,
		model.PushAdminAuthRequest{Token: adminToken})

	authenticated := readEvent(t, ws)
	assert.Equal(t, model.EventAdminAuthenticated, authenticated.Event)

	sendEvent(t, ws, model.EventCommandExecute, model.PushCommandRequest{
		DeviceID: "device-1",
		Command:  model.CommandWipe,
	})

	// the wipe never reaches the queue and nothing hits the bus
	errEvent := readEvent(t, ws)
	assert.Equal(t, model.EventError, errEvent.Event)
	response := map[string]string{}
	_ = json.Unmarshal(errEvent.Data, &response)
	assert.Equal(t, app.ErrWipeNotConfirmed.Error(), response["error"])

	mockApp.AssertExpectations(t)
	nc.AssertExpectations(t)
}

func TestPushCommandRequiresAdmin(t *testing.T) {
	mockApp := &app_mocks.App{}

	ws, teardown := dialPush(t, mockApp, &nats_mocks.Client{})
	defer teardown()

	sendEvent(t, ws, model.EventCommandExecute, model.PushCommandRequest{
		DeviceID: "device-1",
		Command:  model.CommandActivate,
	})

	errEvent := readEvent(t, ws)
	assert.Equal(t, model.EventError, errEvent.Event)

	mockApp.AssertExpectations(t)
}

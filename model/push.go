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

package model

import (
	"encoding/json"
)

// Client-originated push channel events
const (
	EventDeviceRegister     = "device:register"
	EventDeviceStatus       = "device:status"
	EventDevicePing         = "device:ping"
	EventAdminAuthenticate  = "admin:authenticate"
	EventCommandExecute     = "command:execute"
	EventCommandAcknowledge = "command:acknowledge"
)

// Server-originated push channel events
const (
	EventDeviceRegistered   = "device:registered"
	EventAdminAuthenticated = "admin:authenticated"
	EventDevicePong         = "device:pong"
	EventCommandSent        = "command:sent"
	EventError              = "error"
	EventDeviceConnected    = "device:connected"
	EventDeviceDisconnected = "device:disconnected"
	EventCommandCompleted   = "command:completed"
	EventDeviceStatusUpdate = "device:status_update"
)

// PushEvent is one frame on the push channel. Data is decoded lazily
// depending on Event.
type PushEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewPushEvent builds a frame from an event name and a JSON-marshalable
// payload
func NewPushEvent(event string, data interface{}) (*PushEvent, error) {
	var (
		raw json.RawMessage
		err error
	)
	if data != nil {
		raw, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}
	return &PushEvent{Event: event, Data: raw}, nil
}

// PushRegisterRequest identifies a device connection; the token goes
// through the same validation as REST requests
type PushRegisterRequest struct {
	Token string `json:"token"`
}

// PushAdminAuthRequest identifies an admin connection with an admin JWT
type PushAdminAuthRequest struct {
	Token string `json:"token"`
}

// PushCommandRequest is an admin-originated command on the push channel
type PushCommandRequest struct {
	DeviceID   string                 `json:"device_id"`
	Command    string                 `json:"command"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Priority   string                 `json:"priority,omitempty"`
}

// CommandEnvelope is the msgpack payload published on the command bus
// when a command is created out-of-band; connected websocket handlers
// forward it to the device immediately.
type CommandEnvelope struct {
	Command Command `msgpack:"command"`
}

// AdminEventEnvelope is the msgpack payload published on the admin
// events subject and fanned out to connected admin sockets
type AdminEventEnvelope struct {
	Event string          `msgpack:"event"`
	Data  json.RawMessage `msgpack:"data"`
}

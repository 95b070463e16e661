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
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Command names accepted by the queue
const (
	CommandActivate     = "activate"
	CommandDeactivate   = "deactivate"
	CommandWipe         = "wipe"
	CommandUpdateConfig = "update_config"
	CommandReportStatus = "report_status"
)

// Values for the command priority attribute
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Values for the command status attribute
const (
	CommandStatusPending   = "pending"
	CommandStatusCompleted = "completed"
	CommandStatusFailed    = "failed"
)

// wipeConfirmationLength is the number of trailing device id characters
// the confirmation code is derived from
const wipeConfirmationLength = 6

// Command is an administrator-issued instruction queued for a device
type Command struct {
	ID         string                 `json:"id" bson:"_id"`
	DeviceID   string                 `json:"device_id" bson:"device_id"`
	Command    string                 `json:"command" bson:"command"`
	Parameters map[string]interface{} `json:"parameters,omitempty" bson:"parameters,omitempty"`
	Priority   string                 `json:"priority" bson:"priority"`
	Status     string                 `json:"status" bson:"status"`
	Result     string                 `json:"result,omitempty" bson:"result,omitempty"`
	CreatedTs  time.Time              `json:"created_ts" bson:"created_ts"`
	ExecutedTs *time.Time             `json:"executed_ts,omitempty" bson:"executed_ts,omitempty"`
}

func (cmd Command) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DeviceID, validation.Required),
		validation.Field(&cmd.Command, validation.Required, validation.In(
			CommandActivate,
			CommandDeactivate,
			CommandWipe,
			CommandUpdateConfig,
			CommandReportStatus,
		)),
		validation.Field(&cmd.Priority, validation.In(
			PriorityLow, PriorityNormal, PriorityHigh,
		)),
	)
}

// WipeConfirmationCode derives the confirmation code an operator has to
// supply before a wipe command is accepted for the device.
func WipeConfirmationCode(deviceID string) string {
	id := deviceID
	if len(id) > wipeConfirmationLength {
		id = id[len(id)-wipeConfirmationLength:]
	}
	return strings.ToUpper(id)
}

// CommandAck is a device's acknowledgement of a delivered command
type CommandAck struct {
	CommandID string `json:"command_id"`
	Executed  bool   `json:"executed"`
	Result    string `json:"result,omitempty"`
}

func (a CommandAck) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.CommandID, validation.Required),
	)
}

// CommandOutcome is one row of the dashboard command outcome table
type CommandOutcome struct {
	Command string `json:"command" bson:"command"`
	Status  string `json:"status" bson:"status"`
	Count   int64  `json:"count" bson:"count"`
}

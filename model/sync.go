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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Activity types for the audit log feed
const (
	ActivityTypeSync    = "sync"
	ActivityTypeCommand = "command"
	ActivityTypeStatus  = "status"
)

// SyncRequest is the payload of a periodic device sync
type SyncRequest struct {
	DeviceID  string                 `json:"device_id"`
	Timestamp *time.Time             `json:"timestamp,omitempty"`
	Config    map[string]interface{} `json:"config,omitempty"`
	Status    *StatusSnapshot        `json:"status,omitempty"`
}

func (r SyncRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeviceID, validation.Required),
	)
}

// SyncResponse carries everything a device needs until its next poll
type SyncResponse struct {
	Commands      []Command              `json:"commands"`
	Config        map[string]interface{} `json:"config,omitempty"`
	ConfigVersion int64                  `json:"config_version"`
	NextSyncInMs  int                    `json:"next_sync_in_ms"`
	ServerTime    time.Time              `json:"server_time"`
}

// SyncLog is an append-only record of one device sync call
type SyncLog struct {
	ID         string    `json:"id" bson:"_id"`
	DeviceID   string    `json:"device_id" bson:"device_id"`
	ClientTime time.Time `json:"client_time" bson:"client_time"`
	HadConfig  bool      `json:"had_config" bson:"had_config"`
	CreatedTs  time.Time `json:"created_ts" bson:"created_ts"`
}

// StatusSnapshot is a device's self-reported security state
type StatusSnapshot struct {
	BatteryLevel   int  `json:"battery_level,omitempty"`
	StorageFreeMb  int  `json:"storage_free_mb,omitempty"`
	IsLockedOut    bool `json:"is_locked_out"`
	AccessAttempts int  `json:"access_attempts"`
}

// StatusReport is an append-only record of one reported status snapshot
// together with the threat level derived from it
type StatusReport struct {
	ID          string         `json:"id" bson:"_id"`
	DeviceID    string         `json:"device_id" bson:"device_id"`
	Status      StatusSnapshot `json:"status" bson:"status"`
	ThreatLevel string         `json:"threat_level" bson:"threat_level"`
	CreatedTs   time.Time      `json:"created_ts" bson:"created_ts"`
}

// ThreatAssessment is returned to the device after a status report
type ThreatAssessment struct {
	ThreatLevel     string   `json:"threat_level"`
	Recommendations []string `json:"recommendations"`
}

// Activity is one row of the merged recent-activity feed
type Activity struct {
	Type      string    `json:"type" bson:"type"`
	DeviceID  string    `json:"device_id" bson:"device_id"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedTs time.Time `json:"created_ts" bson:"created_ts"`
}

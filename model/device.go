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

// Values for the device threat level attribute
const (
	ThreatLevelLow    = "low"
	ThreatLevelMedium = "medium"
	ThreatLevelHigh   = "high"
)

// GetCommandSubject returns the NATS subject commands for a device are
// published on
func GetCommandSubject(deviceID string) string {
	return strings.Join([]string{"commands", deviceID}, ".")
}

// AdminEventsSubject is the NATS subject fleet events for administrators
// are published on
const AdminEventsSubject = "admin.events"

// Device represents a registered device and its attributes
type Device struct {
	ID             string            `json:"device_id" bson:"_id"`
	Platform       string            `json:"platform" bson:"platform"`
	AppVersion     string            `json:"app_version" bson:"app_version"`
	SecurityConfig map[string]string `json:"security_config,omitempty" bson:"security_config,omitempty"`
	IsOnline       bool              `json:"is_online" bson:"is_online"`
	ThreatLevel    string            `json:"threat_level" bson:"threat_level"`
	LastSeenTs     time.Time         `json:"last_seen_ts" bson:"last_seen_ts"`
	CreatedTs      time.Time         `json:"created_ts" bson:"created_ts,omitempty"`
	UpdatedTs      time.Time         `json:"updated_ts" bson:"updated_ts,omitempty"`
}

// RegisterRequest is the payload of a device registration
type RegisterRequest struct {
	DeviceID       string            `json:"device_id"`
	AppVersion     string            `json:"app_version"`
	Platform       string            `json:"platform"`
	SecurityConfig map[string]string `json:"security_config,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeviceID, validation.Required),
		validation.Field(&r.Platform, validation.Required),
		validation.Field(&r.AppVersion, validation.Required),
	)
}

// DeviceFilter narrows down device listings and broadcast targets
type DeviceFilter struct {
	IsOnline    *bool  `json:"is_online,omitempty"`
	Platform    string `json:"platform,omitempty"`
	ThreatLevel string `json:"threat_level,omitempty"`
	Search      string `json:"search,omitempty"`
}

func (f DeviceFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ThreatLevel, validation.In(
			ThreatLevelLow, ThreatLevelMedium, ThreatLevelHigh,
		)),
	)
}

// DeviceListItem is a device decorated with queue and health information
// for the admin listing
type DeviceListItem struct {
	Device
	PendingCommands int64 `json:"pending_commands"`
	HealthScore     int   `json:"health_score"`
}

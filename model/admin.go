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
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Pagination defaults and bounds for admin listings
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 200
)

// Pagination selects a page of an admin listing
type Pagination struct {
	Page    int64 `json:"page"`
	PerPage int64 `json:"per_page"`
}

// Normalize clamps the pagination parameters to their bounds
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	} else if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// DevicePage is one page of the admin device listing
type DevicePage struct {
	Devices    []DeviceListItem `json:"devices"`
	Page       int64            `json:"page"`
	PerPage    int64            `json:"per_page"`
	TotalCount int64            `json:"total_count"`
}

// DeviceDetail is the admin view of a single device
type DeviceDetail struct {
	Device          Device        `json:"device"`
	CurrentConfig   *DeviceConfig `json:"current_config,omitempty"`
	PendingCommands []Command     `json:"pending_commands"`
	HealthScore     int           `json:"health_score"`
}

// Dashboard aggregates fleet-wide state for administrators
type Dashboard struct {
	TotalDevices    int64            `json:"total_devices"`
	OnlineDevices   int64            `json:"online_devices"`
	OfflineDevices  int64            `json:"offline_devices"`
	ThreatLevels    map[string]int64 `json:"threat_levels"`
	Platforms       map[string]int64 `json:"platforms"`
	RecentActivity  []Activity       `json:"recent_activity"`
	CommandOutcomes []CommandOutcome `json:"command_outcomes"`
}

// Stats counts fleet events within a reporting window
type Stats struct {
	PeriodHours   int   `json:"period_hours"`
	Syncs         int64 `json:"syncs"`
	StatusReports int64 `json:"status_reports"`
	Commands      int64 `json:"commands"`
}

// BroadcastRequest creates one command per targeted device. Devices are
// selected explicitly by id or by filter, not both.
type BroadcastRequest struct {
	DeviceIDs  []string               `json:"device_ids,omitempty"`
	Filter     *DeviceFilter          `json:"filter,omitempty"`
	Command    string                 `json:"command"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Priority   string                 `json:"priority,omitempty"`
}

func (r BroadcastRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Command, validation.Required, validation.In(
			CommandActivate,
			CommandDeactivate,
			CommandWipe,
			CommandUpdateConfig,
			CommandReportStatus,
		)),
		validation.Field(&r.Priority, validation.In(
			PriorityLow, PriorityNormal, PriorityHigh,
		)),
	)
}

// BroadcastResult maps each targeted device to its created command id
type BroadcastResult struct {
	CommandIDs map[string]string `json:"command_ids"`
}

// WipeRequest asks for a wipe command with its two-step confirmation code
type WipeRequest struct {
	DeviceID         string `json:"device_id"`
	ConfirmationCode string `json:"confirmation_code"`
	Reason           string `json:"reason,omitempty"`
}

func (r WipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeviceID, validation.Required),
		validation.Field(&r.ConfirmationCode, validation.Required),
	)
}

// AdminLoginRequest authenticates an administrator
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r AdminLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

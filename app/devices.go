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

package app

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/model"
)

// GetDevice returns a device
func (a *app) GetDevice(ctx context.Context, deviceID string) (*model.Device, error) {
	device, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}
	return device, nil
}

// DeleteDevice removes a device and its credentials; device records are
// otherwise never deleted
func (a *app) DeleteDevice(ctx context.Context, deviceID string) error {
	if err := a.store.DeleteTokens(ctx, deviceID); err != nil {
		return errors.Wrap(err, "failed to delete device tokens")
	}
	return a.store.DeleteDevice(ctx, deviceID)
}

// TouchDevice refreshes the last-seen timestamp and flips the device
// online; it runs on every authenticated request
func (a *app) TouchDevice(ctx context.Context, deviceID string) error {
	return a.store.SetDevicePresence(ctx, deviceID, true, clock.Now().UTC())
}

// SetDevicePresence marks the device online or offline; the transition
// time becomes the new last-seen timestamp
func (a *app) SetDevicePresence(ctx context.Context, deviceID string, online bool) error {
	return a.store.SetDevicePresence(ctx, deviceID, online, clock.Now().UTC())
}

// Health score penalties
const (
	healthPenaltyThreatHigh    = 40
	healthPenaltyThreatMedium  = 20
	healthPenaltyOffline       = 30
	healthPenaltyStaleDay      = 20
	healthPenaltyStaleHalfDay  = 10
	healthPenaltyBacklogLarge  = 15
	healthPenaltyBacklogSmall  = 5
	healthBacklogLargeCommands = 5
	healthBacklogSmallCommands = 2
)

// HealthScore computes the bounded [0,100] health heuristic from registry
// and queue state. It is a pure function used only for reporting.
func HealthScore(device *model.Device, pendingCommands int64, now time.Time) int {
	score := 100

	switch device.ThreatLevel {
	case model.ThreatLevelHigh:
		score -= healthPenaltyThreatHigh
	case model.ThreatLevelMedium:
		score -= healthPenaltyThreatMedium
	}

	if !device.IsOnline {
		score -= healthPenaltyOffline
	}

	lastSeenAge := now.Sub(device.LastSeenTs)
	if lastSeenAge > 24*time.Hour {
		score -= healthPenaltyStaleDay
	} else if lastSeenAge > 12*time.Hour {
		score -= healthPenaltyStaleHalfDay
	}

	if pendingCommands > healthBacklogLargeCommands {
		score -= healthPenaltyBacklogLarge
	} else if pendingCommands > healthBacklogSmallCommands {
		score -= healthPenaltyBacklogSmall
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return score
}

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

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/model"
)

// Thresholds for the threat level derivation
const (
	threatAccessAttemptsHigh   = 5
	threatAccessAttemptsMedium = 2
)

var threatRecommendations = map[string][]string{
	model.ThreatLevelHigh: {
		"rotate the device credentials",
		"review the recent access attempts",
		"consider a remote wipe if the device is compromised",
	},
	model.ThreatLevelMedium: {},
	model.ThreatLevelLow:    {},
}

// EvaluateThreatLevel derives the discrete threat level from a device's
// self-reported signals
func EvaluateThreatLevel(status model.StatusSnapshot) string {
	if status.IsLockedOut || status.AccessAttempts > threatAccessAttemptsHigh {
		return model.ThreatLevelHigh
	}
	if status.AccessAttempts > threatAccessAttemptsMedium {
		return model.ThreatLevelMedium
	}
	return model.ThreatLevelLow
}

// ReportStatus appends the snapshot to the status log, writes the derived
// threat level to the registry and returns the assessment
func (a *app) ReportStatus(
	ctx context.Context,
	deviceID string,
	status model.StatusSnapshot,
) (*model.ThreatAssessment, error) {
	l := log.FromContext(ctx)

	device, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}

	level := EvaluateThreatLevel(status)

	err = a.store.InsertStatusReport(ctx, &model.StatusReport{
		ID:          uuid.New().String(),
		DeviceID:    deviceID,
		Status:      status,
		ThreatLevel: level,
		CreatedTs:   clock.Now().UTC(),
	})
	if err != nil {
		l.Warnf("failed to record status report for device %s: %s",
			deviceID, err.Error())
	}

	if err := a.store.SetThreatLevel(ctx, deviceID, level); err != nil {
		return nil, errors.Wrap(err, "failed to update the threat level")
	}

	return &model.ThreatAssessment{
		ThreatLevel:     level,
		Recommendations: threatRecommendations[level],
	}, nil
}

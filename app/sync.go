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

// SyncDevice runs one poll cycle for a device: it records the sync,
// touches the registry, appends an optionally supplied configuration
// version, and returns the pending commands together with the current
// server configuration. A failing audit-log write does not abort the
// rest of the cycle.
func (a *app) SyncDevice(
	ctx context.Context,
	req model.SyncRequest,
) (*model.SyncResponse, error) {
	l := log.FromContext(ctx)
	now := clock.Now().UTC()

	clientTime := now
	if req.Timestamp != nil {
		clientTime = req.Timestamp.UTC()
	}

	device, err := a.store.GetDevice(ctx, req.DeviceID)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}

	err = a.store.InsertSyncLog(ctx, &model.SyncLog{
		ID:         uuid.New().String(),
		DeviceID:   req.DeviceID,
		ClientTime: clientTime,
		HadConfig:  req.Config != nil,
		CreatedTs:  now,
	})
	if err != nil {
		l.Warnf("failed to record sync for device %s: %s",
			req.DeviceID, err.Error())
	}

	if err := a.TouchDevice(ctx, req.DeviceID); err != nil {
		l.Warnf("failed to touch device %s: %s", req.DeviceID, err.Error())
	}

	if req.Config != nil {
		if err := a.appendConfig(ctx, req.DeviceID, req.Config); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if _, err := a.ReportStatus(ctx, req.DeviceID, *req.Status); err != nil {
			l.Warnf("failed to record status for device %s: %s",
				req.DeviceID, err.Error())
		}
	}

	commands, err := a.store.GetPendingCommands(ctx, req.DeviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch pending commands")
	}

	response := &model.SyncResponse{
		Commands:     commands,
		NextSyncInMs: a.SyncIntervalMs,
		ServerTime:   now,
	}

	current, err := a.store.GetLatestConfig(ctx, req.DeviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch current config")
	}
	if current != nil {
		response.Config = current.Config
		response.ConfigVersion = current.Version
	}

	return response, nil
}

// appendConfig inserts the payload at the next version for the device.
// Configuration history is append-only; versions start at 1 and never
// repeat.
func (a *app) appendConfig(
	ctx context.Context,
	deviceID string,
	config map[string]interface{},
) error {
	current, err := a.store.GetLatestConfig(ctx, deviceID)
	if err != nil {
		return errors.Wrap(err, "failed to read current config version")
	}
	var version int64 = 1
	if current != nil {
		version = current.Version + 1
	}

	err = a.store.InsertConfig(ctx, &model.DeviceConfig{
		ID:        uuid.New().String(),
		DeviceID:  deviceID,
		Config:    config,
		Version:   version,
		CreatedTs: clock.Now().UTC(),
	})
	return errors.Wrap(err, "failed to append config version")
}

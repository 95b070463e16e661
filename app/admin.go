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

// recentActivityLimit is the size of the dashboard activity feed
const recentActivityLimit = 20

// defaultStatsPeriodHours is the reporting window when none is given
const defaultStatsPeriodHours = 24

// Dashboard aggregates fleet-wide statistics. It only reads.
func (a *app) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	total, err := a.store.CountDevices(ctx, model.DeviceFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count devices")
	}
	online := true
	onlineCount, err := a.store.CountDevices(ctx,
		model.DeviceFilter{IsOnline: &online})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count online devices")
	}

	threatLevels, err := a.store.AggregateDevices(ctx, "threat_level")
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate threat levels")
	}
	platforms, err := a.store.AggregateDevices(ctx, "platform")
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate platforms")
	}

	activity, err := a.store.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch recent activity")
	}

	outcomes, err := a.store.AggregateCommandOutcomes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate command outcomes")
	}

	return &model.Dashboard{
		TotalDevices:    total,
		OnlineDevices:   onlineCount,
		OfflineDevices:  total - onlineCount,
		ThreatLevels:    threatLevels,
		Platforms:       platforms,
		RecentActivity:  activity,
		CommandOutcomes: outcomes,
	}, nil
}

// ListDevices returns one page of the filtered device listing, each
// device decorated with its pending command count and health score
func (a *app) ListDevices(
	ctx context.Context,
	filter model.DeviceFilter,
	page model.Pagination,
) (*model.DevicePage, error) {
	page.Normalize()

	devices, total, err := a.store.ListDevices(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	now := clock.Now().UTC()
	items := make([]model.DeviceListItem, 0, len(devices))
	for i := range devices {
		pending, err := a.store.CountPendingCommands(ctx, devices[i].ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count pending commands")
		}
		items = append(items, model.DeviceListItem{
			Device:          devices[i],
			PendingCommands: pending,
			HealthScore:     HealthScore(&devices[i], pending, now),
		})
	}

	return &model.DevicePage{
		Devices:    items,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalCount: total,
	}, nil
}

// GetDeviceDetail returns a device with its current configuration,
// pending commands and health score
func (a *app) GetDeviceDetail(
	ctx context.Context,
	deviceID string,
) (*model.DeviceDetail, error) {
	device, err := a.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	config, err := a.store.GetLatestConfig(ctx, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch current config")
	}
	pending, err := a.store.GetPendingCommands(ctx, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch pending commands")
	}

	return &model.DeviceDetail{
		Device:          *device,
		CurrentConfig:   config,
		PendingCommands: pending,
		HealthScore: HealthScore(device,
			int64(len(pending)), clock.Now().UTC()),
	}, nil
}

// BroadcastCommand enqueues one command per targeted device. Targets are
// either the explicit device ids or every device matching the filter.
// Wipes cannot be broadcast, they only go through RequestWipe one device
// at a time.
func (a *app) BroadcastCommand(
	ctx context.Context,
	req model.BroadcastRequest,
) ([]model.Command, error) {
	targets, err := a.resolveTargets(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrNoDevicesSelected
	}

	commands := make([]model.Command, 0, len(targets))
	for _, deviceID := range targets {
		cmd, err := a.EnqueueCommand(ctx,
			deviceID, req.Command, req.Parameters, req.Priority)
		if err == ErrInvalidCommand || err == ErrDeviceNotFound ||
			err == ErrWipeNotConfirmed {
			return commands, err
		} else if err != nil {
			return commands, errors.Wrapf(err,
				"failed to enqueue command for device %s", deviceID)
		}
		commands = append(commands, *cmd)
	}
	return commands, nil
}

func (a *app) resolveTargets(
	ctx context.Context,
	req model.BroadcastRequest,
) ([]string, error) {
	if len(req.DeviceIDs) > 0 {
		seen := make(map[string]bool, len(req.DeviceIDs))
		targets := make([]string, 0, len(req.DeviceIDs))
		for _, id := range req.DeviceIDs {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			targets = append(targets, id)
		}
		return targets, nil
	}

	if req.Filter == nil {
		return nil, nil
	}

	// page through the filtered listing to collect every match
	targets := []string{}
	page := model.Pagination{Page: 1, PerPage: model.MaxPerPage}
	for {
		devices, _, err := a.store.ListDevices(ctx, *req.Filter, page)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve broadcast targets")
		}
		for i := range devices {
			targets = append(targets, devices[i].ID)
		}
		if int64(len(devices)) < page.PerPage {
			break
		}
		page.Page++
	}
	return targets, nil
}

// Stats counts fleet events within the reporting window
func (a *app) Stats(ctx context.Context, periodHours int) (*model.Stats, error) {
	if periodHours <= 0 {
		periodHours = defaultStatsPeriodHours
	}
	since := clock.Now().UTC().Add(-time.Duration(periodHours) * time.Hour)

	syncs, reports, commands, err := a.store.CountsSince(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count fleet events")
	}

	return &model.Stats{
		PeriodHours:   periodHours,
		Syncs:         syncs,
		StatusReports: reports,
		Commands:      commands,
	}, nil
}

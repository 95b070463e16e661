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

package store

import (
	"context"
	"errors"
	"time"

	"github.com/mendersoftware/fleetsync/model"
)

// DataStore interface for DataStore services
//
//nolint:lll - skip line length check for interface declaration.
//go:generate ../utils/mockgen.sh
type DataStore interface {
	Ping(ctx context.Context) error

	UpsertDevice(ctx context.Context, device *model.Device) (*model.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*model.Device, error)
	DeleteDevice(ctx context.Context, deviceID string) error
	SetDevicePresence(ctx context.Context, deviceID string, online bool, lastSeen time.Time) error
	SetThreatLevel(ctx context.Context, deviceID, level string) error
	ListDevices(ctx context.Context, filter model.DeviceFilter, page model.Pagination) ([]model.Device, int64, error)
	CountDevices(ctx context.Context, filter model.DeviceFilter) (int64, error)
	AggregateDevices(ctx context.Context, field string) (map[string]int64, error)

	ReplaceTokens(ctx context.Context, deviceID string, tokens []model.DeviceToken) error
	GetToken(ctx context.Context, deviceID, tokenType, token string) (*model.DeviceToken, error)
	DeleteTokens(ctx context.Context, deviceID string) error

	InsertConfig(ctx context.Context, config *model.DeviceConfig) error
	GetLatestConfig(ctx context.Context, deviceID string) (*model.DeviceConfig, error)

	InsertCommand(ctx context.Context, cmd *model.Command) error
	GetCommand(ctx context.Context, commandID string) (*model.Command, error)
	GetPendingCommands(ctx context.Context, deviceID string) ([]model.Command, error)
	CountPendingCommands(ctx context.Context, deviceID string) (int64, error)
	SetCommandResult(ctx context.Context, deviceID, commandID, status, result string, executedTs time.Time) (bool, error)
	AggregateCommandOutcomes(ctx context.Context) ([]model.CommandOutcome, error)

	InsertSyncLog(ctx context.Context, entry *model.SyncLog) error
	InsertStatusReport(ctx context.Context, report *model.StatusReport) error
	RecentActivity(ctx context.Context, limit int) ([]model.Activity, error)
	CountsSince(ctx context.Context, since time.Time) (syncs, reports, commands int64, err error)

	Close() error
}

var (
	ErrDeviceNotFound  = errors.New("store: device not found")
	ErrTokenNotFound   = errors.New("store: token not found")
	ErrCommandNotFound = errors.New("store: command not found")
)

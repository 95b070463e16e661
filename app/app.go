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
	"github.com/mendersoftware/fleetsync/store"
	"github.com/mendersoftware/fleetsync/utils"
)

// App errors
var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidCommand      = errors.New("invalid command")
	ErrInvalidConfirmation = errors.New("invalid confirmation code")
	ErrWipeNotConfirmed    = errors.New("a wipe requires a confirmed wipe request")
	ErrNoDevicesSelected   = errors.New("no devices selected")
)

var clock utils.Clock = utils.RealClock{}

// App interface describes app objects
//
//nolint:lll
//go:generate ../utils/mockgen.sh
type App interface {
	HealthCheck(ctx context.Context) error

	RegisterDevice(ctx context.Context, req model.RegisterRequest) (*model.Device, *model.TokenPair, error)
	LoginDevice(ctx context.Context, deviceID string) (*model.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	LogoutDevice(ctx context.Context, deviceID string) error
	ValidateToken(ctx context.Context, token string) (*model.Identity, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)

	GetDevice(ctx context.Context, deviceID string) (*model.Device, error)
	DeleteDevice(ctx context.Context, deviceID string) error
	TouchDevice(ctx context.Context, deviceID string) error
	SetDevicePresence(ctx context.Context, deviceID string, online bool) error

	SyncDevice(ctx context.Context, req model.SyncRequest) (*model.SyncResponse, error)
	ReportStatus(ctx context.Context, deviceID string, status model.StatusSnapshot) (*model.ThreatAssessment, error)

	EnqueueCommand(ctx context.Context, deviceID, command string, parameters map[string]interface{}, priority string) (*model.Command, error)
	RequestWipe(ctx context.Context, req model.WipeRequest) (*model.Command, error)
	AcknowledgeCommand(ctx context.Context, deviceID string, ack model.CommandAck) (*model.Command, error)

	Dashboard(ctx context.Context) (*model.Dashboard, error)
	ListDevices(ctx context.Context, filter model.DeviceFilter, page model.Pagination) (*model.DevicePage, error)
	GetDeviceDetail(ctx context.Context, deviceID string) (*model.DeviceDetail, error)
	BroadcastCommand(ctx context.Context, req model.BroadcastRequest) ([]model.Command, error)
	Stats(ctx context.Context, periodHours int) (*model.Stats, error)
}

// Config holds the tunables of the fleet app
type Config struct {
	JWTSecret       string
	JWTIssuer       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SyncIntervalMs  int
	AdminUsername   string
	AdminPassword   string
}

// app is an app object
type app struct {
	store store.DataStore
	Config
}

// New initializes a new fleet control plane app
func New(ds store.DataStore, config Config) App {
	return &app{
		store:  ds,
		Config: config,
	}
}

// HealthCheck performs a health check and returns an error if it fails
func (a *app) HealthCheck(ctx context.Context) error {
	return a.store.Ping(ctx)
}

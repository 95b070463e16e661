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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mendersoftware/fleetsync/model"
	store_mocks "github.com/mendersoftware/fleetsync/store/mocks"
)

func TestHealthScore(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		Name    string
		Device  model.Device
		Pending int64
		Score   int
	}{
		{
			Name: "healthy device",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelLow,
				IsOnline:    true,
				LastSeenTs:  now,
			},
			Score: 100,
		},
		{
			Name: "offline with a medium threat",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelMedium,
				LastSeenTs:  now,
			},
			Score: 50,
		},
		{
			Name: "stale for half a day",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelLow,
				IsOnline:    true,
				LastSeenTs:  now.Add(-13 * time.Hour),
			},
			Score: 90,
		},
		{
			Name: "stale for over a day",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelLow,
				IsOnline:    true,
				LastSeenTs:  now.Add(-25 * time.Hour),
			},
			Score: 80,
		},
		{
			Name: "small command backlog",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelLow,
				IsOnline:    true,
				LastSeenTs:  now,
			},
			Pending: 3,
			Score:   95,
		},
		{
			Name: "large command backlog",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelLow,
				IsOnline:    true,
				LastSeenTs:  now,
			},
			Pending: 6,
			Score:   85,
		},
		{
			Name: "every penalty clamps at zero",
			Device: model.Device{
				ThreatLevel: model.ThreatLevelHigh,
				LastSeenTs:  now.Add(-48 * time.Hour),
			},
			Pending: 10,
			Score:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			device := tc.Device
			score := HealthScore(&device, tc.Pending, now)
			assert.Equal(t, tc.Score, score)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		})
	}
}

func TestGetDevice(t *testing.T) {
	ctx := context.Background()
	device := &model.Device{ID: "device-1"}

	ds := &store_mocks.DataStore{}
	ds.On("GetDevice", anyContext(), "device-1").Return(device, nil)
	ds.On("GetDevice", anyContext(), "device-2").Return(nil, nil)

	a := New(ds, testConfig())

	found, err := a.GetDevice(ctx, "device-1")
	assert.NoError(t, err)
	assert.Equal(t, device, found)

	_, err = a.GetDevice(ctx, "device-2")
	assert.Equal(t, ErrDeviceNotFound, err)

	ds.AssertExpectations(t)
}

func TestDeleteDeviceRevokesTokens(t *testing.T) {
	ctx := context.Background()

	ds := &store_mocks.DataStore{}
	ds.On("DeleteTokens", anyContext(), "device-1").Return(nil)
	ds.On("DeleteDevice", anyContext(), "device-1").Return(nil)

	a := New(ds, testConfig())
	err := a.DeleteDevice(ctx, "device-1")
	assert.NoError(t, err)

	ds.AssertExpectations(t)
}

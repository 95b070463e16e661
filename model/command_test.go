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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandValidate(t *testing.T) {
	testCases := []struct {
		Name    string
		Command Command
		Valid   bool
	}{
		{
			Name: "ok",
			Command: Command{
				DeviceID: "device-1",
				Command:  CommandActivate,
				Priority: PriorityNormal,
			},
			Valid: true,
		},
		{
			Name: "ok, no priority",
			Command: Command{
				DeviceID: "device-1",
				Command:  CommandWipe,
			},
			Valid: true,
		},
		{
			Name: "ko, unknown command",
			Command: Command{
				DeviceID: "device-1",
				Command:  "reboot",
			},
			Valid: false,
		},
		{
			Name: "ko, unknown priority",
			Command: Command{
				DeviceID: "device-1",
				Command:  CommandActivate,
				Priority: "urgent",
			},
			Valid: false,
		},
		{
			Name: "ko, missing device",
			Command: Command{
				Command: CommandActivate,
			},
			Valid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := tc.Command.Validate()
			if tc.Valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestWipeConfirmationCode(t *testing.T) {
	testCases := []struct {
		Name     string
		DeviceID string
		Code     string
	}{
		{
			Name:     "long id",
			DeviceID: "device-abc123",
			Code:     "ABC123",
		},
		{
			Name:     "exactly six characters",
			DeviceID: "abcdef",
			Code:     "ABCDEF",
		},
		{
			Name:     "shorter than six characters",
			DeviceID: "ab1",
			Code:     "AB1",
		},
		{
			Name:     "already upper case",
			DeviceID: "DEVICE-XYZ999",
			Code:     "XYZ999",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Code, WipeConfirmationCode(tc.DeviceID))
		})
	}
}

func TestCommandAckValidate(t *testing.T) {
	err := CommandAck{CommandID: "cmd-1", Executed: true}.Validate()
	assert.NoError(t, err)

	err = CommandAck{Executed: true}.Validate()
	assert.Error(t, err)
}

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

func TestPaginationNormalize(t *testing.T) {
	testCases := []struct {
		Name string
		In   Pagination
		Out  Pagination
	}{
		{
			Name: "defaults",
			In:   Pagination{},
			Out:  Pagination{Page: DefaultPage, PerPage: DefaultPerPage},
		},
		{
			Name: "negative values",
			In:   Pagination{Page: -2, PerPage: -5},
			Out:  Pagination{Page: DefaultPage, PerPage: DefaultPerPage},
		},
		{
			Name: "per_page above the cap",
			In:   Pagination{Page: 3, PerPage: 1000},
			Out:  Pagination{Page: 3, PerPage: MaxPerPage},
		},
		{
			Name: "unchanged",
			In:   Pagination{Page: 2, PerPage: 50},
			Out:  Pagination{Page: 2, PerPage: 50},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			p := tc.In
			p.Normalize()
			assert.Equal(t, tc.Out, p)
		})
	}
}

func TestBroadcastRequestValidate(t *testing.T) {
	err := BroadcastRequest{
		DeviceIDs: []string{"device-1"},
		Command:   CommandUpdateConfig,
	}.Validate()
	assert.NoError(t, err)

	err = BroadcastRequest{
		DeviceIDs: []string{"device-1"},
		Command:   "reboot",
	}.Validate()
	assert.Error(t, err)

	err = BroadcastRequest{DeviceIDs: []string{"device-1"}}.Validate()
	assert.Error(t, err)
}

func TestWipeRequestValidate(t *testing.T) {
	err := WipeRequest{
		DeviceID:         "device-1",
		ConfirmationCode: "VICE-1",
	}.Validate()
	assert.NoError(t, err)

	err = WipeRequest{DeviceID: "device-1"}.Validate()
	assert.Error(t, err)
}

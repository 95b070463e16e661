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

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	app_mocks "github.com/mendersoftware/fleetsync/app/mocks"
	nats_mocks "github.com/mendersoftware/fleetsync/client/nats/mocks"
)

func TestAlive(t *testing.T) {
	router, _ := NewRouter(&app_mocks.App{}, &nats_mocks.Client{})
	req, err := http.NewRequest("GET", "http://localhost"+APIURLInternalAlive, nil)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealth(t *testing.T) {
	testCases := []struct {
		Name string

		HealthCheckError error
		HTTPStatus       int
	}{
		{
			Name:       "ok",
			HTTPStatus: http.StatusNoContent,
		},
		{
			Name:             "ko",
			HealthCheckError: errors.New("connection refused"),
			HTTPStatus:       http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			app := &app_mocks.App{}
			app.On("HealthCheck",
				mock.MatchedBy(func(_ context.Context) bool {
					return true
				}),
			).Return(tc.HealthCheckError)

			router, _ := NewRouter(app, &nats_mocks.Client{})
			req, err := http.NewRequest("GET",
				"http://localhost"+APIURLInternalHealth, nil)
			if !assert.NoError(t, err) {
				t.FailNow()
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			app.AssertExpectations(t)
		})
	}
}

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
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Values for the token type attribute
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// DeviceToken is a persisted credential issued to a device. A token past
// its expiry is treated as absent.
type DeviceToken struct {
	ID        string    `json:"id" bson:"_id"`
	DeviceID  string    `json:"device_id" bson:"device_id"`
	Type      string    `json:"type" bson:"type"`
	Token     string    `json:"token" bson:"token"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedTs time.Time `json:"created_ts" bson:"created_ts"`
}

// TokenPair is the access/refresh pair returned to a device
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims are the JWT claims carried by both token types. Admin tokens set
// Admin and leave the device attributes empty.
type Claims struct {
	Type       string `json:"type"`
	Platform   string `json:"platform,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
	Admin      bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller attached to the request context
// after token validation
type Identity struct {
	Subject    string
	Platform   string
	AppVersion string
	IsDevice   bool
	IsAdmin    bool
}

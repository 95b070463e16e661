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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = ":8080"

	// SettingNatsURI is the config key for the nats uri
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = "nats://localhost:4222"

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://mongo:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "fleetsync"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingJWTSecret is the config key for the secret used to sign
	// device and admin tokens
	SettingJWTSecret = "jwt_secret"
	// SettingJWTSecretDefault is the default value for the JWT secret;
	// deployments must override it
	SettingJWTSecretDefault = "insecure-development-secret"

	// SettingJWTIssuer is the config key for the JWT issuer claim
	SettingJWTIssuer = "jwt_issuer"
	// SettingJWTIssuerDefault is the default value for the JWT issuer claim
	SettingJWTIssuerDefault = "fleetsync"

	// SettingAccessTokenTTL is the config key for the access token
	// lifetime, in seconds
	SettingAccessTokenTTL = "access_token_ttl"
	// SettingAccessTokenTTLDefault is the default access token lifetime (24h)
	SettingAccessTokenTTLDefault = 24 * 60 * 60

	// SettingRefreshTokenTTL is the config key for the refresh token
	// lifetime, in seconds
	SettingRefreshTokenTTL = "refresh_token_ttl"
	// SettingRefreshTokenTTLDefault is the default refresh token lifetime (7d)
	SettingRefreshTokenTTLDefault = 7 * 24 * 60 * 60

	// SettingSyncInterval is the config key for the sync interval the
	// server suggests to devices, in milliseconds
	SettingSyncInterval = "sync_interval_ms"
	// SettingSyncIntervalDefault is the default suggested sync interval
	SettingSyncIntervalDefault = 5 * 60 * 1000

	// SettingAdminUsername is the config key for the admin username
	SettingAdminUsername = "admin_username"
	// SettingAdminUsernameDefault is the default value for the admin username
	SettingAdminUsernameDefault = "admin"

	// SettingAdminPassword is the config key for the admin password;
	// admin login is rejected while it is empty
	SettingAdminPassword = "admin_password"
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingJWTSecret, Value: SettingJWTSecretDefault},
		{Key: SettingJWTIssuer, Value: SettingJWTIssuerDefault},
		{Key: SettingAccessTokenTTL, Value: SettingAccessTokenTTLDefault},
		{Key: SettingRefreshTokenTTL, Value: SettingRefreshTokenTTLDefault},
		{Key: SettingSyncInterval, Value: SettingSyncIntervalDefault},
		{Key: SettingAdminUsername, Value: SettingAdminUsernameDefault},
	}
)

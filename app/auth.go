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
	"crypto/subtle"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/model"
	"github.com/mendersoftware/fleetsync/store"
)

// issueTokens replaces all live credentials of a device with a fresh
// access/refresh pair. Superseded tokens become unusable immediately, not
// only after their expiry.
func (a *app) issueTokens(
	ctx context.Context,
	device *model.Device,
) (*model.TokenPair, error) {
	now := clock.Now().UTC()

	access, accessRecord, err := a.signToken(
		device, model.TokenTypeAccess, now, a.AccessTokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}
	refresh, refreshRecord, err := a.signToken(
		device, model.TokenTypeRefresh, now, a.RefreshTokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	err = a.store.ReplaceTokens(ctx, device.ID,
		[]model.DeviceToken{*accessRecord, *refreshRecord})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store the token pair")
	}

	return &model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (a *app) signToken(
	device *model.Device,
	tokenType string,
	now time.Time,
	ttl time.Duration,
) (string, *model.DeviceToken, error) {
	expiresAt := now.Add(ttl)
	claims := model.Claims{
		Type:       tokenType,
		Platform:   device.Platform,
		AppVersion: device.AppVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   device.ID,
			Issuer:    a.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	record := &model.DeviceToken{
		ID:        claims.ID,
		DeviceID:  device.ID,
		Type:      tokenType,
		Token:     signed,
		ExpiresAt: expiresAt,
		CreatedTs: now,
	}
	return signed, record, nil
}

func (a *app) parseToken(token string) (*model.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &model.Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf(
					"unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(a.JWTSecret), nil
		},
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*model.Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateToken verifies a bearer token and returns the caller identity.
// Device tokens additionally require a live token record: a structurally
// valid token that has been superseded or revoked is rejected. A
// successful device validation touches the registry.
func (a *app) ValidateToken(ctx context.Context, token string) (*model.Identity, error) {
	l := log.FromContext(ctx)

	claims, err := a.parseToken(token)
	if err != nil {
		return nil, err
	}

	if claims.Admin {
		return &model.Identity{
			Subject: claims.Subject,
			IsAdmin: true,
		}, nil
	}

	if claims.Type != model.TokenTypeAccess {
		l.Warnf("device %s presented a %s token for API authentication",
			claims.Subject, claims.Type)
		return nil, ErrInvalidToken
	}

	_, err = a.store.GetToken(ctx, claims.Subject, model.TokenTypeAccess, token)
	if err == store.ErrTokenNotFound {
		l.Infof("device %s presented a superseded or revoked token",
			claims.Subject)
		return nil, ErrInvalidToken
	} else if err != nil {
		return nil, err
	}

	if err := a.TouchDevice(ctx, claims.Subject); err != nil {
		l.Warnf("failed to touch device %s: %s", claims.Subject, err.Error())
	}

	return &model.Identity{
		Subject:    claims.Subject,
		Platform:   claims.Platform,
		AppVersion: claims.AppVersion,
		IsDevice:   true,
	}, nil
}

// RegisterDevice upserts the device record and issues its first token
// pair. Registration is idempotent: repeating it with the same payload
// leaves the same visible device state.
func (a *app) RegisterDevice(
	ctx context.Context,
	req model.RegisterRequest,
) (*model.Device, *model.TokenPair, error) {
	device, err := a.store.UpsertDevice(ctx, &model.Device{
		ID:             req.DeviceID,
		Platform:       req.Platform,
		AppVersion:     req.AppVersion,
		SecurityConfig: req.SecurityConfig,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to register the device")
	}

	tokens, err := a.issueTokens(ctx, device)
	if err != nil {
		return nil, nil, err
	}
	return device, tokens, nil
}

// LoginDevice issues a fresh token pair for an already registered device
func (a *app) LoginDevice(ctx context.Context, deviceID string) (*model.TokenPair, error) {
	device, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}

	tokens, err := a.issueTokens(ctx, device)
	if err != nil {
		return nil, err
	}
	if err := a.TouchDevice(ctx, deviceID); err != nil {
		log.FromContext(ctx).Warnf(
			"failed to touch device %s: %s", deviceID, err.Error())
	}
	return tokens, nil
}

// RefreshTokens exchanges a live refresh token for a new pair. A consumed
// or expired refresh token is rejected.
func (a *app) RefreshTokens(
	ctx context.Context,
	refreshToken string,
) (*model.TokenPair, error) {
	claims, err := a.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != model.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	_, err = a.store.GetToken(ctx,
		claims.Subject, model.TokenTypeRefresh, refreshToken)
	if err == store.ErrTokenNotFound {
		return nil, ErrInvalidToken
	} else if err != nil {
		return nil, err
	}

	device, err := a.store.GetDevice(ctx, claims.Subject)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}

	return a.issueTokens(ctx, device)
}

// LogoutDevice revokes all credentials of a device and marks it offline
func (a *app) LogoutDevice(ctx context.Context, deviceID string) error {
	if err := a.store.DeleteTokens(ctx, deviceID); err != nil {
		return errors.Wrap(err, "failed to revoke device tokens")
	}
	return a.SetDevicePresence(ctx, deviceID, false)
}

// AdminLogin verifies the configured admin credentials and returns a
// signed admin token. The same token is accepted by the REST middleware
// and the push channel.
func (a *app) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if a.AdminPassword == "" {
		return "", ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare(
		[]byte(username), []byte(a.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare(
		[]byte(password), []byte(a.AdminPassword)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	now := clock.Now().UTC()
	claims := model.Claims{
		Type:  model.TokenTypeAccess,
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			Issuer:    a.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.JWTSecret))
}

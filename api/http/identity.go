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
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/app"
	"github.com/mendersoftware/fleetsync/model"
)

const headerAuthorization = "Authorization"

const identityContextKey = "fleetsync_identity"

// HTTP errors
var (
	ErrMissingAuthentication = errors.New(
		"missing or invalid authorization token")
	ErrMissingAdminAuthentication = errors.New(
		"administrator credentials required")
)

// IdentityMiddleware returns a gin middleware which validates the bearer
// token, if present, and attaches the caller identity to the context.
// Requests without a token pass through anonymously; each handler
// enforces the identity kind it needs.
func IdentityMiddleware(fleetApp app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractTokenFromRequest(c.Request)
		if token == "" {
			return
		}

		ctx := c.Request.Context()
		identity, err := fleetApp.ValidateToken(ctx, token)
		if err == app.ErrInvalidToken || err == app.ErrTokenExpired {
			log.FromContext(ctx).Infof("rejected token: %s", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": ErrMissingAuthentication.Error(),
			})
			return
		} else if err != nil {
			log.FromContext(ctx).Error(
				errors.Wrap(err, "token validation failed"))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal error",
			})
			return
		}

		c.Set(identityContextKey, identity)
	}
}

func extractTokenFromRequest(req *http.Request) string {
	token := req.URL.Query().Get("token")
	if token == "" {
		auth := strings.Split(req.Header.Get(headerAuthorization), " ")
		if len(auth) == 2 && auth[0] == "Bearer" {
			token = auth[1]
		}
	}
	return token
}

func identityFromContext(c *gin.Context) *model.Identity {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*model.Identity)
	return identity
}

// deviceIdentity returns the device identity of the request or renders a
// 401 and returns nil
func deviceIdentity(c *gin.Context) *model.Identity {
	identity := identityFromContext(c)
	if identity == nil || !identity.IsDevice {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": ErrMissingAuthentication.Error(),
		})
		return nil
	}
	return identity
}

// adminIdentity returns the admin identity of the request; it renders a
// 401 for anonymous callers and a 403 for authenticated non-admins
func adminIdentity(c *gin.Context) *model.Identity {
	identity := identityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": ErrMissingAdminAuthentication.Error(),
		})
		return nil
	}
	if !identity.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error": ErrMissingAdminAuthentication.Error(),
		})
		return nil
	}
	return identity
}

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

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"

	api "github.com/mendersoftware/fleetsync/api/http"
	"github.com/mendersoftware/fleetsync/app"
	"github.com/mendersoftware/fleetsync/client/nats"
	dconfig "github.com/mendersoftware/fleetsync/config"
	"github.com/mendersoftware/fleetsync/store"
)

// InitAndRun initializes the server and runs it
func InitAndRun(conf config.Reader, dataStore store.DataStore) error {
	ctx := context.Background()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	natsClient, err := nats.NewClientWithDefaults(
		conf.GetString(dconfig.SettingNatsURI))
	if err != nil {
		return err
	}
	defer natsClient.Close()

	fleetApp := app.New(dataStore, app.Config{
		JWTSecret: conf.GetString(dconfig.SettingJWTSecret),
		JWTIssuer: conf.GetString(dconfig.SettingJWTIssuer),
		AccessTokenTTL: time.Duration(
			conf.GetInt(dconfig.SettingAccessTokenTTL)) * time.Second,
		RefreshTokenTTL: time.Duration(
			conf.GetInt(dconfig.SettingRefreshTokenTTL)) * time.Second,
		SyncIntervalMs: conf.GetInt(dconfig.SettingSyncInterval),
		AdminUsername:  conf.GetString(dconfig.SettingAdminUsername),
		AdminPassword:  conf.GetString(dconfig.SettingAdminPassword),
	})

	var listen = conf.GetString(dconfig.SettingListen)
	router, err := api.NewRouter(fleetApp, natsClient)
	if err != nil {
		l.Fatal(err)
	}
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	<-quit

	l.Info("Shutdown Server ...")

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Fatal("Server Shutdown: ", err)
	}

	return nil
}

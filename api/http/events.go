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
	"encoding/json"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/fleetsync/client/nats"
	"github.com/mendersoftware/fleetsync/model"
)

// publishCommand mirrors a freshly queued command on the command bus so
// the push channel can forward it to a connected device without waiting
// for the next poll. Publish failures are logged and swallowed: the
// command is already queued and the poll path is the retry mechanism.
func publishCommand(ctx context.Context, nc nats.Client, cmd *model.Command) {
	l := log.FromContext(ctx)

	data, err := msgpack.Marshal(model.CommandEnvelope{Command: *cmd})
	if err != nil {
		l.Error("failed to encode command envelope: ", err)
		return
	}
	if err := nc.Publish(model.GetCommandSubject(cmd.DeviceID), data); err != nil {
		l.Warnf("failed to mirror command %s on the bus: %s",
			cmd.ID, err.Error())
	}
}

// publishAdminEvent fans a fleet event out to every connected admin
// socket, across all instances
func publishAdminEvent(
	ctx context.Context,
	nc nats.Client,
	event string,
	payload interface{},
) {
	l := log.FromContext(ctx)

	raw, err := json.Marshal(payload)
	if err != nil {
		l.Error("failed to encode admin event payload: ", err)
		return
	}
	data, err := msgpack.Marshal(model.AdminEventEnvelope{
		Event: event,
		Data:  raw,
	})
	if err != nil {
		l.Error("failed to encode admin event envelope: ", err)
		return
	}
	if err := nc.Publish(model.AdminEventsSubject, data); err != nil {
		l.Warnf("failed to publish admin event %s: %s", event, err.Error())
	}
}

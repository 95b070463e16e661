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

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/mendersoftware/fleetsync/model"
	"github.com/mendersoftware/fleetsync/store"
)

// EnqueueCommand queues a command for a device. The command name must be
// part of the closed command set and the device must exist. A wipe never
// goes through here: it only enters the queue via RequestWipe, after the
// confirmation code has been checked.
func (a *app) EnqueueCommand(
	ctx context.Context,
	deviceID, command string,
	parameters map[string]interface{},
	priority string,
) (*model.Command, error) {
	if command == model.CommandWipe {
		return nil, ErrWipeNotConfirmed
	}
	return a.enqueue(ctx, deviceID, command, parameters, priority)
}

func (a *app) enqueue(
	ctx context.Context,
	deviceID, command string,
	parameters map[string]interface{},
	priority string,
) (*model.Command, error) {
	if priority == "" {
		priority = model.PriorityNormal
	}
	cmd := &model.Command{
		ID:         uuid.New().String(),
		DeviceID:   deviceID,
		Command:    command,
		Parameters: parameters,
		Priority:   priority,
		Status:     model.CommandStatusPending,
		CreatedTs:  clock.Now().UTC(),
	}
	if err := cmd.Validate(); err != nil {
		return nil, ErrInvalidCommand
	}

	device, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	} else if device == nil {
		return nil, ErrDeviceNotFound
	}

	if err := a.store.InsertCommand(ctx, cmd); err != nil {
		return nil, errors.Wrap(err, "failed to enqueue the command")
	}
	return cmd, nil
}

// RequestWipe enqueues a wipe command after validating the two-step
// confirmation code. A mismatching code never creates a command row.
func (a *app) RequestWipe(
	ctx context.Context,
	req model.WipeRequest,
) (*model.Command, error) {
	if req.ConfirmationCode != model.WipeConfirmationCode(req.DeviceID) {
		return nil, ErrInvalidConfirmation
	}

	parameters := map[string]interface{}{}
	if req.Reason != "" {
		parameters["reason"] = req.Reason
	}
	return a.enqueue(ctx,
		req.DeviceID, model.CommandWipe, parameters, model.PriorityHigh)
}

// AcknowledgeCommand transitions a pending command to completed or
// failed. The first transition wins: a duplicate or unknown ack is a
// no-op that still succeeds, so device retries over both delivery paths
// stay idempotent. The transition is scoped to the acknowledging device,
// an ack for another device's command never matches. The command is
// returned when a transition happened, nil otherwise.
func (a *app) AcknowledgeCommand(
	ctx context.Context,
	deviceID string,
	ack model.CommandAck,
) (*model.Command, error) {
	l := log.FromContext(ctx)

	status := model.CommandStatusCompleted
	if !ack.Executed {
		status = model.CommandStatusFailed
	}

	transitioned, err := a.store.SetCommandResult(ctx,
		deviceID, ack.CommandID, status, ack.Result, clock.Now().UTC())
	if err != nil {
		return nil, errors.Wrap(err, "failed to acknowledge the command")
	}
	if !transitioned {
		l.Infof("duplicate or unknown ack for command %s ignored",
			ack.CommandID)
		return nil, nil
	}

	cmd, err := a.store.GetCommand(ctx, ack.CommandID)
	if err == store.ErrCommandNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return cmd, nil
}

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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	natsio "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mendersoftware/go-lib-micro/log"

	"github.com/mendersoftware/fleetsync/app"
	"github.com/mendersoftware/fleetsync/client/nats"
	"github.com/mendersoftware/fleetsync/model"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Buffered channel size for messages forwarded from the bus
	channelSize = 50

	// Buffered channel size for server-originated frames
	sendChannelSize = 32
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PushController serves the websocket push channel. A connection starts
// anonymous and becomes a device or an admin connection through its
// first authentication event.
type PushController struct {
	app  app.App
	nats nats.Client
}

// NewPushController returns a new PushController
func NewPushController(
	app app.App,
	nc nats.Client,
) *PushController {
	return &PushController{
		app:  app,
		nats: nc,
	}
}

// pushSession is the state of one websocket connection
type pushSession struct {
	conn     *websocket.Conn
	identity *model.Identity
	sub      *natsio.Subscription
	busChan  chan *natsio.Msg
	send     chan *model.PushEvent
	done     chan struct{}
}

// Connect upgrades the request to the websocket push channel
func (h PushController) Connect(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Error(errors.Wrap(err,
			"unable to upgrade the request to websocket protocol"))
		return
	}

	sess := &pushSession{
		conn:    conn,
		busChan: make(chan *natsio.Msg, channelSize),
		send:    make(chan *model.PushEvent, sendChannelSize),
		done:    make(chan struct{}),
	}

	// the read deadline and the pong handler belong to the reading end
	// of the connection and must be in place before the reader starts
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		l.Error(err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.sessionWriter(ctx, sess)
	h.sessionReader(ctx, sess)
}

// sessionReader runs the event state machine of one connection. It owns
// the session identity and the bus subscription; cleanup happens here
// when the peer goes away.
func (h PushController) sessionReader(ctx context.Context, sess *pushSession) {
	l := log.FromContext(ctx)

	defer func() {
		close(sess.done)
		if sess.sub != nil {
			//nolint:errcheck
			sess.sub.Unsubscribe()
		}
		if sess.identity != nil && sess.identity.IsDevice {
			deviceID := sess.identity.Subject
			if err := h.app.SetDevicePresence(
				ctx, deviceID, false); err != nil {
				l.Warnf("failed to mark device %s offline: %s",
					deviceID, err.Error())
			}
			publishAdminEvent(ctx, h.nats, model.EventDeviceDisconnected,
				gin.H{"device_id": deviceID})
		}
	}()

	for {
		event := &model.PushEvent{}
		if err := sess.conn.ReadJSON(event); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway) {
				l.Warnf("push channel closed: %s", err.Error())
			}
			return
		}
		h.dispatch(ctx, sess, event)
	}
}

func (h PushController) dispatch(
	ctx context.Context,
	sess *pushSession,
	event *model.PushEvent,
) {
	var err error
	switch event.Event {
	case model.EventDevicePing:
		sess.reply(model.EventDevicePong, nil)
	case model.EventDeviceRegister:
		err = h.registerDevice(ctx, sess, event.Data)
	case model.EventAdminAuthenticate:
		err = h.authenticateAdmin(ctx, sess, event.Data)
	case model.EventDeviceStatus:
		err = h.deviceStatus(ctx, sess, event.Data)
	case model.EventCommandExecute:
		err = h.executeCommand(ctx, sess, event.Data)
	case model.EventCommandAcknowledge:
		err = h.acknowledgeCommand(ctx, sess, event.Data)
	default:
		err = errors.Errorf("unknown event %q", event.Event)
	}
	if err != nil {
		sess.reply(model.EventError, gin.H{"error": err.Error()})
	}
}

// registerDevice turns an anonymous connection into a device connection.
// The token goes through the same validation as REST requests.
func (h PushController) registerDevice(
	ctx context.Context,
	sess *pushSession,
	data json.RawMessage,
) error {
	if sess.identity != nil {
		return errors.New("connection is already authenticated")
	}
	req := model.PushRegisterRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return errors.Wrap(err, "invalid payload")
	}

	identity, err := h.app.ValidateToken(ctx, req.Token)
	if err == app.ErrInvalidToken || err == app.ErrTokenExpired {
		return err
	} else if err != nil {
		log.FromContext(ctx).Error(err)
		return errors.New("internal error")
	}
	if !identity.IsDevice {
		return errors.New("a device access token is required")
	}

	deviceID := identity.Subject
	sub, err := h.nats.ChanSubscribe(
		model.GetCommandSubject(deviceID), sess.busChan)
	if err != nil {
		log.FromContext(ctx).Error(errors.Wrap(err,
			"failed to subscribe to the command bus"))
		return errors.New("internal error")
	}
	sess.identity = identity
	sess.sub = sub

	if err := h.app.SetDevicePresence(ctx, deviceID, true); err != nil {
		log.FromContext(ctx).Warnf(
			"failed to mark device %s online: %s", deviceID, err.Error())
	}

	sess.reply(model.EventDeviceRegistered, gin.H{"device_id": deviceID})
	publishAdminEvent(ctx, h.nats, model.EventDeviceConnected,
		gin.H{"device_id": deviceID})
	return nil
}

// authenticateAdmin turns an anonymous connection into an admin
// connection subscribed to the fleet event stream
func (h PushController) authenticateAdmin(
	ctx context.Context,
	sess *pushSession,
	data json.RawMessage,
) error {
	if sess.identity != nil {
		return errors.New("connection is already authenticated")
	}
	req := model.PushAdminAuthRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return errors.Wrap(err, "invalid payload")
	}

	identity, err := h.app.ValidateToken(ctx, req.Token)
	if err == app.ErrInvalidToken || err == app.ErrTokenExpired {
		return err
	} else if err != nil {
		log.FromContext(ctx).Error(err)
		return errors.New("internal error")
	}
	if !identity.IsAdmin {
		return errors.New("an administrator token is required")
	}

	sub, err := h.nats.ChanSubscribe(model.AdminEventsSubject, sess.busChan)
	if err != nil {
		log.FromContext(ctx).Error(errors.Wrap(err,
			"failed to subscribe to the admin event stream"))
		return errors.New("internal error")
	}
	sess.identity = identity
	sess.sub = sub

	sess.reply(model.EventAdminAuthenticated, nil)
	return nil
}

// deviceStatus handles a status snapshot pushed by a device. The threat
// assessment goes back to the device and the update is fanned out to the
// admin sockets.
func (h PushController) deviceStatus(
	ctx context.Context,
	sess *pushSession,
	data json.RawMessage,
) error {
	if sess.identity == nil || !sess.identity.IsDevice {
		return errors.New("a registered device connection is required")
	}
	status := model.StatusSnapshot{}
	if err := json.Unmarshal(data, &status); err != nil {
		return errors.Wrap(err, "invalid payload")
	}

	deviceID := sess.identity.Subject
	assessment, err := h.app.ReportStatus(ctx, deviceID, status)
	if err == app.ErrDeviceNotFound {
		return err
	} else if err != nil {
		log.FromContext(ctx).Error(err)
		return errors.New("internal error")
	}

	sess.reply(model.EventDeviceStatusUpdate, assessment)
	publishAdminEvent(ctx, h.nats, model.EventDeviceStatusUpdate, gin.H{
		"device_id":    deviceID,
		"threat_level": assessment.ThreatLevel,
		"status":       status,
	})
	return nil
}

// executeCommand queues a command on behalf of a connected admin and
// mirrors it on the bus for immediate delivery
func (h PushController) executeCommand(
	ctx context.Context,
	sess *pushSession,
	data json.RawMessage,
) error {
	if sess.identity == nil || !sess.identity.IsAdmin {
		return errors.New("an authenticated admin connection is required")
	}
	req := model.PushCommandRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return errors.Wrap(err, "invalid payload")
	}

	cmd, err := h.app.EnqueueCommand(
		ctx, req.DeviceID, req.Command, req.Parameters, req.Priority)
	if err == app.ErrInvalidCommand || err == app.ErrDeviceNotFound ||
		err == app.ErrWipeNotConfirmed {
		return err
	} else if err != nil {
		log.FromContext(ctx).Error(err)
		return errors.New("internal error")
	}

	publishCommand(ctx, h.nats, cmd)
	sess.reply(model.EventCommandSent, cmd)
	return nil
}

// acknowledgeCommand records the outcome of a delivered command
func (h PushController) acknowledgeCommand(
	ctx context.Context,
	sess *pushSession,
	data json.RawMessage,
) error {
	if sess.identity == nil || !sess.identity.IsDevice {
		return errors.New("a registered device connection is required")
	}
	ack := model.CommandAck{}
	if err := json.Unmarshal(data, &ack); err != nil {
		return errors.Wrap(err, "invalid payload")
	}
	if err := ack.Validate(); err != nil {
		return err
	}

	cmd, err := h.app.AcknowledgeCommand(ctx, sess.identity.Subject, ack)
	if err != nil {
		log.FromContext(ctx).Error(err)
		return errors.New("internal error")
	}
	if cmd != nil {
		publishAdminEvent(ctx, h.nats, model.EventCommandCompleted, cmd)
	}
	return nil
}

// reply queues a server-originated frame; frames are dropped when the
// peer cannot keep up
func (sess *pushSession) reply(event string, payload interface{}) {
	frame, err := model.NewPushEvent(event, payload)
	if err != nil {
		return
	}
	select {
	case sess.send <- frame:
	default:
	}
}

// sessionWriter is the goroutine responsible for the writing end of the
// websocket. It forwards bus messages and queued frames and keeps the
// ping-pong health check going.
func (h PushController) sessionWriter(ctx context.Context, sess *pushSession) {
	l := log.FromContext(ctx)

	conn := sess.conn
	defer conn.Close()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-sess.done:
			return
		case frame := <-sess.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		case msg := <-sess.busChan:
			frame, err := busFrame(msg)
			if err != nil {
				l.Error(err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(
				websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// busFrame decodes a bus message into a push channel frame. The subject
// decides the envelope: commands for device connections, fleet events
// for admin connections.
func busFrame(msg *natsio.Msg) (*model.PushEvent, error) {
	if msg.Subject == model.AdminEventsSubject {
		envelope := model.AdminEventEnvelope{}
		if err := msgpack.Unmarshal(msg.Data, &envelope); err != nil {
			return nil, errors.Wrap(err,
				"failed to decode admin event envelope")
		}
		return &model.PushEvent{
			Event: envelope.Event,
			Data:  envelope.Data,
		}, nil
	}
	envelope := model.CommandEnvelope{}
	if err := msgpack.Unmarshal(msg.Data, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode command envelope")
	}
	return model.NewPushEvent(model.EventCommandSent, envelope.Command)
}

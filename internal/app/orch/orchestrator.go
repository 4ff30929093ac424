package orch

import (
	"context"

	"github.com/dkeye/Handshake/internal/app"
	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/dkeye/Handshake/internal/telemetry"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the connection lifecycle controller. It drives the room
// registry and sends replies and notifications through the relay. Relay
// delivery always happens after the registry call returned, never under its lock.
type Orchestrator struct {
	Sessions core.SessionDirectory
	Rooms    core.RoomRegistry
	Relay    *app.Relay
	Stats    telemetry.Sink

	// StrictSender drops signaling messages whose senderId is not the sending connection.
	StrictSender bool
}

// Connect makes sid addressable and tells the client its own id.
func (o *Orchestrator) Connect(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	o.Sessions.Register(sid, conn, cancel)
	o.Relay.Deliver(sid, domain.EventOnSession, string(sid))
}

// Disconnect is called once the transport reports sid has gone away.
// sid is removed from every room it was recorded in; each affected room's
// remaining members get one on-user-disconnect notice.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	o.Sessions.Unregister(sid)
	for {
		roomID, remaining, ok := o.Rooms.Leave(sid)
		if !ok {
			return
		}
		log.Info().Str("module", "orch").Str("sid", string(sid)).Int64("room_id", int64(roomID)).Int("remaining", len(remaining)).Msg("disconnected from room")
		if len(remaining) > 0 {
			o.Relay.Broadcast(remaining, domain.EventOnUserDisconnect, string(sid))
		}
	}
}

package orch

import (
	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateRoom opens a new room with sid as its only member and replies on-create.
func (o *Orchestrator) CreateRoom(sid core.SessionID) domain.RoomID {
	id := o.Rooms.CreateRoom(sid)
	o.Relay.Deliver(sid, domain.EventOnCreate, id)
	return id
}

// JoinRoom appends sid to an existing room and replies on-join with the
// members that were already there. A missing room gets an on-join with no data;
// rooms are never created implicitly here.
func (o *Orchestrator) JoinRoom(sid core.SessionID, id domain.RoomID) ([]core.SessionID, bool) {
	before, ok := o.Rooms.JoinRoom(sid, id)
	if !ok {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Int64("room_id", int64(id)).Msg("join: room not found")
		o.Relay.Deliver(sid, domain.EventOnJoin, nil)
		return nil, false
	}
	o.Relay.Deliver(sid, domain.EventOnJoin, before)
	return before, true
}

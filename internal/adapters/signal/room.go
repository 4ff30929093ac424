package signal

import (
	"encoding/json"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleCreateRoom(
	sid core.SessionID,
	conn *WsSignalConn,
) {
	if ctl.Limiter != nil {
		if ok, wait := ctl.Limiter.Reserve(sid); !ok {
			log.Warn().Str("module", "signal").Str("sid", string(sid)).Dur("retry_in", wait).Msg("create-room rate limited")
			ctl.sendError(conn, "rate_limited")
			return
		}
	}
	id := ctl.Orch.CreateRoom(sid)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Int64("room_id", int64(id)).Msg("create")
}

func (ctl *SignalWSController) handleJoin(
	sid core.SessionID,
	conn *WsSignalConn,
	data json.RawMessage,
) {
	var roomID domain.RoomID
	if err := json.Unmarshal(data, &roomID); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Int64("room_id", int64(roomID)).Msg("join")
	ctl.Orch.JoinRoom(sid, roomID)
}

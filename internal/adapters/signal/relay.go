package signal

import (
	"encoding/json"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleTransfer(
	sid core.SessionID,
	conn *WsSignalConn,
	kind domain.SignalKind,
	data json.RawMessage,
) {
	if len(data) == 0 {
		log.Error().Str("module", "signal").Str("sid", string(sid)).Str("kind", kind.String()).Msg("empty transfer payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if _, err := ctl.Orch.Signal(sid, kind, data); err != nil {
		ctl.sendError(conn, "bad_payload")
	}
}

func (ctl *SignalWSController) handleRemoveConnection(
	sid core.SessionID,
	conn *WsSignalConn,
	data json.RawMessage,
) {
	var receiver string
	if err := json.Unmarshal(data, &receiver); err != nil || receiver == "" {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad remove-connection payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.Orch.RemoveConnection(sid, core.SessionID(receiver))
}

package signal

import (
	"context"
	"encoding/json"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/telemetry"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleReportStatistics(
	ctx context.Context,
	sid core.SessionID,
	conn *WsSignalConn,
	data json.RawMessage,
) {
	var rec telemetry.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad statistics payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	ctl.Orch.ReportStatistics(ctx, sid, rec)
}

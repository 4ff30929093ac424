package orch

import (
	"context"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/telemetry"
	"github.com/rs/zerolog/log"
)

// ReportStatistics hands a device report to the telemetry sink. Failures are logged only.
func (o *Orchestrator) ReportStatistics(ctx context.Context, sid core.SessionID, rec telemetry.Record) {
	if o.Stats == nil {
		return
	}
	if err := o.Stats.Record(ctx, string(sid), rec); err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("record statistics")
	}
}

package orch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/rs/zerolog/log"
)

// ErrBadSignal marks a signaling payload the relay cannot route.
var ErrBadSignal = errors.New("malformed signal payload")

// Signal forwards an offer, answer or candidate to the receiver it names.
// The payload is passed through unchanged. It returns ErrBadSignal when the
// routing fields cannot be read; an unknown receiver or a rejected sender is
// a silent drop (false, nil).
func (o *Orchestrator) Signal(sid core.SessionID, kind domain.SignalKind, payload json.RawMessage) (bool, error) {
	var route domain.SignalRoute
	if err := json.Unmarshal(payload, &route); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("kind", kind.String()).Msg("bad signal payload")
		return false, fmt.Errorf("%w: %v", ErrBadSignal, err)
	}
	if route.ReceiverID == "" {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("kind", kind.String()).Msg("signal without receiverId")
		return false, fmt.Errorf("%w: missing receiverId", ErrBadSignal)
	}
	if o.StrictSender && route.SenderID != string(sid) {
		log.Warn().
			Str("module", "orch").
			Str("sid", string(sid)).
			Str("sender_id", route.SenderID).
			Str("kind", kind.String()).
			Msg("senderId does not match connection, dropped")
		return false, nil
	}
	return o.Relay.Forward(kind, core.SessionID(route.ReceiverID), payload), nil
}

// RemoveConnection tells receiver that sid is tearing down their direct link.
func (o *Orchestrator) RemoveConnection(sid, receiver core.SessionID) bool {
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("receiver_id", string(receiver)).Msg("remove connection")
	return o.Relay.NotifyRemoval(receiver, sid)
}

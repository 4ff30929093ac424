package app

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
	"github.com/rs/zerolog/log"
)

var errInvalidRaw = errors.New("raw payload is not valid JSON")

// PublishResult reports delivery stats/backpressure to the caller.
type PublishResult struct {
	SendTo  int
	Dropped []core.SessionID
}

// Relay resolves targets through the Session Directory and delivers
// encoded frames. It holds no state of its own and is fire-and-forget:
// unknown targets are dropped silently.
type Relay struct {
	Sessions core.SessionDirectory
	Policy   Policy
}

func NewRelay(sessions core.SessionDirectory, policy Policy) *Relay {
	if policy == nil {
		policy = DropPolicy{}
	}
	return &Relay{Sessions: sessions, Policy: policy}
}

// Encode wraps data into an event envelope. A json.RawMessage is spliced in
// byte-for-byte; json.Marshal would compact and HTML-escape it.
func Encode(event string, data any) (core.Frame, error) {
	env := domain.Envelope{Event: event}
	switch v := data.(type) {
	case nil:
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, errInvalidRaw
		}
		name, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		f := make(core.Frame, 0, len(name)+len(v)+20)
		f = append(f, `{"event":`...)
		f = append(f, name...)
		f = append(f, `,"data":`...)
		f = append(f, v...)
		f = append(f, '}')
		return f, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		env.Data = b
	}
	return json.Marshal(env)
}

// Forward delivers a signaling payload verbatim to receiver.
func (r *Relay) Forward(kind domain.SignalKind, receiver core.SessionID, payload json.RawMessage) bool {
	return r.Deliver(receiver, kind.ReceivedEvent(), payload)
}

// NotifyRemoval tells target that origin is tearing down their direct link.
func (r *Relay) NotifyRemoval(target, origin core.SessionID) bool {
	return r.Deliver(target, domain.EventOnConnectionRemoval, string(origin))
}

// Deliver sends one event to one session. It reports whether the frame was queued.
func (r *Relay) Deliver(sid core.SessionID, event string, data any) bool {
	f, err := Encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Str("event", event).Msg("encode")
		return false
	}
	return r.send(sid, event, f)
}

// Broadcast sends the same event once to each target.
func (r *Relay) Broadcast(targets []core.SessionID, event string, data any) PublishResult {
	res := PublishResult{}
	f, err := Encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Str("event", event).Msg("encode")
		return res
	}
	for _, sid := range targets {
		if !r.send(sid, event, f) {
			res.Dropped = append(res.Dropped, sid)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "app.relay").Str("event", event).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *Relay) send(sid core.SessionID, event string, f core.Frame) bool {
	conn, ok := r.Sessions.Lookup(sid)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("sid", string(sid)).Str("event", event).Msg("unreachable peer, dropped")
		return false
	}
	err := conn.TrySend(f)
	if err == nil {
		log.Debug().Str("module", "app.relay").Str("sid", string(sid)).Str("event", event).Msg("delivered")
		return true
	}
	if errors.Is(err, core.ErrBackpressure) {
		log.Warn().Str("module", "app.relay").Str("sid", string(sid)).Str("event", event).Msg("backpressure")
		if r.Policy.OnBackPressure(sid) == KickMember {
			r.Sessions.Cancel(sid)
		}
		return false
	}
	log.Debug().Err(err).Str("module", "app.relay").Str("sid", string(sid)).Str("event", event).Msg("send failed")
	return false
}

package domain

// SignalKind is the closed set of handshake messages the relay forwards.
type SignalKind int

const (
	SignalOffer SignalKind = iota
	SignalAnswer
	SignalCandidate
)

func (k SignalKind) String() string {
	switch k {
	case SignalOffer:
		return "offer"
	case SignalAnswer:
		return "answer"
	case SignalCandidate:
		return "candidate"
	default:
		return "unknown"
	}
}

// ReceivedEvent is the outbound event name a receiver gets for this kind.
func (k SignalKind) ReceivedEvent() string {
	switch k {
	case SignalOffer:
		return EventOnReceivedOffer
	case SignalAnswer:
		return EventOnReceivedAnswer
	default:
		return EventOnReceivedCandidate
	}
}

// SignalKindOf maps an inbound transfer-* event to its kind.
func SignalKindOf(event string) (SignalKind, bool) {
	switch event {
	case EventTransferOffer:
		return SignalOffer, true
	case EventTransferAnswer:
		return SignalAnswer, true
	case EventTransferCandidate:
		return SignalCandidate, true
	}
	return 0, false
}

// SignalRoute holds the only fields the relay reads from a signaling payload.
// Everything else (sdp, candidate, metadata) stays opaque.
type SignalRoute struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

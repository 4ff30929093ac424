package domain

import "encoding/json"

// Inbound events.
const (
	EventCreateRoom        = "create-room"
	EventJoinRoom          = "join-room"
	EventTransferOffer     = "transfer-offer"
	EventTransferAnswer    = "transfer-answer"
	EventTransferCandidate = "transfer-candidate"
	EventRemoveConnection  = "remove-connection"
	EventReportStatistics  = "report-statistics"
	EventPing              = "ping"
)

// Outbound events.
const (
	EventOnSession           = "on-session"
	EventOnCreate            = "on-create"
	EventOnJoin              = "on-join"
	EventOnUserDisconnect    = "on-user-disconnect"
	EventOnReceivedOffer     = "on-received-offer"
	EventOnReceivedAnswer    = "on-received-answer"
	EventOnReceivedCandidate = "on-received-candidate"
	EventOnConnectionRemoval = "on-connection-removal"
	EventPong                = "pong"
	EventError               = "error"
)

// Envelope is the shape of every frame on the signaling socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload is the data of an "error" event.
type ErrorPayload struct {
	Error string `json:"error"`
}

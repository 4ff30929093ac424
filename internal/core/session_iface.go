package core

import "context"

// SessionID is opaque, unique per live connection and never reused.
type SessionID string

// SessionDirectory maps live sessions to their send capability.
type SessionDirectory interface {
	Register(sid SessionID, conn SignalConnection, cancel context.CancelFunc)
	Unregister(sid SessionID) bool
	// Lookup reports false for unknown sessions; callers treat that as an unreachable peer.
	Lookup(sid SessionID) (SignalConnection, bool)
	// Cancel ends the connection-scoped context of sid, if any.
	Cancel(sid SessionID) bool
	Count() int
}

package app

import (
	"fmt"

	"github.com/dkeye/Handshake/internal/core"
)

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a session whose send buffer is full.
type Policy interface {
	OnBackPressure(sid core.SessionID) BackpressureAction
}

// DropPolicy drops the frame and keeps the session.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(core.SessionID) BackpressureAction { return DropFrame }

// KickPolicy disconnects slow sessions.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(core.SessionID) BackpressureAction { return KickMember }

// PolicyFromMode maps the backpressure config value to a Policy.
func PolicyFromMode(mode string) (Policy, error) {
	switch mode {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure mode %q", mode)
	}
}

package signal

import (
	"slices"
	"sync"
	"time"

	"github.com/dkeye/Handshake/internal/core"
)

// RoomRateLimiter caps create-room calls per session in a sliding window.
// A limit <= 0 disables it.
type RoomRateLimiter struct {
	mu       sync.Mutex
	history  map[core.SessionID][]time.Time
	limit    int
	interval time.Duration
	now      func() time.Time
}

func NewRoomRateLimiter(limit int, interval time.Duration) *RoomRateLimiter {
	return &RoomRateLimiter{
		history:  make(map[core.SessionID][]time.Time),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

// Allow records an attempt for sid unless the window is already full.
func (rl *RoomRateLimiter) Allow(sid core.SessionID) bool {
	ok, _ := rl.Reserve(sid)
	return ok
}

// Reserve is Allow that also reports how long sid has to wait when refused.
func (rl *RoomRateLimiter) Reserve(sid core.SessionID) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.interval)
	attempts := slices.DeleteFunc(rl.history[sid], func(t time.Time) bool {
		return !t.After(cutoff)
	})

	if len(attempts) >= rl.limit {
		rl.history[sid] = attempts
		return false, attempts[0].Sub(cutoff)
	}
	rl.history[sid] = append(attempts, now)
	return true, 0
}

// Forget drops the history of a session that went away.
func (rl *RoomRateLimiter) Forget(sid core.SessionID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.history, sid)
}

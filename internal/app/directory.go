package app

import (
	"context"
	"sync"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Directory is the Session Directory: session id -> send capability.
type Directory struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewDirectory() *Directory {
	return &Directory{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

func (d *Directory) Register(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.directory").Str("sid", string(sid)).Msg("registered session")
}

func (d *Directory) Unregister(sid core.SessionID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.sessions[sid]; !ok {
		return false
	}
	delete(d.sessions, sid)
	log.Info().Str("module", "app.directory").Str("sid", string(sid)).Msg("unregistered session")
	return true
}

func (d *Directory) Lookup(sid core.SessionID) (core.SignalConnection, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if e, ok := d.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

func (d *Directory) Cancel(sid core.SessionID) bool {
	d.mu.RLock()
	e, ok := d.sessions[sid]
	d.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.directory").Str("sid", string(sid)).Msg("canceled session")
	return true
}

func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}

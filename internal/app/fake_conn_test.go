package app

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	raw    []core.Frame
	full   bool
	closed bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.raw = append(c.raw, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *fakeConn) events() []domain.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Envelope, 0, len(c.raw))
	for _, f := range c.raw {
		var env domain.Envelope
		if err := json.Unmarshal(f, &env); err != nil {
			panic(err)
		}
		out = append(out, env)
	}
	return out
}

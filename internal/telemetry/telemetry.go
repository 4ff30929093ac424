// Package telemetry stores device statistics reported by connected sessions.
// The signaling core only writes here; the operator console reads.
package telemetry

import (
	"context"
	"fmt"
)

// ThermalReading is one named thermal zone.
type ThermalReading struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
}

// Record is one report-statistics event.
type Record struct {
	Timestamp int64            `json:"timestamp"`
	Battery   float64          `json:"currentBatteryStatus"`
	Thermal   []ThermalReading `json:"currentDeviceTemperature,omitempty"`
}

// Sink accepts records keyed by session id.
type Sink interface {
	Record(ctx context.Context, sessionID string, rec Record) error
}

// Store is a Sink that can be read back.
type Store interface {
	Sink
	// Snapshot returns every record grouped by session, in arrival order.
	Snapshot(ctx context.Context) (map[string][]Record, error)
	Close() error
}

// Open returns the store selected by driver ("memory" or "sqlite").
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("unknown telemetry driver %q", driver)
	}
}

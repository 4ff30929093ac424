package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists records so the console can read them after a restart.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite telemetry store needs a dsn")
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create telemetry dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS device_stats (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id   TEXT NOT NULL,
			ts           INTEGER NOT NULL,
			battery      REAL NOT NULL,
			thermal_json TEXT
		);
		CREATE INDEX IF NOT EXISTS device_stats_session ON device_stats(session_id);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create device_stats: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, sessionID string, rec Record) error {
	var thermal sql.NullString
	if len(rec.Thermal) > 0 {
		b, err := json.Marshal(rec.Thermal)
		if err != nil {
			return fmt.Errorf("encode thermal: %w", err)
		}
		thermal = sql.NullString{String: string(b), Valid: true}
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO device_stats (session_id, ts, battery, thermal_json) VALUES (?, ?, ?, ?)`,
		sessionID, rec.Timestamp, rec.Battery, thermal,
	); err != nil {
		return fmt.Errorf("insert device_stats: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Snapshot(ctx context.Context) (map[string][]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, ts, battery, thermal_json FROM device_stats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query device_stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]Record)
	for rows.Next() {
		var (
			sid     string
			rec     Record
			thermal sql.NullString
		)
		if err := rows.Scan(&sid, &rec.Timestamp, &rec.Battery, &thermal); err != nil {
			return nil, fmt.Errorf("scan device_stats: %w", err)
		}
		if thermal.Valid && thermal.String != "" {
			if err := json.Unmarshal([]byte(thermal.String), &rec.Thermal); err != nil {
				return nil, fmt.Errorf("decode thermal: %w", err)
			}
		}
		out[sid] = append(out[sid], rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Package store handles SQLite persistence of finished rounds.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"relkeys/internal/scoring"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round history. It implements
// scoring.ScoreStorage.
type Store struct {
	db *sql.DB
}

var _ scoring.ScoreStorage = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			config_hash TEXT NOT NULL,
			title TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL,
			matched INTEGER NOT NULL,
			total INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS round_matches (
			round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			PRIMARY KEY (round_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_config_hash ON rounds(config_hash);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save stores a finished round and its match latencies.
func (s *Store) Save(ctx context.Context, e scoring.ScoreHistoryEntry) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rounds (id, config_hash, title, mode, difficulty, score, won, matched, total, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RoundID,
		e.Hash,
		e.Title,
		e.Mode,
		e.Level,
		e.Score,
		boolToInt(e.Won),
		e.Matched,
		e.Total,
		e.StartedAt.Format(time.RFC3339Nano),
		e.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}

	for i, l := range e.Latencies {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO round_matches (round_id, seq, latency_ms) VALUES (?, ?, ?)`,
			e.RoundID, i, l.Milliseconds()); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
	}

	return tx.Commit()
}

// LoadByHash returns every round recorded for a configuration hash, oldest
// first.
func (s *Store) LoadByHash(ctx context.Context, hash string) ([]scoring.ScoreHistoryEntry, error) {
	return s.query(ctx, `WHERE config_hash = ? ORDER BY ended_at ASC`, hash)
}

// Recent returns the latest rounds across all configurations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]scoring.ScoreHistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.query(ctx, `ORDER BY ended_at DESC LIMIT ?`, limit)
}

func (s *Store) query(ctx context.Context, tail string, args ...any) ([]scoring.ScoreHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, config_hash, title, mode, difficulty, score, won, matched, total, started_at, ended_at
		 FROM rounds `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []scoring.ScoreHistoryEntry
	for rows.Next() {
		var e scoring.ScoreHistoryEntry
		var won int
		var startedAt, endedAt string
		if err := rows.Scan(&e.RoundID, &e.Hash, &e.Title, &e.Mode, &e.Level, &e.Score, &won, &e.Matched, &e.Total, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		e.Won = won != 0
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if e.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	for i := range entries {
		lat, err := s.latencies(ctx, entries[i].RoundID)
		if err != nil {
			return nil, err
		}
		entries[i].Latencies = lat
	}
	return entries, nil
}

func (s *Store) latencies(ctx context.Context, roundID string) ([]time.Duration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT latency_ms FROM round_matches WHERE round_id = ? ORDER BY seq`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Duration
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, err
		}
		out = append(out, time.Duration(ms)*time.Millisecond)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/fortuna/scorehub/internal/espn"
)

// PostgresStore is a Store backed by PostgreSQL for durable history.
type PostgresStore struct {
	conn *sql.DB
}

// NewPostgresStore connects, configures the pool, and bootstraps the
// schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{conn: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS standings_snapshots (
			snapshot_id BIGSERIAL PRIMARY KEY,
			sport       TEXT NOT NULL,
			league      TEXT NOT NULL,
			fetched_at  TIMESTAMPTZ NOT NULL,
			records     JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_standings_snapshots_league
			ON standings_snapshots (sport, league, fetched_at DESC);
	`)
	return err
}

// SaveSnapshot inserts one snapshot row with its records as JSONB.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	records, err := json.Marshal(snap.Records)
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO standings_snapshots (sport, league, fetched_at, records)
		VALUES ($1, $2, $3, $4)
	`, snap.Sport, snap.League, snap.FetchedAt, records)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// History returns up to limit snapshots for a league, newest first.
func (s *PostgresStore) History(ctx context.Context, sport, league string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = memoryHistoryLimit
	}

	rows, err := s.conn.QueryContext(ctx, `
		SELECT sport, league, fetched_at, records
		FROM standings_snapshots
		WHERE sport = $1 AND league = $2
		ORDER BY fetched_at DESC
		LIMIT $3
	`, sport, league, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var records []byte
		if err := rows.Scan(&snap.Sport, &snap.League, &snap.FetchedAt, &records); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if err := json.Unmarshal(records, &snap.Records); err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}
		if snap.Records == nil {
			snap.Records = []espn.TeamRecord{}
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.conn.Close()
}

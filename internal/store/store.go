// Package store persists standings snapshots so the dashboard can show how
// a league's table moved between fetches. Persistence is optional; the
// memory driver is the default and keeps a short rolling window.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/fortuna/scorehub/internal/espn"
)

// Snapshot is one successful standings normalization for a league.
type Snapshot struct {
	Sport     string            `json:"sport"`
	League    string            `json:"league"`
	FetchedAt time.Time         `json:"fetched_at"`
	Records   []espn.TeamRecord `json:"records"`
}

// Store records standings snapshots and serves their history.
type Store interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// History returns the most recent snapshots for a league, newest
	// first.
	History(ctx context.Context, sport, league string, limit int) ([]Snapshot, error)

	Close() error
}

// memoryHistoryLimit bounds the rolling window per league.
const memoryHistoryLimit = 50

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]Snapshot)}
}

func leagueKey(sport, league string) string {
	return sport + "/" + league
}

// SaveSnapshot appends a snapshot, trimming the oldest past the window.
func (s *MemoryStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := leagueKey(snap.Sport, snap.League)
	history := append(s.snapshots[key], snap)
	if len(history) > memoryHistoryLimit {
		history = history[len(history)-memoryHistoryLimit:]
	}
	s.snapshots[key] = history
	return nil
}

// History returns up to limit snapshots, newest first.
func (s *MemoryStore) History(_ context.Context, sport, league string, limit int) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.snapshots[leagueKey(sport, league)]
	if limit <= 0 || limit > len(history) {
		limit = len(history)
	}

	out := make([]Snapshot, 0, limit)
	for i := len(history) - 1; i >= len(history)-limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// Close is a no-op for the memory driver.
func (s *MemoryStore) Close() error {
	return nil
}

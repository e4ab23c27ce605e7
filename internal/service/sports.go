// Package service sits between the HTTP layer and the ESPN client: it
// owns fetching, normalization, and snapshot persistence, and converts
// every upstream failure into an "unavailable" result so nothing below the
// boundary ever sees a transport error.
package service

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/store"
)

// SportsService serves scoreboard and standings views for the supported
// leagues.
type SportsService struct {
	client    *espn.Client
	snapshots store.Store
	now       func() time.Time
}

// NewSportsService creates a sports service. A nil snapshot store disables
// history.
func NewSportsService(client *espn.Client, snapshots store.Store) *SportsService {
	return &SportsService{
		client:    client,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// Scoreboard fetches and parses the current scoreboard for a league.
func (s *SportsService) Scoreboard(ctx context.Context, league espn.League) (*espn.Scoreboard, error) {
	payload, err := s.client.FetchScoreboard(ctx, league.Sport, league.League)
	if err != nil {
		log.Printf("[sports] %s scoreboard fetch failed: %v", league.Name, err)
		return nil, err
	}
	return espn.ParseScoreboard(payload)
}

// Standings fetches and normalizes the standings table for a league. Both
// a failed fetch and a payload matching no known shape surface as
// espn.ErrStandingsUnavailable; the two cases are told apart in the logs.
func (s *SportsService) Standings(ctx context.Context, league espn.League) ([]espn.TeamRecord, error) {
	payload, err := s.client.FetchStandings(ctx, league.Sport, league.League)
	if err != nil {
		log.Printf("[sports] %s standings fetch failed: %v", league.Name, err)
		return nil, espn.ErrStandingsUnavailable
	}

	records, err := espn.NormalizeStandings(payload)
	if err != nil {
		log.Printf("[sports] %s standings payload matched no known shape", league.Name)
		return nil, err
	}

	s.recordSnapshot(ctx, league, records)

	return records, nil
}

// recordSnapshot persists the table unless it is identical to the most
// recent snapshot; cached fetches would otherwise flood the history with
// duplicates. Persistence is best-effort.
func (s *SportsService) recordSnapshot(ctx context.Context, league espn.League, records []espn.TeamRecord) {
	if s.snapshots == nil {
		return
	}

	last, err := s.snapshots.History(ctx, league.Sport, league.League, 1)
	if err == nil && len(last) == 1 && sameRecords(last[0].Records, records) {
		return
	}

	snap := store.Snapshot{
		Sport:     league.Sport,
		League:    league.League,
		FetchedAt: s.now(),
		Records:   records,
	}
	if err := s.snapshots.SaveSnapshot(ctx, snap); err != nil {
		log.Printf("[sports] saving %s standings snapshot: %v", league.Name, err)
	}
}

func sameRecords(a, b []espn.TeamRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// History returns recent standings snapshots for a league, newest first.
func (s *SportsService) History(ctx context.Context, league espn.League, limit int) ([]store.Snapshot, error) {
	if s.snapshots == nil {
		return []store.Snapshot{}, nil
	}
	return s.snapshots.History(ctx, league.Sport, league.League, limit)
}

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/store"
)

func snapshot(league string, fetchedAt time.Time, wins int) store.Snapshot {
	return store.Snapshot{
		Sport:     "basketball",
		League:    league,
		FetchedAt: fetchedAt,
		Records: []espn.TeamRecord{
			{Conference: "East", Team: "Celtics", Wins: wins, Losses: 82 - wins},
		},
	}
}

func TestMemoryStore_HistoryNewestFirst(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := s.SaveSnapshot(ctx, snapshot("nba", base.Add(time.Duration(i)*time.Hour), 50+i)); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}

	history, err := s.History(ctx, "basketball", "nba", 2)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(history))
	}
	if history[0].Records[0].Wins != 52 || history[1].Records[0].Wins != 51 {
		t.Errorf("history order = %d wins then %d wins, want newest first", history[0].Records[0].Wins, history[1].Records[0].Wins)
	}
}

func TestMemoryStore_HistoryIsolatedPerLeague(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	if err := s.SaveSnapshot(ctx, snapshot("nba", now, 50)); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	history, err := s.History(ctx, "basketball", "wnba", 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("got %d snapshots for an untouched league", len(history))
	}
}

func TestMemoryStore_RollingWindow(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 75; i++ {
		if err := s.SaveSnapshot(ctx, snapshot("nba", base.Add(time.Duration(i)*time.Minute), i)); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
	}

	history, err := s.History(ctx, "basketball", "nba", 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 50 {
		t.Errorf("window holds %d snapshots, want 50", len(history))
	}
	if history[0].Records[0].Wins != 74 {
		t.Errorf("newest snapshot has %d wins, want 74", history[0].Records[0].Wins)
	}
}

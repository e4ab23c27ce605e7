package service

import (
	"fmt"
	"sync"

	"github.com/fortuna/scorehub/internal/leaderboard"
)

// LeaderboardService loads the score sheet once and serves ranked views of
// it. Reload swaps in a fresh read of the file.
type LeaderboardService struct {
	path string

	mu     sync.RWMutex
	board  *leaderboard.Board
	ranked []leaderboard.ScoreRow
}

// NewLeaderboardService creates a service for the sheet at path. The file
// is read lazily on first use.
func NewLeaderboardService(path string) *LeaderboardService {
	return &LeaderboardService{path: path}
}

// Board returns the loaded sheet with ranked rows.
func (s *LeaderboardService) Board(filter []string) (*leaderboard.Board, []leaderboard.ScoreRow, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.ranked
	if len(filter) > 0 {
		want := make(map[string]bool, len(filter))
		for _, name := range filter {
			want[name] = true
		}
		var picked []leaderboard.ScoreRow
		for _, row := range rows {
			if want[row.Player] {
				picked = append(picked, row)
			}
		}
		rows = picked
	}

	return s.board, rows, nil
}

// Summary returns the KPI card values for the full ranked board.
func (s *LeaderboardService) Summary() (leaderboard.Summary, error) {
	if err := s.ensureLoaded(); err != nil {
		return leaderboard.Summary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return leaderboard.Summarize(s.ranked), nil
}

// Reload re-reads the sheet from disk, keeping the old board on failure.
func (s *LeaderboardService) Reload() error {
	board, err := leaderboard.LoadFile(s.path)
	if err != nil {
		return fmt.Errorf("reloading leaderboard: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
	s.ranked = leaderboard.Rank(board.Rows)
	return nil
}

func (s *LeaderboardService) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.board != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload()
}

package leaderboard

import (
	"math"
	"sort"
)

// Rank produces the display ordering: rows without a player name are
// dropped, the rest sort by grand total descending (stable, so ties keep
// their sheet order), and every row tied for the maximum grand total gets
// the top badge.
func Rank(rows []ScoreRow) []ScoreRow {
	ranked := make([]ScoreRow, 0, len(rows))
	for _, row := range rows {
		if row.Player == "" {
			continue
		}
		ranked = append(ranked, row)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return sortTotal(ranked[i]) > sortTotal(ranked[j])
	})

	max, hasMax := maxGrandTotal(ranked)
	for i := range ranked {
		ranked[i].Badge = BadgeDefault
		if hasMax && ranked[i].GrandTotal != nil && *ranked[i].GrandTotal == max {
			ranked[i].Badge = BadgeTop
		}
	}

	return ranked
}

// Rows with no grand total sort below every scored row.
func sortTotal(row ScoreRow) float64 {
	if row.GrandTotal == nil {
		return math.Inf(-1)
	}
	return *row.GrandTotal
}

func maxGrandTotal(rows []ScoreRow) (float64, bool) {
	max, found := 0.0, false
	for _, row := range rows {
		if row.GrandTotal == nil {
			continue
		}
		if !found || *row.GrandTotal > max {
			max = *row.GrandTotal
			found = true
		}
	}
	return max, found
}

// MaxGameScore is the highest single-activity game score on a row, used to
// anchor the badge annotation in the per-game chart view. Missing scores
// are excluded, not zero-filled; a row with no recorded scores anchors at 0.
func MaxGameScore(row ScoreRow) float64 {
	max, found := 0.0, false
	for _, v := range row.GameScores {
		if v == nil {
			continue
		}
		if !found || *v > max {
			max = *v
			found = true
		}
	}
	if !found {
		return 0
	}
	return max
}

// Summary holds the KPI card values above the leaderboard.
type Summary struct {
	MVP         string  `json:"mvp"`
	MVPTotal    float64 `json:"mvp_total"`
	AvgSpirit   float64 `json:"avg_spirit"`
	TotalPoints float64 `json:"total_points"`
}

// Summarize computes the KPI cards from a ranked board. The MVP is the
// first ranked row; averages and sums skip missing values.
func Summarize(ranked []ScoreRow) Summary {
	var s Summary
	if len(ranked) == 0 {
		return s
	}

	s.MVP = ranked[0].Player
	if ranked[0].GrandTotal != nil {
		s.MVPTotal = *ranked[0].GrandTotal
	}

	spiritSum, spiritN := 0.0, 0
	for _, row := range ranked {
		if row.SpiritTotal != nil {
			spiritSum += *row.SpiritTotal
			spiritN++
		}
		if row.GrandTotal != nil {
			s.TotalPoints += *row.GrandTotal
		}
	}
	if spiritN > 0 {
		s.AvgSpirit = spiritSum / float64(spiritN)
	}

	return s
}

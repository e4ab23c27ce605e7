package leaderboard_test

import (
	"testing"

	"github.com/fortuna/scorehub/internal/leaderboard"
)

func row(player string, grandTotal *float64) leaderboard.ScoreRow {
	return leaderboard.ScoreRow{Player: player, GrandTotal: grandTotal}
}

func f(v float64) *float64 {
	return &v
}

func TestRank_TiedMaximum(t *testing.T) {
	rows := []leaderboard.ScoreRow{
		row("Ana", f(50)),
		row("Ben", f(80)),
		row("Cal", f(80)),
		row("Dee", f(30)),
	}

	ranked := leaderboard.Rank(rows)

	wantOrder := []string{"Ben", "Cal", "Ana", "Dee"}
	for i, want := range wantOrder {
		if ranked[i].Player != want {
			t.Fatalf("ranked[%d] = %s, want %s (order %v)", i, ranked[i].Player, want, wantOrder)
		}
	}

	wantBadges := []string{leaderboard.BadgeTop, leaderboard.BadgeTop, leaderboard.BadgeDefault, leaderboard.BadgeDefault}
	for i, want := range wantBadges {
		if ranked[i].Badge != want {
			t.Errorf("ranked[%d] (%s) badge = %s, want %s", i, ranked[i].Player, ranked[i].Badge, want)
		}
	}
}

func TestRank_DropsNamelessRows(t *testing.T) {
	rows := []leaderboard.ScoreRow{
		row("", f(999)),
		row("Ana", f(10)),
	}

	ranked := leaderboard.Rank(rows)
	if len(ranked) != 1 || ranked[0].Player != "Ana" {
		t.Errorf("Rank() = %+v, want only Ana", ranked)
	}
}

func TestRank_MissingTotalsSortLast(t *testing.T) {
	rows := []leaderboard.ScoreRow{
		row("Ana", nil),
		row("Ben", f(5)),
	}

	ranked := leaderboard.Rank(rows)
	if ranked[0].Player != "Ben" {
		t.Errorf("scored rows should rank above unscored ones, got %+v", ranked)
	}
	if ranked[1].Badge != leaderboard.BadgeDefault {
		t.Errorf("unscored row badge = %s, want default", ranked[1].Badge)
	}
}

func TestRank_Empty(t *testing.T) {
	if ranked := leaderboard.Rank(nil); len(ranked) != 0 {
		t.Errorf("Rank(nil) = %+v", ranked)
	}
}

func TestMaxGameScore_IgnoresMissing(t *testing.T) {
	r := leaderboard.ScoreRow{
		Player: "Ana",
		GameScores: map[string]*float64{
			"Free Throw": f(4),
			"Putting":    nil,
			"Beer Pong":  f(9),
		},
	}

	if got := leaderboard.MaxGameScore(r); got != 9 {
		t.Errorf("MaxGameScore() = %v, want 9", got)
	}
}

func TestMaxGameScore_AllMissing(t *testing.T) {
	r := leaderboard.ScoreRow{
		Player:     "Ana",
		GameScores: map[string]*float64{"Free Throw": nil},
	}

	if got := leaderboard.MaxGameScore(r); got != 0 {
		t.Errorf("MaxGameScore() = %v, want 0", got)
	}
}

func TestMaxGameScore_NegativeScores(t *testing.T) {
	r := leaderboard.ScoreRow{
		Player:     "Ana",
		GameScores: map[string]*float64{"Free Throw": f(-2), "Putting": f(-5)},
	}

	if got := leaderboard.MaxGameScore(r); got != -2 {
		t.Errorf("MaxGameScore() = %v, want -2", got)
	}
}

func TestSummarize(t *testing.T) {
	rows := []leaderboard.ScoreRow{
		{Player: "Ana", GrandTotal: f(66), SpiritTotal: f(36)},
		{Player: "Ben", GrandTotal: f(56), SpiritTotal: f(32)},
		{Player: "Cal", GrandTotal: f(55), SpiritTotal: nil},
	}

	s := leaderboard.Summarize(rows)
	if s.MVP != "Ana" || s.MVPTotal != 66 {
		t.Errorf("MVP = %s (%v), want Ana (66)", s.MVP, s.MVPTotal)
	}
	if s.AvgSpirit != 34 {
		t.Errorf("AvgSpirit = %v, want 34 (missing spirit rows excluded)", s.AvgSpirit)
	}
	if s.TotalPoints != 177 {
		t.Errorf("TotalPoints = %v, want 177", s.TotalPoints)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := leaderboard.Summarize(nil)
	if s.MVP != "" || s.TotalPoints != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}

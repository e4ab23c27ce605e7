package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/service"
)

type fakeBroadcaster struct {
	clients  int
	messages [][]byte
}

func (f *fakeBroadcaster) Broadcast(message []byte) {
	f.messages = append(f.messages, message)
}

func (f *fakeBroadcaster) ClientCount() int {
	return f.clients
}

func newPollerAgainstStub(t *testing.T, broadcaster Broadcaster) (*Poller, *int64) {
	t.Helper()

	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		fmt.Fprint(w, `{
			"events": [
				{
					"id": "1",
					"competitions": [
						{
							"status": {"displayClock": "2:00", "type": {"state": "in"}},
							"competitors": [
								{"homeAway": "home", "team": {"shortDisplayName": "Home"}, "score": "3"},
								{"homeAway": "away", "team": {"shortDisplayName": "Away"}, "score": "1"}
							]
						}
					]
				}
			]
		}`)
	}))
	t.Cleanup(server.Close)

	sports := service.NewSportsService(espn.NewClient(server.URL, server.URL, nil), nil)
	return New(sports, broadcaster, time.Minute), &requests
}

func TestPollOnce_BroadcastsEveryLeague(t *testing.T) {
	broadcaster := &fakeBroadcaster{clients: 1}
	p, _ := newPollerAgainstStub(t, broadcaster)

	p.pollOnce(context.Background())

	if len(broadcaster.messages) != len(espn.Leagues) {
		t.Fatalf("got %d updates, want one per league (%d)", len(broadcaster.messages), len(espn.Leagues))
	}

	var update Update
	if err := json.Unmarshal(broadcaster.messages[0], &update); err != nil {
		t.Fatalf("decoding update: %v", err)
	}
	first := espn.Leagues[0]
	if update.Type != "scoreboard" || update.Sport != first.Sport || update.League != first.League {
		t.Errorf("update = %+v, want a scoreboard update for %s", update, first.Name)
	}
	if update.Scoreboard == nil || len(update.Scoreboard.Games) != 1 {
		t.Fatalf("update scoreboard = %+v, want one game", update.Scoreboard)
	}
	if game := update.Scoreboard.Games[0]; game.Status != "live" || game.Home.Score != "3" {
		t.Errorf("game = %+v", game)
	}
}

func TestPollOnce_SkipsWithNoClients(t *testing.T) {
	broadcaster := &fakeBroadcaster{clients: 0}
	p, requests := newPollerAgainstStub(t, broadcaster)

	p.pollOnce(context.Background())

	if len(broadcaster.messages) != 0 {
		t.Errorf("got %d updates with nobody connected, want 0", len(broadcaster.messages))
	}
	if n := atomic.LoadInt64(requests); n != 0 {
		t.Errorf("made %d upstream requests with nobody connected, want 0", n)
	}
}

func TestPollOnce_SkipsFailedLeagues(t *testing.T) {
	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First league errors, the rest serve an empty slate.
		if atomic.AddInt64(&requests, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"events": []}`)
	}))
	defer server.Close()

	broadcaster := &fakeBroadcaster{clients: 1}
	sports := service.NewSportsService(espn.NewClient(server.URL, server.URL, nil), nil)
	p := New(sports, broadcaster, time.Minute)

	p.pollOnce(context.Background())

	if len(broadcaster.messages) != len(espn.Leagues)-1 {
		t.Errorf("got %d updates, want %d (failed league skipped)", len(broadcaster.messages), len(espn.Leagues)-1)
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	p := New(nil, &fakeBroadcaster{}, 0)
	if p.interval != time.Minute {
		t.Errorf("interval = %v, want 1m default", p.interval)
	}
}

package espn_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fortuna/scorehub/internal/cache"
	"github.com/fortuna/scorehub/internal/espn"
)

func TestClient_FetchScoreboard(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"events": []}`))
	}))
	defer server.Close()

	client := espn.NewClient(server.URL, "", nil)
	payload, err := client.FetchScoreboard(context.Background(), "basketball", "nba")
	if err != nil {
		t.Fatalf("FetchScoreboard() error = %v", err)
	}

	if gotPath != "/basketball/nba/scoreboard" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotUA == "" {
		t.Error("request sent without a User-Agent")
	}
	if _, ok := payload["events"]; !ok {
		t.Errorf("payload = %v, want events key", payload)
	}
}

func TestClient_FetchUsesCache(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"events": []}`))
	}))
	defer server.Close()

	client := espn.NewClient(server.URL, "", cache.NewMemoryCache(0, nil))

	for i := 0; i < 3; i++ {
		if _, err := client.FetchScoreboard(context.Background(), "hockey", "nhl"); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}

	if requests != 1 {
		t.Errorf("made %d upstream requests inside the cache window, want 1", requests)
	}
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusForbidden)
			},
		},
		{
			name: "html error page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html><body>blocked</body></html>"))
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"events": [`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := espn.NewClient(server.URL, "", nil)
			if _, err := client.FetchScoreboard(context.Background(), "baseball", "mlb"); err == nil {
				t.Error("FetchScoreboard() should error")
			}
		})
	}
}

func TestClient_NFLStandingsFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"children": []}`)) // empty shell
	}))
	defer primary.Close()

	var seasons []string
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seasons = append(seasons, r.URL.Query().Get("season"))
		if len(seasons) == 1 {
			// First season year has nothing either.
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"teams": [{"team": {"displayName": "Chiefs"}, "record": "14-3"}]}`))
	}))
	defer cdn.Close()

	client := espn.NewClient(primary.URL, cdn.URL, nil)
	payload, err := client.FetchStandings(context.Background(), "football", "nfl")
	if err != nil {
		t.Fatalf("FetchStandings() error = %v", err)
	}

	if len(seasons) != 2 {
		t.Fatalf("fallback tried %d seasons, want 2 (current then prior)", len(seasons))
	}
	if seasons[0] == seasons[1] {
		t.Errorf("fallback reused season %q", seasons[0])
	}

	records, err := espn.NormalizeStandings(payload)
	if err != nil {
		t.Fatalf("NormalizeStandings() error = %v", err)
	}
	if len(records) != 1 || records[0].Wins != 14 {
		t.Errorf("records = %+v, want the Chiefs at 14 wins", records)
	}
}

func TestClient_NFLStandingsNoFallbackWhenUsable(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"children": [{"name": "AFC"}]}`))
	}))
	defer primary.Close()

	cdnCalls := 0
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cdnCalls++
		w.Write([]byte(`{}`))
	}))
	defer cdn.Close()

	client := espn.NewClient(primary.URL, cdn.URL, nil)
	if _, err := client.FetchStandings(context.Background(), "football", "nfl"); err != nil {
		t.Fatalf("FetchStandings() error = %v", err)
	}
	if cdnCalls != 0 {
		t.Errorf("cdn endpoint hit %d times for a usable primary payload", cdnCalls)
	}
}

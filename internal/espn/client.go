package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fortuna/scorehub/internal/cache"
)

const (
	// BaseURL is ESPN's public site API (no key required).
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// CDNBaseURL hosts the alternate NFL standings endpoint.
	CDNBaseURL = "https://cdn.espn.com"

	scoreboardTimeout = 10 * time.Second
	standingsTimeout  = 15 * time.Second
)

// Client handles ESPN API requests. Successful responses are cached by
// URL, so repeated requests inside the cache TTL never hit the network.
type Client struct {
	baseURL    string
	cdnBaseURL string
	httpClient *http.Client
	userAgent  string
	cache      cache.Cache
	now        func() time.Time
}

// NewClient creates an ESPN API client. Empty base URLs fall back to the
// public hosts; a nil cache disables result caching.
func NewClient(baseURL, cdnBaseURL string, fetchCache cache.Cache) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if cdnBaseURL == "" {
		cdnBaseURL = CDNBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		cdnBaseURL: cdnBaseURL,
		httpClient: &http.Client{},
		userAgent:  "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Scorehub/1.0",
		cache:      fetchCache,
		now:        time.Now,
	}
}

// FetchScoreboard fetches the current scoreboard for a league.
func (c *Client) FetchScoreboard(ctx context.Context, sport, league string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/%s/scoreboard", c.baseURL, sport, league)
	return c.fetch(ctx, url, scoreboardTimeout)
}

// FetchStandings fetches the standings payload for a league. The NFL's
// primary endpoint frequently serves an empty shell; when it does, the CDN
// endpoint is tried for the current and prior season year, stopping at the
// first payload with any usable content.
func (c *Client) FetchStandings(ctx context.Context, sport, league string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/%s/standings", c.baseURL, sport, league)
	data, err := c.fetch(ctx, url, standingsTimeout)

	if sport == "football" && league == "nfl" && !hasStandingsContent(data, "children") {
		year := c.now().Year()
		for _, season := range []int{year, year - 1} {
			altURL := fmt.Sprintf("%s/core/nfl/standings?xhr=1&season=%d", c.cdnBaseURL, season)
			altData, altErr := c.fetch(ctx, altURL, standingsTimeout)
			if altErr != nil {
				log.Printf("[espn-client] NFL standings fallback (season %d) failed: %v", season, altErr)
				continue
			}
			if hasStandingsContent(altData, "children", "content", "teams") {
				return altData, nil
			}
		}
	}

	return data, err
}

// hasStandingsContent reports whether any of the listed keys holds a
// non-empty value.
func hasStandingsContent(data map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		switch v := data[key].(type) {
		case []interface{}:
			if len(v) > 0 {
				return true
			}
		case map[string]interface{}:
			if len(v) > 0 {
				return true
			}
		}
	}
	return false
}

// fetch makes an HTTP GET request and returns parsed JSON. Timeouts,
// non-2xx statuses, HTML error pages, and malformed bodies all surface as
// errors here and nowhere downstream.
func (c *Client) fetch(ctx context.Context, url string, timeout time.Duration) (map[string]interface{}, error) {
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, url); ok {
			return payload, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ESPN API error: status=%d url=%s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	// Blocked requests come back as an HTML error page with a 200.
	if len(body) > 0 && body[0] == '<' {
		return nil, fmt.Errorf("ESPN returned HTML instead of JSON: url=%s", url)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(ctx, url, result)
	}
	return result, nil
}

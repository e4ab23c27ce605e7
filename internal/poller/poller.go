// Package poller refreshes league scoreboards in the background and pushes
// the parsed cards to websocket subscribers.
package poller

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/service"
)

// Broadcaster is the hub-facing side of the websocket server.
type Broadcaster interface {
	Broadcast(message []byte)
	ClientCount() int
}

// Update is one pushed scoreboard refresh.
type Update struct {
	Type       string           `json:"type"`
	Sport      string           `json:"sport"`
	League     string           `json:"league"`
	Name       string           `json:"name"`
	Scoreboard *espn.Scoreboard `json:"scoreboard"`
}

// Poller periodically refetches every league's scoreboard while clients
// are connected.
type Poller struct {
	sports      *service.SportsService
	broadcaster Broadcaster
	interval    time.Duration
}

// New creates a poller. A non-positive interval defaults to one minute.
func New(sports *service.SportsService, broadcaster Broadcaster, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{
		sports:      sports,
		broadcaster: broadcaster,
		interval:    interval,
	}
}

// Run starts the polling loop and blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("[poller] starting (interval: %v)", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[poller] stopping")
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce refreshes each league and broadcasts the result. With nobody
// connected there is no reason to spend requests; the fetch cache makes
// the skipped cycles cheap to resume.
func (p *Poller) pollOnce(ctx context.Context) {
	if p.broadcaster.ClientCount() == 0 {
		return
	}

	for _, league := range espn.Leagues {
		sb, err := p.sports.Scoreboard(ctx, league)
		if err != nil {
			// Already logged at the service boundary; skip this league.
			continue
		}

		update := Update{
			Type:       "scoreboard",
			Sport:      league.Sport,
			League:     league.League,
			Name:       league.Name,
			Scoreboard: sb,
		}
		message, err := json.Marshal(update)
		if err != nil {
			log.Printf("[poller] encoding %s update: %v", league.Name, err)
			continue
		}
		p.broadcaster.Broadcast(message)
	}
}

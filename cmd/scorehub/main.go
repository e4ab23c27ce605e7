package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/scorehub/internal/api/rest"
	"github.com/fortuna/scorehub/internal/api/websocket"
	"github.com/fortuna/scorehub/internal/cache"
	"github.com/fortuna/scorehub/internal/config"
	"github.com/fortuna/scorehub/internal/espn"
	"github.com/fortuna/scorehub/internal/poller"
	"github.com/fortuna/scorehub/internal/service"
	"github.com/fortuna/scorehub/internal/store"
)

const (
	serviceName    = "scorehub"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Sports & Leaderboard Dashboard", serviceName, serviceVersion)

	cfg := config.Load()

	// Fetch cache
	fetchCache, err := newCache(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s cache: %v", cfg.CacheDriver, err)
	}
	defer fetchCache.Close()
	log.Printf("✓ Fetch cache ready (driver: %s, ttl: %v)", cfg.CacheDriver, cfg.CacheTTL)

	// Standings snapshot store
	snapshots, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s store: %v", cfg.StoreDriver, err)
	}
	defer snapshots.Close()
	log.Printf("✓ Snapshot store ready (driver: %s)", cfg.StoreDriver)

	// Services
	espnClient := espn.NewClient(cfg.ESPNAPIBase, cfg.CDNAPIBase, fetchCache)
	sports := service.NewSportsService(espnClient, snapshots)
	board := service.NewLeaderboardService(cfg.ScoresCSV)
	if err := board.Reload(); err != nil {
		// The sports half of the dashboard still works without the sheet.
		log.Printf("⚠️  Score sheet not loaded: %v (leaderboard endpoints will retry)", err)
	} else {
		log.Printf("✓ Score sheet loaded from %s", cfg.ScoresCSV)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WebSocket hub + live poller
	hub := websocket.NewHub()
	go hub.Run(ctx)
	wsServer := websocket.NewServer(hub)

	if cfg.EnableLivePolling {
		livePoller := poller.New(sports, wsServer, cfg.PollInterval)
		go livePoller.Run(ctx)
		log.Printf("✓ Live score poller started (interval: %v)", cfg.PollInterval)
	}

	// HTTP server
	restServer := rest.NewServer(cfg.ServerAddr, sports, board, wsServer)
	go func() {
		log.Printf("Starting HTTP server on %s", cfg.ServerAddr)
		if err := restServer.Start(); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  Dashboard: http://0.0.0.0%s/", cfg.ServerAddr)
	log.Printf("  Live scores: ws://0.0.0.0%s/ws/scores", cfg.ServerAddr)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

func newCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.CacheDriver {
	case "redis":
		return cache.NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
	default:
		return cache.NewMemoryCache(cfg.CacheTTL, nil), nil
	}
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return store.NewPostgresStore(cfg.PostgresDSN)
	default:
		return store.NewMemoryStore(), nil
	}
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, loaded from environment
// variables with development-friendly defaults.
type Config struct {
	ServerAddr string

	// ESPN endpoints
	ESPNAPIBase string
	CDNAPIBase  string

	// Fetch cache
	CacheDriver string // memory | redis
	RedisURL    string
	CacheTTL    time.Duration

	// Standings snapshot store
	StoreDriver string // memory | postgres
	PostgresDSN string

	// Leaderboard source sheet
	ScoresCSV string

	// Live scoreboard push
	EnableLivePolling bool
	PollInterval      time.Duration
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		ServerAddr:        getEnv("SERVER_ADDR", ":8080"),
		ESPNAPIBase:       getEnv("ESPN_API_BASE", ""),
		CDNAPIBase:        getEnv("CDN_API_BASE", ""),
		CacheDriver:       getEnv("CACHE_DRIVER", "memory"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTL:          getEnvSeconds("CACHE_TTL_SECONDS", 120),
		StoreDriver:       getEnv("STORE_DRIVER", "memory"),
		PostgresDSN:       getEnv("POSTGRES_DSN", ""),
		ScoresCSV:         getEnv("SCORES_CSV", "scores.csv"),
		EnableLivePolling: getEnv("ENABLE_LIVE_POLLING", "true") == "true",
		PollInterval:      getEnvSeconds("POLL_INTERVAL_SECONDS", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}

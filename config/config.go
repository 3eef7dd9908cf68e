package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	Port          int
	DataDir       string
	LogFile       string
	ClientOrigins []string

	TMDBAPIKey          string
	GoogleBooksAPIKey   string
	SpotifyClientID     string
	SpotifyClientSecret string

	CacheTTL  time.Duration
	CacheSize int

	// Rate limit: requests per minute per client IP, with equal burst.
	RateLimitPerMinute int
}

// Load reads configuration from the environment, applying defaults suitable
// for local development.
func Load() Config {
	cfg := Config{
		Port:                envInt("MEDLEY_PORT", 5000),
		DataDir:             envString("MEDLEY_DATA_DIR", "./data"),
		LogFile:             os.Getenv("MEDLEY_LOG_FILE"),
		TMDBAPIKey:          os.Getenv("TMDB_API_KEY"),
		GoogleBooksAPIKey:   os.Getenv("GOOGLE_BOOKS_API_KEY"),
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		CacheTTL:            time.Duration(envInt("MEDLEY_CACHE_TTL_SECONDS", 120)) * time.Second,
		CacheSize:           envInt("MEDLEY_CACHE_SIZE", 512),
		RateLimitPerMinute:  envInt("MEDLEY_RATE_LIMIT_PER_MINUTE", 100),
	}
	if origins := os.Getenv("MEDLEY_CLIENT_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.ClientOrigins = append(cfg.ClientOrigins, o)
			}
		}
	}
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

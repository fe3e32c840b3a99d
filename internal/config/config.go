package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime settings for the dashboard backend.
type AppConfig struct {
	// Upstream climate data API.
	ClimateAPIBaseURL string
	HTTPTimeout       time.Duration

	// CacheWindow is how long aggregated results stay valid.
	CacheWindow time.Duration

	// WarmInterval controls how often the scheduler re-warms reference
	// data and the default top-emitter ranking.
	WarmInterval time.Duration

	// Rate limiting for the public API.
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Chat assistant (OpenAI-compatible endpoint). Optional.
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Web search proxy. Optional; the static fallback list is used when
	// unset.
	SearchAPIURL string
	SearchAPIKey string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.ClimateAPIBaseURL = getenvDefault("CLIMATE_API_BASE_URL", "https://api.climatetrace.org/v6")

	timeout, err := parseDuration("HTTP_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	// Aggregated results stay valid for 30 minutes by default.
	window, err := parseDuration("CACHE_WINDOW", "30m")
	if err != nil {
		return nil, err
	}
	cfg.CacheWindow = window

	// Re-warm just before the cache window lapses.
	warm, err := parseDuration("WARM_INTERVAL", "25m")
	if err != nil {
		return nil, err
	}
	cfg.WarmInterval = warm

	cfg.RateLimitMax = getenvInt("RATE_LIMIT_MAX", 60)
	rlWindow, err := parseDuration("RATE_LIMIT_WINDOW", "1m")
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = rlWindow

	cfg.LLMBaseURL = getenvDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	cfg.LLMModel = getenvDefault("LLM_MODEL", "gpt-4o-mini")

	cfg.SearchAPIURL = os.Getenv("SEARCH_API_URL")
	cfg.SearchAPIKey = os.Getenv("SEARCH_API_KEY")

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

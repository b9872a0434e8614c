package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogLevel     string

	// Planner model settings.
	GoogleAPIKey string
	PlanModel    string

	// Upper bound for one end-to-end plan run.
	PlanTimeout time.Duration

	// Base URLs for the public enrichment endpoints; overridable for tests.
	GeoBaseURL      string
	ForecastBaseURL string
	NewsBaseURL     string
	OverpassBaseURL string

	// Per-call deadlines for outbound lookups.
	LookupTimeout   time.Duration
	OverpassTimeout time.Duration

	// Google News market parameters.
	NewsHL   string
	NewsGL   string
	NewsCEID string

	// In-memory session retention.
	SessionRetention     time.Duration
	SessionPruneInterval time.Duration

	// Optional SMTP delivery of finished plans.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	var err error
	if cfg.ReadTimeout, err = getenvDuration("HTTP_READ_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getenvDuration("HTTP_WRITE_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	cfg.PlanModel = getenvDefault("PLAN_MODEL", "gemini-2.0-flash")
	if cfg.PlanTimeout, err = getenvDuration("PLAN_TIMEOUT", "5m"); err != nil {
		return nil, err
	}

	cfg.GeoBaseURL = getenvDefault("GEO_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search")
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.NewsBaseURL = getenvDefault("NEWS_BASE_URL", "https://news.google.com/rss/search")
	cfg.OverpassBaseURL = getenvDefault("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter")

	if cfg.LookupTimeout, err = getenvDuration("LOOKUP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.OverpassTimeout, err = getenvDuration("OVERPASS_TIMEOUT", "25s"); err != nil {
		return nil, err
	}

	cfg.NewsHL = getenvDefault("NEWS_HL", "en")
	cfg.NewsGL = getenvDefault("NEWS_GL", "US")
	cfg.NewsCEID = getenvDefault("NEWS_CEID", "US:en")

	if cfg.SessionRetention, err = getenvDuration("SESSION_RETENTION", "6h"); err != nil {
		return nil, err
	}
	if cfg.SessionPruneInterval, err = getenvDuration("SESSION_PRUNE_INTERVAL", "30m"); err != nil {
		return nil, err
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = getenvInt("SMTP_PORT", 587)
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = getenvDefault("SMTP_FROM", os.Getenv("SMTP_USERNAME"))

	return cfg, nil
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

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

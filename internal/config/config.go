package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Stats feed API
	FeedBaseURL string        `envconfig:"FEED_BASE_URL" default:"https://github.com/nflverse/nflverse-data/releases/download"`
	FeedTimeout time.Duration `envconfig:"FEED_TIMEOUT" default:"60s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"nflgames"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"nfl_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Reconciliation
	SeasonStart        int    `envconfig:"SEASON_START" default:"1999"`
	SeasonEnd          int    `envconfig:"SEASON_END" default:"0"` // 0 = current season
	UnmatchedSampleCap int    `envconfig:"UNMATCHED_SAMPLE_CAP" default:"10"`
	ReconcileCron      string `envconfig:"RECONCILE_CRON" default:"0 4 * * *"`

	// Scheduler
	EnableScheduler   bool `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialRunEnabled bool `envconfig:"INITIAL_RUN_ENABLED" default:"true"`

	// API Rate Limiting
	APIRateLimit  int `envconfig:"API_RATE_LIMIT" default:"100"`
	APIBurstLimit int `envconfig:"API_BURST_LIMIT" default:"20"`

	// Caching TTL (in seconds)
	CacheTTLStats  int `envconfig:"CACHE_TTL_STATS" default:"3600"`   // 1 hour
	CacheTTLFeeds  int `envconfig:"CACHE_TTL_FEEDS" default:"21600"`  // 6 hours
	CacheTTLRoster int `envconfig:"CACHE_TTL_ROSTER" default:"86400"` // 24 hours

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.SeasonStart < 1966 {
		return fmt.Errorf("SEASON_START %d predates the available line data", c.SeasonStart)
	}

	if c.SeasonEnd != 0 && c.SeasonEnd < c.SeasonStart {
		return fmt.Errorf("SEASON_END %d precedes SEASON_START %d", c.SeasonEnd, c.SeasonStart)
	}

	if c.UnmatchedSampleCap < 0 {
		return fmt.Errorf("UNMATCHED_SAMPLE_CAP must not be negative")
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

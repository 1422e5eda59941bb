package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Env  string `envconfig:"ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// Database
	DBDriver       string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"wheeltradr.db"`
	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER" default:"wheeltradr"`
	DBPassword     string `envconfig:"DB_PASSWORD" default:"wheeltradr"`
	DBName         string `envconfig:"DB_NAME" default:"wheeltradr"`
	DBSSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`

	// Auth. An empty passphrase hash leaves the API open.
	JWTSecret             string        `envconfig:"JWT_SECRET" default:"fallback-secret-key-for-dev-only"`
	JWTExpirationDur      time.Duration `envconfig:"JWT_EXPIRES_IN" default:"24h"`
	JournalPassphraseHash string        `envconfig:"JOURNAL_PASSPHRASE_HASH"`

	// Market data
	FinnhubAPIKey        string        `envconfig:"FINNHUB_API_KEY"`
	QuoteRefreshSchedule string        `envconfig:"QUOTE_REFRESH_SCHEDULE"`
	SnapshotSchedule     string        `envconfig:"SNAPSHOT_SCHEDULE" default:"@daily"`
	MarketTimeout        time.Duration `envconfig:"MARKET_TIMEOUT" default:"10s"`

	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"false"`
}

// AuthEnabled reports whether requests need a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JournalPassphraseHash != ""
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}

	appConfig = &config
	return appConfig, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

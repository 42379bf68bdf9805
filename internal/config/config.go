package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	// Server
	Port         int    `envconfig:"PORT" default:"5000"`
	Environment  string `envconfig:"ENV" default:"development"`
	RateLimitMax int    `envconfig:"RATE_LIMIT_MAX" default:"120"`

	// Storage
	StorageDriver  string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"memoria_aivi.db"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	RedisURL       string `envconfig:"REDIS_URL"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"aivi"`

	// Recognition
	KnownFacesDir  string  `envconfig:"KNOWN_FACES_DIR" default:"known_faces"`
	// MatchTolerance of 0 means the provider's own default for its model
	MatchTolerance float64 `envconfig:"MATCH_TOLERANCE"`

	// Provider
	ProviderType  string `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL   string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceModel string `envconfig:"DEEPFACE_MODEL" default:"Facenet512"`
	DlibModelsDir string `envconfig:"DLIB_MODELS_DIR" default:"models"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field requirements envconfig cannot express
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (supported: %s, %s, %s)",
			c.StorageDriver, StorageSQLite, StoragePostgres, StorageRedis)
	}

	if c.MatchTolerance < 0 {
		return fmt.Errorf("MATCH_TOLERANCE cannot be negative, got %v", c.MatchTolerance)
	}

	if c.KnownFacesDir == "" {
		return errors.New("KNOWN_FACES_DIR cannot be empty")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// internal/pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequiredConfig is returned when a required setting is absent
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Upstream inventory API
	API APIConfig

	// Database
	Database DatabaseConfig

	// Redis run lock, optional
	Redis RedisConfig

	// S3 payload archive, optional
	Archive ArchiveConfig

	// Credential source
	Secrets SecretsConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	LogLevel    string
	LogFormat   string // json, text
}

// APIConfig holds the inventory API settings
type APIConfig struct {
	URL     string `env:"API_URL" required:"true"`
	Key     string `env:"API_KEY" required:"true"`
	Timeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string `env:"PG_HOST" required:"true"`
	Port               string `env:"PG_PORT" required:"true"`
	User               string `env:"PG_USER" required:"true"`
	Password           string `env:"PG_PASSWORD" required:"true"`
	Name               string `env:"PG_DB" required:"true"`
	SSLMode            string
	ConnectTimeout     time.Duration
	UpsertChunkSize    int
	EnableQueryLogging bool
}

// RedisConfig holds Redis configuration. An empty Addr disables the run lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

// ArchiveConfig holds the S3 archive configuration. An empty Bucket disables it.
type ArchiveConfig struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
}

// SecretsConfig selects where credentials come from
type SecretsConfig struct {
	Provider   string // env, aws
	SecretName string
	Region     string
}

const (
	SecretsProviderEnv = "env"
	SecretsProviderAWS = "aws"
)

// Load reads configuration from the environment. Absent values pass through
// empty; call Validate to check them.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if _, err := os.Stat(".env"); err != nil {
			logger.Debug("no .env file found, using environment variables")
		} else if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: env,
			LogLevel:    v.GetString("LOG_LEVEL"),
			LogFormat:   v.GetString("LOG_FORMAT"),
		},
		API: APIConfig{
			URL:     v.GetString("API_URL"),
			Key:     v.GetString("API_KEY"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:               v.GetString("PG_HOST"),
			Port:               v.GetString("PG_PORT"),
			User:               v.GetString("PG_USER"),
			Password:           v.GetString("PG_PASSWORD"),
			Name:               v.GetString("PG_DB"),
			SSLMode:            v.GetString("PG_SSLMODE"),
			ConnectTimeout:     v.GetDuration("DB_CONNECT_TIMEOUT"),
			UpsertChunkSize:    v.GetInt("DB_UPSERT_CHUNK_SIZE"),
			EnableQueryLogging: v.GetBool("DB_QUERY_LOGGING"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			LockTTL:  v.GetDuration("SYNC_LOCK_TTL"),
		},
		Archive: ArchiveConfig{
			Bucket:          v.GetString("ARCHIVE_BUCKET"),
			Region:          v.GetString("AWS_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Endpoint:        v.GetString("AWS_S3_ENDPOINT"),
			UsePathStyle:    v.GetBool("AWS_S3_PATH_STYLE"),
		},
		Secrets: SecretsConfig{
			Provider:   strings.ToLower(v.GetString("SECRETS_PROVIDER")),
			SecretName: v.GetString("AWS_SECRET_NAME"),
			Region:     v.GetString("AWS_REGION"),
		},
	}

	return cfg, nil
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	validators := []Validator{
		&RequiredValidator{},
		&RangeValidator{},
	}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, validator := range validators {
		if err := validator.Validate(c); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return nil
}

// RedisEnabled reports whether the run lock is configured
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// ArchiveEnabled reports whether payload archiving is configured
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.Bucket != ""
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "coffeechain-sync")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("API_TIMEOUT", 30*time.Second)
	v.SetDefault("PG_SSLMODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_UPSERT_CHUNK_SIZE", 1000)
	v.SetDefault("DB_QUERY_LOGGING", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SYNC_LOCK_TTL", 10*time.Minute)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_S3_PATH_STYLE", false)
	v.SetDefault("SECRETS_PROVIDER", SecretsProviderEnv)
}

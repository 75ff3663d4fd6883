package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/byigitt/kaiban/core/db"
)

type Config struct {
	OTel   OTelConfig
	Oracle OracleConfig
	Redis  RedisConfig
	Env    string
	Port   string
	Store  StoreBackend
	NodeID int64
	DB     db.Config
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
	Environment    string
	SampleRatio    float64
}

type OracleConfig struct {
	Provider    string // "openai", "anthropic", "gemini" or "scripted"
	APIKey      string
	BaseURL     string // Optional: for custom endpoints
	Model       string
	MaxTokens   int
	Temperature *float64
}

type RedisConfig struct {
	URL            string
	EventsStream   string
	EventsMaxLen   int64
	IdempotencyTTL time.Duration
}

type StoreBackend string

const (
	StorePostgres StoreBackend = "postgres"
	StoreMemory   StoreBackend = "memory"
)

const ProviderScripted = "scripted"

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeCLI    ServiceType = "cli"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.cli for the kaiban command
//
// Falls back to .env if service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("KAIBAN_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment
// without reading any .env file.
func FromEnv() (Config, error) {
	env := getEnv("KAIBAN_ENV", "development")
	cfg := Config{
		Env:    env,
		Port:   getEnv("PORT", "8080"),
		Store:  StoreBackend(strings.ToLower(getEnv("STORE_BACKEND", string(StorePostgres)))),
		NodeID: getEnvInt64("SNOWFLAKE_NODE_ID", 1),
		DB: db.Config{
			DSN:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvInt32("DB_MAX_CONNS", 10),
			MinConns: getEnvInt32("DB_MIN_CONNS", 2),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "kaiban"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    env,
			SampleRatio:    getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),
		},
		Oracle: OracleConfig{
			Provider:    strings.ToLower(getEnv("ORACLE_PROVIDER", "openai")),
			APIKey:      getEnv("ORACLE_API_KEY", ""),
			BaseURL:     getEnv("ORACLE_BASE_URL", ""),
			Model:       getEnv("ORACLE_MODEL", ""),
			MaxTokens:   getEnvInt("ORACLE_MAX_TOKENS", 1024),
			Temperature: getEnvFloatPtr("ORACLE_TEMPERATURE"),
		},
		Redis: RedisConfig{
			URL:            getEnv("REDIS_URL", ""),
			EventsStream:   getEnv("BOARD_EVENTS_STREAM", "kaiban:board-events"),
			EventsMaxLen:   getEnvInt64("BOARD_EVENTS_MAX_LEN", 10000),
			IdempotencyTTL: getEnvDuration("IDEMPOTENCY_TTL", 10*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=%s", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND: %s", c.Store)
	}

	switch c.Oracle.Provider {
	case ProviderScripted:
	case "openai", "anthropic", "gemini":
		if c.Oracle.APIKey == "" {
			return fmt.Errorf("ORACLE_API_KEY is required for provider %s", c.Oracle.Provider)
		}
	default:
		return fmt.Errorf("unsupported ORACLE_PROVIDER: %s", c.Oracle.Provider)
	}

	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE_ID must be between 0 and 1023, got %d", c.NodeID)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func (c OracleConfig) Scripted() bool {
	return c.Provider == ProviderScripted
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) int32 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvFloatPtr(key string) *float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

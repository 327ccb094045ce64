// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Log         LogConfig
	Bot         BotConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Catalog     CatalogConfig
}

type LogConfig struct {
	Level  string
	Format string // "json" | "text"
}

type BotConfig struct {
	Token          string
	AdminID        int64
	Mode           string // "polling" | "webhook"
	WebhookURL     string // public base URL, the handler path is appended
	WebhookSecret  string
	PollTimeout    int
	Workers        int
	RatePerSecond  float64
	RateBurst      int
	Debug          bool
	NotifyTimeout  int // seconds
	BreakerTimeout int // seconds
}

type ServerConfig struct {
	Enabled      bool
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Driver       string // "sqlite" | "postgres"
	Path         string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type SessionConfig struct {
	Backend string // "memory" | "redis"
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey     string
	AdminTokenTTL int // in hours
}

type CatalogConfig struct {
	SeedPath string
}

const (
	BotModePolling = "polling"
	BotModeWebhook = "webhook"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

var (
	ErrMissingBotToken = errors.New("BOT_TOKEN is not set, check your .env")
	ErrInvalidAdminID  = errors.New("ADMIN_ID must be a positive integer, check your .env")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	adminID, err := parseAdminID(os.Getenv("ADMIN_ID"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", ""),
		},
		Bot: BotConfig{
			Token:          strings.TrimSpace(os.Getenv("BOT_TOKEN")),
			AdminID:        adminID,
			Mode:           getEnv("BOT_MODE", BotModePolling),
			WebhookURL:     getEnv("WEBHOOK_URL", ""),
			WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
			PollTimeout:    getEnvAsInt("BOT_POLL_TIMEOUT", 60),
			Workers:        getEnvAsInt("BOT_WORKERS", 4),
			RatePerSecond:  getEnvAsFloat("RATE_LIMIT_PER_SECOND", 3),
			RateBurst:      getEnvAsInt("RATE_LIMIT_BURST", 6),
			Debug:          getEnvAsBool("BOT_DEBUG", false),
			NotifyTimeout:  getEnvAsInt("BOT_NOTIFY_TIMEOUT", 10),
			BreakerTimeout: getEnvAsInt("BOT_BREAKER_TIMEOUT", 30),
		},
		Server: ServerConfig{
			Enabled:      getEnvAsBool("SERVER_ENABLED", true),
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", DriverSQLite),
			Path:         getEnv("DB_PATH", "bot.db"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "shopbot"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", SessionBackendMemory),
			TTL:     time.Duration(getEnvAsInt("SESSION_TTL", 3600)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AdminTokenTTL: getEnvAsInt("JWT_ADMIN_TTL", 24*30),
		},
		Catalog: CatalogConfig{
			SeedPath: getEnv("CATALOG_SEED_PATH", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return ErrMissingBotToken
	}

	if c.Bot.AdminID <= 0 {
		return ErrInvalidAdminID
	}

	switch c.Bot.Mode {
	case BotModePolling:
	case BotModeWebhook:
		if c.Bot.WebhookURL == "" {
			return fmt.Errorf("WEBHOOK_URL is required when BOT_MODE=%s", BotModeWebhook)
		}
		if !c.Server.Enabled {
			return fmt.Errorf("webhook mode needs the HTTP server, SERVER_ENABLED must be true")
		}
	default:
		return fmt.Errorf("invalid BOT_MODE %q: must be %s or %s", c.Bot.Mode, BotModePolling, BotModeWebhook)
	}

	if c.Bot.Workers < 1 {
		return fmt.Errorf("BOT_WORKERS must be at least 1")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be %s or %s", c.Database.Driver, DriverSQLite, DriverPostgres)
	}

	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("invalid SESSION_BACKEND %q: must be %s or %s", c.Session.Backend, SessionBackendMemory, SessionBackendRedis)
	}

	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Driver == DriverPostgres && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseAdminID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAdminID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidAdminID
	}
	return id, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Store     StoreConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	GinMode         string
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Driver string
	DSN    string
}

type CORSConfig struct {
	AllowOrigin string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads the configuration from the environment. Call godotenv.Load
// first when a .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", "debug"),
			TrustedProxies:  getEnvSlice("TRUSTED_PROXIES", []string{"127.0.0.1"}),
			ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("CATALOG_STORE", StoreMemory)),
			DSN:    getEnv("DB_DSN", ""),
		},
		CORS: CORSConfig{
			AllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst: getEnvInt("RATE_LIMIT_BURST", 40),
		},
	}

	switch cfg.Store.Driver {
	case StoreMemory:
	case StoreSQLite:
		if cfg.Store.DSN == "" {
			cfg.Store.DSN = "file:catalog.db?cache=shared"
		}
	case StoreMySQL:
		if cfg.Store.DSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when CATALOG_STORE=%s", StoreMySQL)
		}
	default:
		return nil, fmt.Errorf("unsupported CATALOG_STORE %q", cfg.Store.Driver)
	}

	if cfg.Logger.Format != "text" && cfg.Logger.Format != "json" {
		return nil, fmt.Errorf("unsupported LOG_FORMAT %q", cfg.Logger.Format)
	}
	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return cfg, nil
}

// InitDB opens the SQL store named by cfg. The memory store has no database.
func InitDB(cfg StoreConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.Driver {
	case StoreSQLite:
		return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	case StoreMySQL:
		return gorm.Open(mysql.Open(cfg.DSN), gormCfg)
	}
	return nil, fmt.Errorf("store %q has no database", cfg.Driver)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
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

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

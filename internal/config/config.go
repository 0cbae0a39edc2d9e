package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Store backend names.
const (
	StoreBackendFile     = "file"
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Backend  BackendConfig
	Store    StoreConfig
	Database DatabaseConfig
	Checkout CheckoutConfig
	Search   SearchConfig
	Geo      GeoConfig
	Logger   LoggerConfig
}

// BackendConfig holds the external API client configuration.
type BackendConfig struct {
	BaseURL string
	Token   string
	Timeout int // seconds
}

// StoreConfig selects the device-local store backend.
type StoreConfig struct {
	Backend string // "file", "memory", or "postgres"
	Dir     string // file backend root
}

// DatabaseConfig holds database-related configuration (postgres store
// backend only).
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// CheckoutConfig holds the order submission retry policy.
type CheckoutConfig struct {
	MaxRetries     int
	InitialBackoff int // seconds
}

// SearchConfig holds search debounce settings.
type SearchConfig struct {
	DebounceMillis int
}

// GeoConfig holds location detection settings.
type GeoConfig struct {
	Timeout int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_URL", ""),
			Token:   getEnv("BACKEND_TOKEN", ""),
			Timeout: getEnvAsInt("BACKEND_TIMEOUT", 30),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", StoreBackendFile),
			Dir:     getEnv("STORE_DIR", defaultStoreDir()),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "kiranakart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 2),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Checkout: CheckoutConfig{
			MaxRetries:     getEnvAsInt("CHECKOUT_MAX_RETRIES", 2),
			InitialBackoff: getEnvAsInt("CHECKOUT_INITIAL_BACKOFF", 1),
		},
		Search: SearchConfig{
			DebounceMillis: getEnvAsInt("SEARCH_DEBOUNCE_MS", 300),
		},
		Geo: GeoConfig{
			Timeout: getEnvAsInt("GEO_TIMEOUT", 15),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend URL is required")
	}

	if c.Backend.Timeout < 1 {
		return fmt.Errorf("backend timeout must be at least 1 second")
	}

	switch c.Store.Backend {
	case StoreBackendFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("store directory is required for the file backend")
		}
	case StoreBackendMemory:
	case StoreBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres backend")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required for the postgres backend")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required for the postgres backend")
		}
		if c.Database.MinConnections < 1 || c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database connection bounds are invalid")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.Store.Backend)
	}

	if c.Checkout.MaxRetries < 0 {
		return fmt.Errorf("checkout max retries must not be negative")
	}

	if c.Checkout.InitialBackoff < 1 {
		return fmt.Errorf("checkout initial backoff must be at least 1 second")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// defaultStoreDir places the file store under the user's home
// directory, falling back to the working directory.
func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kirana-kart"
	}
	return filepath.Join(home, ".kirana-kart")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

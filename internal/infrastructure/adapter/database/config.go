package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	appconfig "github.com/ManishHQ/shoq-ai-sub000/internal/infrastructure/config"
)

// Config represents database configuration
type Config struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
	LogLevel        string
	RetryAttempts   int
	RetryDelay      time.Duration
}

// FromAppConfig builds a database Config from the application configuration
func FromAppConfig(cfg *appconfig.Config) *Config {
	port, err := strconv.Atoi(cfg.Database.Port)
	if err != nil || port == 0 {
		port = 5432
	}
	return &Config{
		Host:            cfg.Database.Host,
		Port:            port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}
}

// DefaultConfig returns a Config filled from environment variables.
// No sensitive information is hardcoded.
func DefaultConfig() *Config {
	return &Config{
		Host:            configEnv("SHOQ_DB_HOST"),
		Port:            configEnvAsInt("SHOQ_DB_PORT", 5432),
		Username:        configEnv("SHOQ_DB_USERNAME"),
		Password:        configEnv("SHOQ_DB_PASSWORD"),
		Database:        configEnv("SHOQ_DB_NAME"),
		SSLMode:         configEnvOrDefault("SHOQ_DB_SSL_MODE", "disable"),
		MaxOpenConns:    configEnvAsInt("SHOQ_DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    configEnvAsInt("SHOQ_DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: time.Duration(configEnvAsInt("SHOQ_DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		ConnMaxIdleTime: time.Duration(configEnvAsInt("SHOQ_DB_CONN_MAX_IDLE_TIME_MINUTES", 15)) * time.Minute,
		QueryTimeout:    time.Duration(configEnvAsInt("SHOQ_DB_QUERY_TIMEOUT_SECONDS", 5)) * time.Second,
		LogLevel:        configEnvOrDefault("SHOQ_LOGGER_LEVEL", "info"),
		RetryAttempts:   configEnvAsInt("SHOQ_DB_RETRY_ATTEMPTS", 3),
		RetryDelay:      time.Duration(configEnvAsInt("SHOQ_DB_RETRY_DELAY_SECONDS", 1)) * time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Password == "" {
		return errors.New("database password is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
		"prefer":      true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}

	return nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// configEnv gets a value from environment variables with no default
func configEnv(key string) string {
	return os.Getenv(key)
}

// configEnvOrDefault gets a value from environment variables with a default value
func configEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// configEnvAsInt gets an integer value from environment variables with a default
func configEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

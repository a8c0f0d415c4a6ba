package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Oracle      OracleConfig   `mapstructure:"oracle"`
	Treasury    TreasuryConfig `mapstructure:"treasury"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// OracleConfig contains ledger oracle (mirror indexer) client settings
type OracleConfig struct {
	BaseURL       string        `mapstructure:"baseUrl"`
	Timeout       time.Duration `mapstructure:"timeout"` // seconds
	RetryAttempts int           `mapstructure:"retryAttempts"`
	RetryBackoff  time.Duration `mapstructure:"retryBackoff"` // milliseconds
}

// TreasuryConfig contains deposit verification policy settings
type TreasuryConfig struct {
	AccountID     string        `mapstructure:"accountId"`
	TokenID       string        `mapstructure:"tokenId"`
	TokenDecimals int32         `mapstructure:"tokenDecimals"`
	MinDeposit    string        `mapstructure:"minDeposit"`
	RecencyWindow time.Duration `mapstructure:"recencyWindow"` // hours
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Lease    LeaseConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         string        `mapstructure:"SERVER_PORT"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type LeaseConfig struct {
	// GracePeriodDays is how many days past an installment's expected date
	// the overdue sweep waits before flagging it.
	GracePeriodDays int `mapstructure:"GRACE_PERIOD_DAYS"`
	// ExpiringSoonDays is the default lookahead window for expiring-contract
	// queries and the daily expiration check.
	ExpiringSoonDays int `mapstructure:"EXPIRING_SOON_DAYS"`
	// ReminderLeadDays is how many days before an installment's expected
	// date the reminder job picks it up.
	ReminderLeadDays int           `mapstructure:"REMINDER_LEAD_DAYS"`
	DebtCacheTTL     time.Duration `mapstructure:"DEBT_CACHE_TTL"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	// Registering empty defaults keys the env lookup for Unmarshal.
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GRACE_PERIOD_DAYS", 3)
	viper.SetDefault("EXPIRING_SOON_DAYS", 30)
	viper.SetDefault("REMINDER_LEAD_DAYS", 2)
	viper.SetDefault("DEBT_CACHE_TTL", "5m")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Lease.GracePeriodDays < 0 {
		return fmt.Errorf("GRACE_PERIOD_DAYS must not be negative")
	}

	if c.Lease.ExpiringSoonDays <= 0 {
		return fmt.Errorf("EXPIRING_SOON_DAYS must be greater than 0")
	}

	if c.Lease.ReminderLeadDays <= 0 {
		return fmt.Errorf("REMINDER_LEAD_DAYS must be greater than 0")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

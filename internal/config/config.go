// Package config loads application configuration from environment variables
// and an optional config file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/maildesk/maildesk-core/internal/database"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseDriver string `mapstructure:"database_driver"`
	DatabaseDSN    string `mapstructure:"database_dsn"`

	// Storage
	AttachmentDir string `mapstructure:"attachment_dir"`

	// Logging
	LogLevel string `mapstructure:"log_level"`

	AppEnv string `mapstructure:"app_env"`
}

// Load reads configuration with viper: defaults, then an optional
// maildesk.yaml in the working directory, then MAILDESK_* environment
// variables, highest precedence last.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("database_driver", database.DriverSQLite)
	v.SetDefault("database_dsn", "email_system.db")
	v.SetDefault("attachment_dir", "./attachments")
	v.SetDefault("log_level", "info")
	v.SetDefault("app_env", "development")

	v.SetConfigName("maildesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MAILDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("database_driver must be %q or %q", database.DriverSQLite, database.DriverPostgres)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database_dsn cannot be empty")
	}
	if c.AttachmentDir == "" {
		return fmt.Errorf("attachment_dir cannot be empty")
	}
	return nil
}

// SlogLevel maps the configured log level onto a slog.Level, defaulting to
// info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogConfig logs configuration values
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("database_driver", c.DatabaseDriver),
		slog.String("attachment_dir", c.AttachmentDir),
		slog.String("log_level", c.LogLevel),
		slog.String("app_env", c.AppEnv),
	)
}

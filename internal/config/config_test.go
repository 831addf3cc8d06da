package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "email_system.db", cfg.DatabaseDSN)
	assert.Equal(t, "./attachments", cfg.AttachmentDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.AppEnv)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MAILDESK_DATABASE_DRIVER", "postgres")
	t.Setenv("MAILDESK_DATABASE_DSN", "postgres://localhost/maildesk")
	t.Setenv("MAILDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "postgres://localhost/maildesk", cfg.DatabaseDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("MAILDESK_DATABASE_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_EmptyDSN(t *testing.T) {
	cfg := &Config{DatabaseDriver: "sqlite", DatabaseDSN: "", AttachmentDir: "./a"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_EmptyAttachmentDir(t *testing.T) {
	cfg := &Config{DatabaseDriver: "sqlite", DatabaseDSN: "db", AttachmentDir: ""}
	assert.Error(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.level)
	}
}

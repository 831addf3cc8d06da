// Package logger provides audit logging for account events. Credentials are
// never logged.
package logger

import (
	"log/slog"
	"os"
	"time"
)

// AuditLogger records registration and login outcomes.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new AuditLogger with JSON output.
func NewAuditLogger() *AuditLogger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &AuditLogger{
		logger: slog.New(handler),
	}
}

// NewAuditLoggerWithHandler creates an AuditLogger with a custom handler.
func NewAuditLoggerWithHandler(handler slog.Handler) *AuditLogger {
	return &AuditLogger{
		logger: slog.New(handler),
	}
}

// Registered logs a successful account registration.
func (a *AuditLogger) Registered(username string) {
	a.logger.Info("account_registered",
		slog.String("event_type", "registration"),
		slog.String("username", username),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LoginSucceeded logs a successful login.
func (a *AuditLogger) LoginSucceeded(username string) {
	a.logger.Info("login_succeeded",
		slog.String("event_type", "login"),
		slog.String("username", username),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LoginFailed logs a failed login attempt. Only the attempted username is
// recorded, never the password.
func (a *AuditLogger) LoginFailed(username string) {
	a.logger.Warn("login_failed",
		slog.String("event_type", "login_failure"),
		slog.String("username", username),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

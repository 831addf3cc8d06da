package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/maildesk/maildesk-core/internal/analytics"
	"github.com/maildesk/maildesk-core/internal/attachments"
	"github.com/maildesk/maildesk-core/internal/config"
	"github.com/maildesk/maildesk-core/internal/database"
	"github.com/maildesk/maildesk-core/internal/logger"
	"github.com/maildesk/maildesk-core/internal/mailbox"
	"github.com/maildesk/maildesk-core/internal/repository"
	"github.com/maildesk/maildesk-core/internal/services"
	"github.com/maildesk/maildesk-core/internal/spam"
)

// main boots the MailDesk core and keeps it alive for the UI shell, which
// drives the session through services.MailService. The store is opened once
// here and closed on shutdown.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(slogger)
	cfg.LogConfig(slogger)

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("Failed to close database", slog.Any("error", err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	attachStore, err := attachments.NewStore(cfg.AttachmentDir)
	if err != nil {
		slog.Error("Failed to initialize attachment store", slog.Any("error", err))
		os.Exit(1)
	}

	accountRepo := repository.NewAccountRepository(db)
	emailRepo := repository.NewEmailRepository(db, spam.IsSpam)

	svc := services.NewMailService(
		accountRepo,
		emailRepo,
		mailbox.NewService(emailRepo),
		analytics.NewService(emailRepo),
		attachStore,
		logger.NewAuditLogger(),
	)
	_ = svc // handed to the UI shell, which owns the event loop

	slog.Info("MailDesk core ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
}

// Package services wires the store, classifier, query engine and analytics
// into the request/response surface the UI shell calls. Every operation is
// synchronous and runs to completion on the calling goroutine; there are no
// callbacks into the UI.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/maildesk/maildesk-core/internal/analytics"
	"github.com/maildesk/maildesk-core/internal/attachments"
	apperrors "github.com/maildesk/maildesk-core/internal/errors"
	"github.com/maildesk/maildesk-core/internal/export"
	"github.com/maildesk/maildesk-core/internal/logger"
	"github.com/maildesk/maildesk-core/internal/mailbox"
	"github.com/maildesk/maildesk-core/internal/models"
	"github.com/maildesk/maildesk-core/internal/repository"
)

// ComposeResult reports the outcome of sending a message.
type ComposeResult struct {
	ID      uint
	Flagged bool
}

// MailService is the single entry point for the UI collaborator.
type MailService struct {
	accounts  repository.AccountRepository
	emails    repository.EmailRepository
	mailbox   *mailbox.Service
	analytics *analytics.Service
	attach    *attachments.Store
	audit     *logger.AuditLogger
}

// NewMailService creates the session-facing service over its collaborators.
func NewMailService(
	accounts repository.AccountRepository,
	emails repository.EmailRepository,
	mailboxSvc *mailbox.Service,
	analyticsSvc *analytics.Service,
	attach *attachments.Store,
	audit *logger.AuditLogger,
) *MailService {
	return &MailService{
		accounts:  accounts,
		emails:    emails,
		mailbox:   mailboxSvc,
		analytics: analyticsSvc,
		attach:    attach,
		audit:     audit,
	}
}

// Register creates a new account.
func (s *MailService) Register(ctx context.Context, username, password string) error {
	if err := s.accounts.Create(ctx, username, password); err != nil {
		return err
	}
	s.audit.Registered(username)
	return nil
}

// Login authenticates and returns the session username. The credential
// comparison is exact; failures surface as ErrInvalidCredentials.
func (s *MailService) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		s.audit.LoginFailed(username)
		return "", err
	}
	s.audit.LoginSucceeded(account.Username)
	return account.Username, nil
}

// Compose validates, classifies and stores a new message from sender. The
// recipient, subject and body are trimmed the way the compose form does;
// attachment is the already-encoded payload, nil when none was attached.
// Flagged reports whether the classifier routed the message to spam.
func (s *MailService) Compose(ctx context.Context, sender, recipient, subject, body string, attachment *string) (ComposeResult, error) {
	email := &models.Email{
		Sender:     sender,
		Recipient:  strings.TrimSpace(recipient),
		Subject:    strings.TrimSpace(subject),
		Body:       strings.TrimSpace(body),
		Attachment: attachment,
	}

	id, err := s.emails.Insert(ctx, email)
	if err != nil {
		return ComposeResult{}, err
	}
	return ComposeResult{ID: id, Flagged: email.IsSpam}, nil
}

// ListFolder returns the ordered view for one mailbox folder.
func (s *MailService) ListFolder(ctx context.Context, q mailbox.Query) ([]models.Email, error) {
	return s.mailbox.List(ctx, q)
}

// MarkSpam flags a message as spam. Idempotent.
func (s *MailService) MarkSpam(ctx context.Context, id uint) error {
	return s.emails.MarkSpam(ctx, id)
}

// Delete permanently removes a message from every view.
func (s *MailService) Delete(ctx context.Context, id uint) error {
	return s.emails.Delete(ctx, id)
}

// Report computes the analytics report for user.
func (s *MailService) Report(ctx context.Context, user string) (*analytics.Report, error) {
	return s.analytics.BuildReport(ctx, user)
}

// ExportReport writes the analytics CSV for user to path.
func (s *MailService) ExportReport(ctx context.Context, user, path string) error {
	report, err := s.analytics.BuildReport(ctx, user)
	if err != nil {
		return err
	}
	return export.WriteReportToFile(path, report)
}

// ExportMailbox dumps the full message table to path.
func (s *MailService) ExportMailbox(ctx context.Context, path string) error {
	emails, err := s.emails.ListAll(ctx)
	if err != nil {
		return err
	}
	return export.WriteMailboxToFile(path, emails)
}

// DownloadAttachment decodes the attachment of the given message and writes
// it to destPath.
func (s *MailService) DownloadAttachment(ctx context.Context, id uint, destPath string) error {
	email, err := s.emails.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !email.HasAttachment() {
		return fmt.Errorf("%w: message has no attachment", apperrors.ErrNotFound)
	}
	return s.attach.SaveTo(*email.Attachment, destPath)
}

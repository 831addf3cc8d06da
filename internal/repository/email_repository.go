package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/maildesk/maildesk-core/internal/errors"
	"github.com/maildesk/maildesk-core/internal/models"
	"github.com/maildesk/maildesk-core/internal/spam"
)

// EmailRepository defines the interface for message data access. Row sets
// come back unordered; ordering is the mailbox query engine's concern.
type EmailRepository interface {
	Insert(ctx context.Context, email *models.Email) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.Email, error)
	ListByRecipient(ctx context.Context, user string) ([]models.Email, error)
	ListBySender(ctx context.Context, user string) ([]models.Email, error)
	ListSpamByRecipient(ctx context.Context, user string) ([]models.Email, error)
	ListInvolving(ctx context.Context, user string) ([]models.Email, error)
	ListAll(ctx context.Context) ([]models.Email, error)
	MarkSpam(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// emailRepository implements EmailRepository using GORM
type emailRepository struct {
	db       *gorm.DB
	classify spam.Classifier
	now      func() time.Time
}

// NewEmailRepository creates a new EmailRepository instance. The classifier
// runs synchronously on every insert so the spam flag lands in the same
// transaction as the row.
func NewEmailRepository(db *gorm.DB, classify spam.Classifier) EmailRepository {
	return &emailRepository{db: db, classify: classify, now: time.Now}
}

// NewEmailRepositoryWithClock creates an EmailRepository with an injected
// clock for deterministic timestamps in tests.
func NewEmailRepositoryWithClock(db *gorm.DB, classify spam.Classifier, now func() time.Time) EmailRepository {
	return &emailRepository{db: db, classify: classify, now: now}
}

// Insert validates, classifies and persists a new message, returning the
// assigned id. Subject and body must be non-empty and the recipient must be
// a registered account. The timestamp is set once here and never updated.
func (r *emailRepository) Insert(ctx context.Context, email *models.Email) (uint, error) {
	if email.Recipient == "" || email.Subject == "" || email.Body == "" {
		return 0, apperrors.ErrInvalidInput
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("username = ?", email.Recipient).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to validate recipient: %w", err)
		}
		if count == 0 {
			return apperrors.ErrUnknownRecipient
		}

		email.Timestamp = r.now().Format(models.TimestampLayout)
		email.IsSpam = r.classify(email.Subject, email.Body)

		if err := tx.Create(email).Error; err != nil {
			return fmt.Errorf("failed to insert email: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return email.ID, nil
}

// GetByID retrieves a message by its ID
func (r *emailRepository) GetByID(ctx context.Context, id uint) (*models.Email, error) {
	var email models.Email
	result := r.db.WithContext(ctx).First(&email, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get email by ID: %w", result.Error)
	}
	return &email, nil
}

// ListByRecipient returns every message addressed to user, spam included.
// The inbox view is deliberately unfiltered by the spam flag.
func (r *emailRepository) ListByRecipient(ctx context.Context, user string) ([]models.Email, error) {
	return r.list(ctx, "recipient = ?", user)
}

// ListBySender returns every message user has sent.
func (r *emailRepository) ListBySender(ctx context.Context, user string) ([]models.Email, error) {
	return r.list(ctx, "sender = ?", user)
}

// ListSpamByRecipient returns the spam-flagged subset of user's inbox.
func (r *emailRepository) ListSpamByRecipient(ctx context.Context, user string) ([]models.Email, error) {
	return r.list(ctx, "recipient = ? AND is_spam = ?", user, true)
}

// ListInvolving returns every message where user is sender or recipient.
// This is the analytics input set.
func (r *emailRepository) ListInvolving(ctx context.Context, user string) ([]models.Email, error) {
	return r.list(ctx, "sender = ? OR recipient = ?", user, user)
}

// ListAll returns the full message table, for the mailbox CSV dump.
func (r *emailRepository) ListAll(ctx context.Context) ([]models.Email, error) {
	var emails []models.Email
	if err := r.db.WithContext(ctx).Order("id").Find(&emails).Error; err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return emails, nil
}

func (r *emailRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Email, error) {
	var emails []models.Email
	if err := r.db.WithContext(ctx).Where(query, args...).Find(&emails).Error; err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	return emails, nil
}

// MarkSpam flips the one-way spam flag. Marking an already-spam message is a
// no-op success; there is no way to clear the flag.
func (r *emailRepository) MarkSpam(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var email models.Email
		if err := tx.First(&email, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to load email: %w", err)
		}
		if email.IsSpam {
			return nil
		}
		if err := tx.Model(&models.Email{}).Where("id = ?", id).Update("is_spam", true).Error; err != nil {
			return fmt.Errorf("failed to mark email as spam: %w", err)
		}
		return nil
	})
}

// Delete hard-deletes a message by its ID. No tombstone, no recovery.
func (r *emailRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Email{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete email: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

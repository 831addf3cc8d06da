package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/maildesk/maildesk-core/internal/errors"
	"github.com/maildesk/maildesk-core/internal/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
	Exists(ctx context.Context, username string) (bool, error)
}

// accountRepository implements AccountRepository using GORM
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create registers a new account. The username is the identity key; a second
// registration under the same name fails with ErrDuplicateAccount.
func (r *accountRepository) Create(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperrors.ErrInvalidInput
	}

	account := models.Account{Username: username, Password: password}
	if err := r.db.WithContext(ctx).Create(&account).Error; err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Authenticate looks up the account by exact username and password match.
// No trimming, no case folding; the credential comparison is byte-exact.
func (r *accountRepository) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	var account models.Account
	result := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate: %w", result.Error)
	}
	return &account, nil
}

// Exists reports whether an account with the given username is registered.
func (r *accountRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("username = ?", username).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check account existence: %w", result.Error)
	}
	return count > 0, nil
}

// isDuplicateKeyError checks if the error is a duplicate key violation
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505") // PostgreSQL unique violation code
}

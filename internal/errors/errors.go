// Package errors defines the domain error taxonomy for the mail store.
// Every error here is recovered at the call boundary and surfaced as a
// user-facing notice; none is fatal to the session.
package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error types
var (
	// ErrDuplicateAccount indicates the username is already registered
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials indicates a failed username/password match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownRecipient indicates the recipient account does not exist
	ErrUnknownRecipient = errors.New("recipient not found")

	// ErrInvalidInput indicates an empty required field
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates an operation on a missing message id
	ErrNotFound = errors.New("message not found")

	// ErrIOFailure indicates a file or CSV read/write failure
	ErrIOFailure = errors.New("i/o failure")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateAccount checks if the error is a duplicate account error
func IsDuplicateAccount(err error) bool {
	return errors.Is(err, ErrDuplicateAccount)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIOFailure checks if the error is an I/O failure
func IsIOFailure(err error) bool {
	return errors.Is(err, ErrIOFailure)
}

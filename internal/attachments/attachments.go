// Package attachments handles the base64 attachment payloads: encoding a
// local file at compose time and writing a stored payload back to disk on
// download. The original filename is shown once at attach time and is not
// persisted; only the encoded bytes survive.
package attachments

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "github.com/maildesk/maildesk-core/internal/errors"
)

// MaxFileSize is the maximum accepted attachment size (25 MB).
const MaxFileSize = 25 * 1024 * 1024

// Encode returns the standard base64 text for content. Empty input encodes
// to an empty string and round-trips to empty bytes.
func Encode(content []byte) string {
	return base64.StdEncoding.EncodeToString(content)
}

// Decode returns the original bytes for an encoded payload.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid attachment payload: %w", err)
	}
	return data, nil
}

// Attach reads the file at path and returns its encoded payload together
// with the display name shown to the user at compose time. One blocking
// read, no retry.
func Attach(path string) (encoded, displayName string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrIOFailure, err)
	}
	if info.Size() > MaxFileSize {
		return "", "", fmt.Errorf("attachment exceeds %d bytes", int64(MaxFileSize))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrIOFailure, err)
	}
	return Encode(content), filepath.Base(path), nil
}

// Store writes decoded attachment payloads under a base directory.
type Store struct {
	basePath string
}

// NewStore creates an attachment store rooted at basePath, creating the
// directory if needed.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create attachment directory: %v", apperrors.ErrIOFailure, err)
	}
	return &Store{basePath: basePath}, nil
}

// Save decodes the payload and writes it to a fresh uuid-named file under
// the store's base directory, returning the written path. The stored
// payload carries no filename, so the name is synthesized.
func (s *Store) Save(encoded string) (string, error) {
	data, err := Decode(encoded)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.basePath, uuid.NewString())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrIOFailure, err)
	}
	return path, nil
}

// SaveTo decodes the payload and writes it verbatim to an explicit
// destination path chosen by the user.
func (s *Store) SaveTo(encoded, destPath string) error {
	data, err := Decode(encoded)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIOFailure, err)
	}
	return nil
}

// Package mailbox turns raw message rows into ordered folder views:
// folder selection, free-text filtering, then a stable multi-key sort.
package mailbox

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/maildesk/maildesk-core/internal/models"
	"github.com/maildesk/maildesk-core/internal/repository"
)

// Folder selects which slice of the store a view shows, always scoped to the
// current user.
type Folder string

const (
	// FolderInbox shows every message addressed to the user. Spam-flagged
	// rows are included; the inbox is deliberately not filtered by the flag.
	FolderInbox Folder = "inbox"
	// FolderSent shows every message the user has sent.
	FolderSent Folder = "sent"
	// FolderSpam shows the spam-flagged subset of the inbox.
	FolderSpam Folder = "spam"
)

// SortKey selects the display ordering of a folder view.
type SortKey string

const (
	SortBySubject SortKey = "subject"
	SortByContact SortKey = "contact"
	SortByDate    SortKey = "date"
)

// Query carries the view parameters for one folder listing.
type Query struct {
	User    string
	Folder  Folder
	Keyword string
	SortKey SortKey
}

// Service resolves folder queries against the email store.
type Service struct {
	emails repository.EmailRepository
}

// NewService creates a mailbox query service over the given repository.
func NewService(emails repository.EmailRepository) *Service {
	return &Service{emails: emails}
}

// List returns the ordered message sequence for a folder view. Filtering
// runs before sorting; an empty result is a valid outcome, not an error.
func (s *Service) List(ctx context.Context, q Query) ([]models.Email, error) {
	var (
		rows []models.Email
		err  error
	)
	switch q.Folder {
	case FolderInbox:
		rows, err = s.emails.ListByRecipient(ctx, q.User)
	case FolderSent:
		rows, err = s.emails.ListBySender(ctx, q.User)
	case FolderSpam:
		rows, err = s.emails.ListSpamByRecipient(ctx, q.User)
	default:
		return nil, fmt.Errorf("unknown folder %q", q.Folder)
	}
	if err != nil {
		return nil, err
	}

	rows = Filter(rows, q.User, q.Keyword)
	Sort(rows, q.User, q.SortKey)
	return rows, nil
}

// Filter keeps the messages whose other-party name, subject or body contains
// keyword, case-insensitively. An empty keyword matches everything.
func Filter(emails []models.Email, user, keyword string) []models.Email {
	if keyword == "" {
		return emails
	}
	kw := strings.ToLower(keyword)

	filtered := make([]models.Email, 0, len(emails))
	for _, e := range emails {
		if strings.Contains(strings.ToLower(e.OtherParty(user)), kw) ||
			strings.Contains(strings.ToLower(e.Subject), kw) ||
			strings.Contains(strings.ToLower(e.Body), kw) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Sort orders emails in place. Subject and Contact sort ascending,
// case-insensitive, empty values first. Date sorts descending on the raw
// timestamp string; the fixed-width layout makes lexical order
// chronological. The sort is stable, so equal keys keep store return order.
func Sort(emails []models.Email, user string, key SortKey) {
	switch key {
	case SortByContact:
		sort.SliceStable(emails, func(i, j int) bool {
			return strings.ToLower(emails[i].OtherParty(user)) < strings.ToLower(emails[j].OtherParty(user))
		})
	case SortByDate:
		sort.SliceStable(emails, func(i, j int) bool {
			return emails[i].Timestamp > emails[j].Timestamp
		})
	default: // SortBySubject
		sort.SliceStable(emails, func(i, j int) bool {
			return strings.ToLower(emails[i].Subject) < strings.ToLower(emails[j].Subject)
		})
	}
}

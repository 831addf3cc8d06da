// Package analytics computes descriptive statistics over a user's messages:
// summary counters, top contacts and zero-filled trailing time series. All
// results are data-only; rendering and CSV serialization live elsewhere.
package analytics

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/maildesk/maildesk-core/internal/models"
	"github.com/maildesk/maildesk-core/internal/repository"
)

// Trailing window sizes, right-aligned on the reference date.
const (
	DailyWindowDays   = 30
	MonthlyWindowSize = 6
	TopContactsLimit  = 5
)

// Summary holds the per-user counters and averages.
type Summary struct {
	TotalSent       int     `json:"total_sent"`
	TotalReceived   int     `json:"total_received"`
	AttachmentCount int     `json:"attachment_count"`
	AvgSubjectLen   float64 `json:"avg_subject_len"`
	AvgBodyLen      float64 `json:"avg_body_len"`
	TotalSpam       int     `json:"total_spam"`
	SpamReceived    int     `json:"spam_received"`
	SpamSent        int     `json:"spam_sent"`
}

// ContactCount is one entry of the top-contacts ranking.
type ContactCount struct {
	Contact string `json:"contact"`
	Count   int    `json:"count"`
}

// DateCount is one day bucket of the daily series.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MonthCount is one month bucket of the spam series.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// InboxBreakdown splits the received messages into normal and spam. This is
// the pie-chart input of the desktop UI.
type InboxBreakdown struct {
	Normal int `json:"normal"`
	Spam   int `json:"spam"`
}

// Report bundles every analytics result for one user.
type Report struct {
	Summary           Summary        `json:"summary"`
	TopContacts       []ContactCount `json:"top_contacts"`
	DailyCounts       []DateCount    `json:"daily_counts"`
	MonthlySpamCounts []MonthCount   `json:"monthly_spam_counts"`
	Inbox             InboxBreakdown `json:"inbox"`
}

// Summarize computes the summary counters for user over the given messages.
// Averages are character counts over every message involving the user, zero
// when there are none.
func Summarize(emails []models.Email, user string) Summary {
	var s Summary
	var involved, subjectChars, bodyChars int

	for i := range emails {
		e := &emails[i]
		if !e.Involves(user) {
			continue
		}
		involved++
		subjectChars += utf8.RuneCountInString(e.Subject)
		bodyChars += utf8.RuneCountInString(e.Body)

		if e.Sender == user {
			s.TotalSent++
			if e.IsSpam {
				s.SpamSent++
			}
		}
		if e.Recipient == user {
			s.TotalReceived++
			if e.IsSpam {
				s.SpamReceived++
			}
		}
		if e.HasAttachment() {
			s.AttachmentCount++
		}
		if e.IsSpam {
			s.TotalSpam++
		}
	}

	if involved > 0 {
		s.AvgSubjectLen = float64(subjectChars) / float64(involved)
		s.AvgBodyLen = float64(bodyChars) / float64(involved)
	}
	return s
}

// TopContacts ranks the other parties of every message involving user and
// returns the top five by count, descending. Equal counts keep first-seen
// order.
func TopContacts(emails []models.Email, user string) []ContactCount {
	index := make(map[string]int)
	counts := make([]ContactCount, 0)

	for i := range emails {
		e := &emails[i]
		if !e.Involves(user) {
			continue
		}
		contact := e.OtherParty(user)
		if pos, ok := index[contact]; ok {
			counts[pos].Count++
			continue
		}
		index[contact] = len(counts)
		counts = append(counts, ContactCount{Contact: contact, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > TopContactsLimit {
		counts = counts[:TopContactsLimit]
	}
	return counts
}

// DailyCounts buckets user's messages per calendar day over the 30-day
// trailing window ending today, inclusive. The result always has exactly 30
// entries in ascending date order; days without messages are explicit zeros.
func DailyCounts(emails []models.Email, user string, today time.Time) []DateCount {
	start := today.AddDate(0, 0, -(DailyWindowDays - 1))

	buckets := make([]DateCount, DailyWindowDays)
	index := make(map[string]int, DailyWindowDays)
	for i := 0; i < DailyWindowDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = DateCount{Date: date}
		index[date] = i
	}

	for i := range emails {
		e := &emails[i]
		if !e.Involves(user) {
			continue
		}
		if pos, ok := index[e.Date()]; ok {
			buckets[pos].Count++
		}
	}
	return buckets
}

// MonthlySpamCounts buckets user's spam messages per calendar month over the
// trailing six-month window ending with the current month. Always exactly
// six entries, ascending, zero-filled.
func MonthlySpamCounts(emails []models.Email, user string, today time.Time) []MonthCount {
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	buckets := make([]MonthCount, MonthlyWindowSize)
	index := make(map[string]int, MonthlyWindowSize)
	for i := 0; i < MonthlyWindowSize; i++ {
		month := firstOfMonth.AddDate(0, i-(MonthlyWindowSize-1), 0).Format("2006-01")
		buckets[i] = MonthCount{Month: month}
		index[month] = i
	}

	for i := range emails {
		e := &emails[i]
		if !e.Involves(user) || !e.IsSpam {
			continue
		}
		if pos, ok := index[e.Month()]; ok {
			buckets[pos].Count++
		}
	}
	return buckets
}

// Breakdown splits user's received messages into normal and spam.
func Breakdown(emails []models.Email, user string) InboxBreakdown {
	var b InboxBreakdown
	for i := range emails {
		e := &emails[i]
		if e.Recipient != user {
			continue
		}
		if e.IsSpam {
			b.Spam++
		} else {
			b.Normal++
		}
	}
	return b
}

// Service builds reports from the email store.
type Service struct {
	emails repository.EmailRepository
	now    func() time.Time
}

// NewService creates an analytics service over the given repository.
func NewService(emails repository.EmailRepository) *Service {
	return &Service{emails: emails, now: time.Now}
}

// NewServiceWithClock creates a Service with an injected clock so trailing
// windows are deterministic in tests.
func NewServiceWithClock(emails repository.EmailRepository, now func() time.Time) *Service {
	return &Service{emails: emails, now: now}
}

// BuildReport queries the store once and computes every analytics result
// for user. A user with no messages gets a fully zero-filled report, never
// an error.
func (s *Service) BuildReport(ctx context.Context, user string) (*Report, error) {
	emails, err := s.emails.ListInvolving(ctx, user)
	if err != nil {
		return nil, err
	}

	today := s.now()
	return &Report{
		Summary:           Summarize(emails, user),
		TopContacts:       TopContacts(emails, user),
		DailyCounts:       DailyCounts(emails, user, today),
		MonthlySpamCounts: MonthlySpamCounts(emails, user, today),
		Inbox:             Breakdown(emails, user),
	}, nil
}

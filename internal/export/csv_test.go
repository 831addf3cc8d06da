package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maildesk/maildesk-core/internal/analytics"
	apperrors "github.com/maildesk/maildesk-core/internal/errors"
	"github.com/maildesk/maildesk-core/internal/models"
)

var reportDate = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func emptyReport() *analytics.Report {
	return &analytics.Report{
		Summary:           analytics.Summarize(nil, "alice"),
		TopContacts:       analytics.TopContacts(nil, "alice"),
		DailyCounts:       analytics.DailyCounts(nil, "alice", reportDate),
		MonthlySpamCounts: analytics.MonthlySpamCounts(nil, "alice", reportDate),
	}
}

func TestWriteReport_ZeroMessages(t *testing.T) {
	var sb strings.Builder
	err := WriteReport(&sb, emptyReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")

	// Header + 9 summary rows, blank, contacts header, blank, date header +
	// 30 rows, blank, month header + 6 rows.
	require.Len(t, lines, 10+1+1+1+31+1+7)

	assert.Equal(t, "Metric,Value", lines[0])
	assert.Equal(t, "Total Sent,0", lines[1])
	assert.Equal(t, "Avg Subject Length,0.0", lines[5])
	assert.Equal(t, "", lines[10])
	assert.Equal(t, "Top Contacts,Count", lines[11])
	assert.Equal(t, "", lines[12])
	assert.Equal(t, "Date,Count", lines[13])
	assert.Equal(t, "2026-08-02,0", lines[14])
	assert.Equal(t, "2026-08-31,0", lines[43])
	assert.Equal(t, "", lines[44])
	assert.Equal(t, "Spam Month,Count", lines[45])
	assert.Equal(t, "2026-03,0", lines[46])
	assert.Equal(t, "2026-08,0", lines[51])
}

func TestWriteReport_SectionsPopulated(t *testing.T) {
	emails := []models.Email{
		{Sender: "alice", Recipient: "bob", Subject: "hello", Body: "world",
			Timestamp: "2026-08-31T09:00:00.000000"},
		{Sender: "bob", Recipient: "alice", Subject: "win money", Body: "now", IsSpam: true,
			Timestamp: "2026-08-30T09:00:00.000000"},
	}
	report := &analytics.Report{
		Summary:           analytics.Summarize(emails, "alice"),
		TopContacts:       analytics.TopContacts(emails, "alice"),
		DailyCounts:       analytics.DailyCounts(emails, "alice", reportDate),
		MonthlySpamCounts: analytics.MonthlySpamCounts(emails, "alice", reportDate),
	}

	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, report))
	out := sb.String()

	assert.Contains(t, out, "Total Sent,1\n")
	assert.Contains(t, out, "Total Received,1\n")
	assert.Contains(t, out, "Total (Sent+Received),2\n")
	assert.Contains(t, out, "bob,2\n")
	assert.Contains(t, out, "2026-08-31,1\n")
	assert.Contains(t, out, "2026-08-30,1\n")
	assert.Contains(t, out, "Spam Month,Count\n")
	assert.Contains(t, out, "2026-08,1\n")
}

func TestWriteMailbox_RowShape(t *testing.T) {
	att := "cGF5bG9hZA=="
	emails := []models.Email{
		{ID: 1, Recipient: "bob", Sender: "alice", Subject: "hi", Body: "there",
			Timestamp: "2026-08-31T09:00:00.000000"},
		{ID: 2, Recipient: "alice", Sender: "bob", Subject: "spam", Body: "x", IsSpam: true,
			Attachment: &att, Timestamp: "2026-08-31T10:00:00.000000"},
	}

	var sb strings.Builder
	require.NoError(t, WriteMailbox(&sb, emails))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, MailboxHeader, lines[0])
	assert.Equal(t, "1,bob,alice,hi,there,0,2026-08-31T09:00:00.000000,0", lines[1])
	assert.Equal(t, "2,alice,bob,spam,x,1,2026-08-31T10:00:00.000000,1", lines[2])
}

func TestWriteMailbox_ReplacesCommasInSubjectAndBody(t *testing.T) {
	emails := []models.Email{
		{ID: 1, Recipient: "bob", Sender: "alice",
			Subject: "one, two", Body: "a,b,c",
			Timestamp: "2026-08-31T09:00:00.000000"},
	}

	var sb strings.Builder
	require.NoError(t, WriteMailbox(&sb, emails))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "1,bob,alice,one  two,a b c,0,2026-08-31T09:00:00.000000,0", lines[1])
	// The replacement is lossy on purpose; the column count stays fixed.
	assert.Len(t, strings.Split(lines[1], ","), 8)
}

func TestWriteReportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")

	err := WriteReportToFile(path, emptyReport())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Metric,Value\n"))
}

func TestWriteMailboxToFile_BadPath(t *testing.T) {
	err := WriteMailboxToFile(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	assert.ErrorIs(t, err, apperrors.ErrIOFailure)
}

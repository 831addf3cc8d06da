// Package export serializes analytics reports and mailbox dumps to CSV.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maildesk/maildesk-core/internal/analytics"
	apperrors "github.com/maildesk/maildesk-core/internal/errors"
	"github.com/maildesk/maildesk-core/internal/models"
)

// MailboxHeader is the header row of the full mailbox dump.
const MailboxHeader = "id,recipient,sender,subject,body,attachment_present,timestamp,is_spam"

// csvWriter collects the first write error so sections can be emitted
// without per-line error plumbing.
type csvWriter struct {
	w   io.Writer
	err error
}

func (cw *csvWriter) line(format string, args ...interface{}) {
	if cw.err != nil {
		return
	}
	_, cw.err = fmt.Fprintf(cw.w, format+"\n", args...)
}

// WriteReport serializes an analytics report. Row order is fixed: summary
// key/value pairs, then top contacts, then the 30-day series, then the
// six-month spam series, each section separated by a blank line.
func WriteReport(w io.Writer, report *analytics.Report) error {
	cw := &csvWriter{w: w}

	s := report.Summary
	cw.line("Metric,Value")
	cw.line("Total Sent,%d", s.TotalSent)
	cw.line("Total Received,%d", s.TotalReceived)
	cw.line("Total (Sent+Received),%d", s.TotalSent+s.TotalReceived)
	cw.line("Emails with Attachments,%d", s.AttachmentCount)
	cw.line("Avg Subject Length,%.1f", s.AvgSubjectLen)
	cw.line("Avg Body Length,%.1f", s.AvgBodyLen)
	cw.line("Total Spam,%d", s.TotalSpam)
	cw.line("Spam Received,%d", s.SpamReceived)
	cw.line("Spam Sent,%d", s.SpamSent)

	cw.line("")
	cw.line("Top Contacts,Count")
	for _, c := range report.TopContacts {
		cw.line("%s,%d", sanitizeField(c.Contact), c.Count)
	}

	cw.line("")
	cw.line("Date,Count")
	for _, d := range report.DailyCounts {
		cw.line("%s,%d", d.Date, d.Count)
	}

	cw.line("")
	cw.line("Spam Month,Count")
	for _, m := range report.MonthlySpamCounts {
		cw.line("%s,%d", m.Month, m.Count)
	}

	if cw.err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIOFailure, cw.err)
	}
	return nil
}

// WriteMailbox serializes the full message table. Commas inside subject and
// body are replaced with spaces before writing, so the dump keeps a fixed
// column count at the cost of losing the original characters.
func WriteMailbox(w io.Writer, emails []models.Email) error {
	cw := &csvWriter{w: w}

	cw.line(MailboxHeader)
	for i := range emails {
		e := &emails[i]
		attachmentPresent := 0
		if e.HasAttachment() {
			attachmentPresent = 1
		}
		isSpam := 0
		if e.IsSpam {
			isSpam = 1
		}
		cw.line("%d,%s,%s,%s,%s,%d,%s,%d",
			e.ID, e.Recipient, e.Sender,
			sanitizeField(e.Subject), sanitizeField(e.Body),
			attachmentPresent, e.Timestamp, isSpam)
	}

	if cw.err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIOFailure, cw.err)
	}
	return nil
}

// WriteReportToFile writes the analytics CSV to path in one attempt.
func WriteReportToFile(path string, report *analytics.Report) error {
	return writeToFile(path, func(w io.Writer) error {
		return WriteReport(w, report)
	})
}

// WriteMailboxToFile writes the mailbox dump CSV to path in one attempt.
func WriteMailboxToFile(path string, emails []models.Email) error {
	return writeToFile(path, func(w io.Writer) error {
		return WriteMailbox(w, emails)
	})
}

func writeToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIOFailure, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIOFailure, err)
	}
	return nil
}

func sanitizeField(field string) string {
	return strings.ReplaceAll(field, ",", " ")
}

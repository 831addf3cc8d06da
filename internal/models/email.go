package models

// TimestampLayout is the fixed-width ISO-8601 layout used for the emails
// timestamp column. Zero padding keeps lexical order equal to chronological
// order, which the mailbox date sort relies on.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Email represents a stored message.
//
// An email is immutable after insert except for the one-way is_spam flag.
// The attachment column holds the base64-encoded file contents when present;
// the original filename is not persisted, only shown transiently at compose
// time.
type Email struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Recipient  string  `gorm:"not null;size:255;index" json:"recipient"`
	Sender     string  `gorm:"not null;size:255;index" json:"sender"`
	Subject    string  `json:"subject"`
	Body       string  `json:"body"`
	Attachment *string `json:"attachment,omitempty"`
	Timestamp  string  `gorm:"size:32" json:"timestamp"`
	IsSpam     bool    `gorm:"column:is_spam;default:false" json:"is_spam"`
}

// TableName returns the table name for Email
func (Email) TableName() string {
	return "emails"
}

// HasAttachment reports whether an attachment payload is stored.
func (e *Email) HasAttachment() bool {
	return e.Attachment != nil
}

// Involves reports whether user is the sender or the recipient.
func (e *Email) Involves(user string) bool {
	return e.Sender == user || e.Recipient == user
}

// OtherParty returns the contact on the far side of the message relative to
// user: the recipient when user sent it, otherwise the sender.
func (e *Email) OtherParty(user string) string {
	if e.Sender == user {
		return e.Recipient
	}
	return e.Sender
}

// Date returns the ISO calendar date portion of the timestamp (YYYY-MM-DD),
// or an empty string when no timestamp is set.
func (e *Email) Date() string {
	if len(e.Timestamp) < 10 {
		return ""
	}
	return e.Timestamp[:10]
}

// Month returns the calendar month portion of the timestamp (YYYY-MM), or an
// empty string when no timestamp is set.
func (e *Email) Month() string {
	if len(e.Timestamp) < 7 {
		return ""
	}
	return e.Timestamp[:7]
}

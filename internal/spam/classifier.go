// Package spam provides the deterministic keyword-based spam classifier.
package spam

import "strings"

// Keywords is the fixed keyword list the classifier matches against. A
// message is spam when any entry appears, case-insensitively, as a substring
// of "subject body". Exported so callers and tests can assert membership
// behavior directly.
var Keywords = []string{
	"lottery",
	"win money",
	"prize",
	"free offer",
	"urgent",
	"cash",
	"credit",
	"loan",
	"congratulations",
	"claim now",
	"click here",
}

// Classifier is the spam decision function signature. The store takes one of
// these so the flag can be computed and persisted atomically at insert time.
type Classifier func(subject, body string) bool

// IsSpam reports whether the message is spam. It lower-cases the
// space-joined concatenation of subject and body and checks each keyword as
// an exact substring. No scoring, no stemming. Total over any input,
// including empty strings, and free of side effects.
func IsSpam(subject, body string) bool {
	text := strings.ToLower(subject + " " + body)
	for _, kw := range Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

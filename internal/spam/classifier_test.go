package spam

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSpam_KeywordInBody(t *testing.T) {
	assert.True(t, IsSpam("Special offer", "You are pre-approved for a loan today"))
}

func TestIsSpam_CleanMessage(t *testing.T) {
	assert.False(t, IsSpam("Meeting notes", "See you at 3pm"))
}

func TestIsSpam_CaseInsensitive(t *testing.T) {
	assert.True(t, IsSpam("CONGRATULATIONS!", "you won"))
	assert.True(t, IsSpam("hello", "CLICK HERE to continue"))
}

func TestIsSpam_KeywordSpansSubjectOnly(t *testing.T) {
	assert.True(t, IsSpam("Lottery results", ""))
}

func TestIsSpam_SubstringMatch(t *testing.T) {
	// "cash" matches inside a larger word; exact substring, no word
	// boundaries.
	assert.True(t, IsSpam("Payment", "We accept cashier checks"))
}

func TestIsSpam_EmptyInput(t *testing.T) {
	assert.False(t, IsSpam("", ""))
}

func TestIsSpam_EveryKeywordMatches(t *testing.T) {
	for _, kw := range Keywords {
		assert.True(t, IsSpam("", kw), "keyword %q should flag", kw)
		assert.True(t, IsSpam(strings.ToUpper(kw), ""), "upper-cased keyword %q should flag", kw)
	}
}

func TestKeywords_ExpectedSet(t *testing.T) {
	expected := []string{
		"lottery", "win money", "prize", "free offer", "urgent",
		"cash", "credit", "loan", "congratulations", "claim now", "click here",
	}
	assert.Equal(t, expected, Keywords)
}

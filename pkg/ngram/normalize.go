package ngram

import (
	"strings"
)

// Normalize turns raw message text into an ordered token sequence.
// The whole string is lowercased, every rune outside [a-z0-9] and
// whitespace is dropped, and the remainder is split on whitespace runs.
// Punctuation, emoji and non-ASCII text carry no signal for the model
// and are stripped entirely. Any input is valid; an empty or
// symbol-only string yields an empty sequence.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v':
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares source text and terms for matching against each
// other: NFC composition, Unicode case folding (so "Straße" matches
// "STRASSE"), typographic apostrophes mapped to ', and every whitespace run
// collapsed to one space with the ends trimmed. Diacritics and hyphens stay.
func NormalizeText(text string) string {
	text = strings.TrimSpace(norm.NFC.String(text))
	if text == "" {
		return ""
	}
	text = cases.Fold().String(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteByte(' ')
			}
			prevSpace = true
			continue
		case r == '’' || r == 'ʼ':
			r = '\''
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Package text turns raw corpus documents into normalized training tokens.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"skipgram/internal/domain"
)

// Cleaner normalizes one document at a time: split on whitespace, strip
// punctuation, keep only purely alphabetic tokens, lowercase, drop
// stopwords, drop tokens of a single rune or shorter. Token order is
// preserved and documents never merge.
type Cleaner struct {
	stopwords domain.Stopwords
}

// NewCleaner builds a cleaner around the given stopword list. A nil list
// means no stopword filtering.
func NewCleaner(stopwords domain.Stopwords) *Cleaner {
	if stopwords == nil {
		stopwords = Set{}
	}
	return &Cleaner{stopwords: stopwords}
}

// Clean implements domain.Cleaner. Empty or all-filtered input yields an
// empty, non-nil slice.
func (c *Cleaner) Clean(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := stripPunct(f)
		if tok == "" || !alphabetic(tok) {
			continue
		}
		if c.stopwords.Contains(tok) {
			continue
		}
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

func alphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

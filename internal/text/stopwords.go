package text

import "strings"

// Set is a stopword list backed by a map. It satisfies domain.Stopwords.
type Set map[string]struct{}

// NewSet lowercases the given words into a set.
func NewSet(words []string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// Contains reports whether token is in the set. Tokens are expected
// lowercased, as the cleaner produces them.
func (s Set) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// DefaultStopwords returns the built-in English list used when a corpus
// ships no list of its own.
func DefaultStopwords() Set {
	return NewSet([]string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	})
}

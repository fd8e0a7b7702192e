// Package vocab assigns dense integer ids to corpus tokens and keeps
// their occurrence counts for the samplers.
package vocab

import (
	"sort"

	"skipgram/internal/domain"
)

// Vocabulary maps tokens to contiguous ids 0..V-1 and back. Ids are
// assigned by descending corpus frequency with ties broken lexically, so
// a given corpus always produces the same ids. The id order is part of
// the checkpoint contract.
type Vocabulary struct {
	idx    map[string]int
	words  []string
	counts []int
	total  int
}

// Build counts every token in the cleaned corpus and assigns ids. An
// empty corpus yields a usable vocabulary of size zero.
func Build(docs [][]string) *Vocabulary {
	counts := make(map[string]int)
	total := 0
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
			total++
		}
	}
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	v := &Vocabulary{
		idx:    make(map[string]int, len(words)),
		words:  words,
		counts: make([]int, len(words)),
		total:  total,
	}
	for id, w := range words {
		v.idx[w] = id
		v.counts[id] = counts[w]
	}
	return v
}

// Restore rebuilds a vocabulary from a checkpointed id-ordered token
// list. Occurrence counts are not part of checkpoints, so Count and
// Total report zero on a restored vocabulary.
func Restore(words []string) *Vocabulary {
	v := &Vocabulary{
		idx:    make(map[string]int, len(words)),
		words:  append([]string(nil), words...),
		counts: make([]int, len(words)),
	}
	for id, w := range v.words {
		v.idx[w] = id
	}
	return v
}

// Size returns V, the number of distinct tokens.
func (v *Vocabulary) Size() int { return len(v.words) }

// Total returns the number of token occurrences counted at build time.
func (v *Vocabulary) Total() int { return v.total }

// ID resolves a token to its id.
func (v *Vocabulary) ID(token string) (int, error) {
	if id, ok := v.idx[token]; ok {
		return id, nil
	}
	return 0, &domain.UnknownWordError{Word: token}
}

// Has reports whether the token is in the vocabulary.
func (v *Vocabulary) Has(token string) bool {
	_, ok := v.idx[token]
	return ok
}

// Word resolves an id back to its token.
func (v *Vocabulary) Word(id int) (string, bool) {
	if id < 0 || id >= len(v.words) {
		return "", false
	}
	return v.words[id], true
}

// Count returns the corpus occurrence count for an id, zero when out of
// range.
func (v *Vocabulary) Count(id int) int {
	if id < 0 || id >= len(v.counts) {
		return 0
	}
	return v.counts[id]
}

// Words returns a copy of the id-ordered token list.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Encode maps a cleaned document to ids. Any token outside the
// vocabulary fails the whole document.
func (v *Vocabulary) Encode(doc []string) ([]int, error) {
	ids := make([]int, len(doc))
	for i, tok := range doc {
		id, err := v.ID(tok)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

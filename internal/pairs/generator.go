// Package pairs expands id documents into skip-gram training pairs.
package pairs

import "skipgram/internal/domain"

// Generator slides a window of radius m over each document and emits one
// (center, context) pair per neighbor. For anchor position i the
// neighborhood is [max(0, i-m), min(len, i+m)) excluding i itself, so a
// document edge simply truncates the window. Windows never cross
// document boundaries. A token repeated inside a window pairs with its
// other occurrences; the anchor position itself never pairs with itself.
type Generator struct {
	window int
}

// NewGenerator validates the window radius.
func NewGenerator(window int) (*Generator, error) {
	if window <= 0 {
		return nil, &domain.ConfigurationError{Field: "window", Reason: "must be positive"}
	}
	return &Generator{window: window}, nil
}

// Pairs materializes every training pair for the corpus in document
// order. The order is deterministic; shuffling is the trainer's job.
func (g *Generator) Pairs(docs [][]int) []domain.TrainingPair {
	out := make([]domain.TrainingPair, 0, g.Count(docs))
	for _, doc := range docs {
		for i := range doc {
			lo := i - g.window
			if lo < 0 {
				lo = 0
			}
			hi := i + g.window
			if hi > len(doc) {
				hi = len(doc)
			}
			for j := lo; j < hi; j++ {
				if j == i {
					continue
				}
				out = append(out, domain.TrainingPair{Center: doc[i], Context: doc[j]})
			}
		}
	}
	return out
}

// Count returns the number of pairs Pairs would emit without
// materializing them.
func (g *Generator) Count(docs [][]int) int {
	n := 0
	for _, doc := range docs {
		for i := range doc {
			lo := i - g.window
			if lo < 0 {
				lo = 0
			}
			hi := i + g.window
			if hi > len(doc) {
				hi = len(doc)
			}
			n += hi - lo - 1
		}
	}
	return n
}

// Package sampler holds the frequency-driven samplers: occurrence
// subsampling of frequent words and the unigram table that negative
// sampling draws from.
package sampler

import (
	"math"
	"math/rand"

	"skipgram/internal/domain"
	"skipgram/internal/vocab"
)

// Subsampler thins out very frequent tokens and removes rare ones
// outright. For a token with corpus frequency ratio f the keep
// probability is sqrt(t/f) clamped to [0,1]; the denominator of f is the
// total occurrence count, not the distinct-token count. Tokens seen
// fewer than minCount times are removed before the probabilistic pass.
type Subsampler struct {
	vocab     *vocab.Vocabulary
	threshold float64
	minCount  int
}

// NewSubsampler validates the parameters against the vocabulary the id
// sequences were encoded with.
func NewSubsampler(v *vocab.Vocabulary, threshold float64, minCount int) (*Subsampler, error) {
	if threshold <= 0 {
		return nil, &domain.ConfigurationError{Field: "threshold", Reason: "must be positive"}
	}
	if minCount < 0 {
		return nil, &domain.ConfigurationError{Field: "min_count", Reason: "must not be negative"}
	}
	return &Subsampler{vocab: v, threshold: threshold, minCount: minCount}, nil
}

// KeepProbability returns sqrt(t/f) clamped to [0,1] for one id. Tokens
// rarer than the threshold ratio are always kept.
func (s *Subsampler) KeepProbability(id int) float64 {
	total := s.vocab.Total()
	if total == 0 {
		return 0
	}
	f := float64(s.vocab.Count(id)) / float64(total)
	if f <= 0 {
		return 0
	}
	p := math.Sqrt(s.threshold / f)
	if p > 1 {
		p = 1
	}
	return p
}

// Apply filters one id document, drawing an independent Bernoulli per
// occurrence from rng. Order is preserved and the result never grows.
func (s *Subsampler) Apply(doc []int, rng *rand.Rand) []int {
	out := make([]int, 0, len(doc))
	for _, id := range doc {
		if s.vocab.Count(id) < s.minCount {
			continue
		}
		if rng.Float64() >= s.KeepProbability(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

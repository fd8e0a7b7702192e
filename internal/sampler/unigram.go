package sampler

import (
	"math"
	"math/rand"

	"skipgram/internal/domain"
	"skipgram/internal/vocab"
)

const (
	// DefaultTableSize trades draw fidelity for memory. Forty megabytes
	// of int32 resolves even large vocabularies well.
	DefaultTableSize = 10_000_000

	unigramPower = 0.75
)

// Unigram draws negative samples from the corpus unigram distribution
// raised to the 3/4 power, which lifts rare words just enough to make
// useful negatives. Draws are O(1) against a precomputed table.
type Unigram struct {
	table []int32
}

// NewUnigram fills the draw table from the vocabulary counts. It needs a
// vocabulary built from a corpus; restored vocabularies carry no counts
// and are rejected.
func NewUnigram(v *vocab.Vocabulary, tableSize int) (*Unigram, error) {
	if tableSize <= 0 {
		return nil, &domain.ConfigurationError{Field: "table_size", Reason: "must be positive"}
	}
	size := v.Size()
	if size == 0 {
		return nil, &domain.ConfigurationError{Field: "vocabulary", Reason: "empty"}
	}
	var norm float64
	for id := 0; id < size; id++ {
		norm += math.Pow(float64(v.Count(id)), unigramPower)
	}
	if norm == 0 {
		return nil, &domain.ConfigurationError{Field: "vocabulary", Reason: "no occurrence counts"}
	}
	table := make([]int32, tableSize)
	id := 0
	cum := math.Pow(float64(v.Count(id)), unigramPower) / norm
	for i := range table {
		table[i] = int32(id)
		if float64(i)/float64(tableSize) > cum && id < size-1 {
			id++
			cum += math.Pow(float64(v.Count(id)), unigramPower) / norm
		}
	}
	return &Unigram{table: table}, nil
}

// Sample implements domain.NegativeSampler.
func (u *Unigram) Sample(rng *rand.Rand) int {
	return int(u.table[rng.Intn(len(u.table))])
}

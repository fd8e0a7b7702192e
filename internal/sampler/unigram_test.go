package sampler

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skipgram/internal/domain"
	"skipgram/internal/vocab"
)

func powerLawVocab(t *testing.T) *vocab.Vocabulary {
	t.Helper()
	// Counts 81, 16 and 1 give 3/4-power weights 27, 8 and 1.
	doc := append(repeat("cat", 81), repeat("dog", 16)...)
	doc = append(doc, "owl")
	return vocab.Build([][]string{doc})
}

func TestUnigramFollowsPowerLaw(t *testing.T) {
	v := powerLawVocab(t)
	u, err := NewUnigram(v, 10000)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	const draws = 200000
	counts := make([]int, v.Size())
	for i := 0; i < draws; i++ {
		id := u.Sample(rng)
		require.GreaterOrEqual(t, id, 0)
		require.Less(t, id, v.Size())
		counts[id]++
	}

	// Normalized 3/4-power weights: 27/36, 8/36, 1/36.
	assert.InDelta(t, 27.0/36.0, float64(counts[0])/draws, 0.02)
	assert.InDelta(t, 8.0/36.0, float64(counts[1])/draws, 0.02)
	assert.InDelta(t, 1.0/36.0, float64(counts[2])/draws, 0.02)
}

func TestUnigramCoversWholeVocabulary(t *testing.T) {
	v := powerLawVocab(t)
	u, err := NewUnigram(v, 10000)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	seen := make(map[int]struct{})
	for i := 0; i < 50000; i++ {
		seen[u.Sample(rng)] = struct{}{}
	}
	assert.Len(t, seen, v.Size())
}

func TestNewUnigramValidation(t *testing.T) {
	v := powerLawVocab(t)

	_, err := NewUnigram(v, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	_, err = NewUnigram(vocab.Build(nil), 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestNewUnigramRejectsRestoredVocabulary(t *testing.T) {
	v := powerLawVocab(t)
	restored := vocab.Restore(v.Words())

	_, err := NewUnigram(restored, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

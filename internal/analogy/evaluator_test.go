package analogy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skipgram/internal/domain"
	"skipgram/internal/model"
	"skipgram/internal/vocab"
)

// royalFixture embeds five words in the plane so every similarity in the
// tests has a known closed form. queen sits exactly at king - man +
// woman and noise is orthogonal to that query vector.
func royalFixture(t *testing.T) *Evaluator {
	t.Helper()
	v := vocab.Restore([]string{"man", "king", "woman", "queen", "noise"})
	m, err := model.FromState(model.State{
		Dim: 2,
		WIn: [][]float64{
			{1, 0},  // man
			{1, 1},  // king
			{2, 0},  // woman
			{2, 1},  // queen
			{-1, 2}, // noise
		},
		WOut: [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		BOut: []float64{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	ev, err := New(m, v)
	require.NoError(t, err)
	return ev
}

func TestAnalogyFindsQueen(t *testing.T) {
	ev := royalFixture(t)

	got, err := ev.Analogy("king", "man", "woman", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "queen", got[0].Word)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-12)
}

func TestAnalogySubtractsSecondWord(t *testing.T) {
	// forward sits exactly at a - b + c and reverse at b - a + c, so a
	// flipped query vector would rank reverse first instead.
	v := vocab.Restore([]string{"a", "b", "c", "forward", "reverse"})
	m, err := model.FromState(model.State{
		Dim: 2,
		WIn: [][]float64{
			{3, 1}, // a
			{1, 2}, // b
			{2, 2}, // c
			{4, 1}, // forward
			{0, 3}, // reverse
		},
		WOut: [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		BOut: []float64{0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	ev, err := New(m, v)
	require.NoError(t, err)

	got, err := ev.Analogy("a", "b", "c", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "forward", got[0].Word)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-12)
	assert.Equal(t, "reverse", got[1].Word)
	assert.Less(t, got[1].Similarity, got[0].Similarity)
}

func TestAnalogyExcludesQueryWords(t *testing.T) {
	ev := royalFixture(t)

	// Asking for more than V-3 answers returns all V-3.
	got, err := ev.Analogy("king", "man", "woman", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, ws := range got {
		assert.NotContains(t, []string{"man", "king", "woman"}, ws.Word)
	}
}

func TestAnalogyOrdersBySimilarity(t *testing.T) {
	ev := royalFixture(t)

	got, err := ev.Analogy("king", "man", "woman", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "queen", got[0].Word)
	assert.Equal(t, "noise", got[1].Word)
	assert.Greater(t, got[0].Similarity, got[1].Similarity)
	assert.InDelta(t, 0.0, got[1].Similarity, 1e-12)
}

func TestAnalogyUnknownWord(t *testing.T) {
	ev := royalFixture(t)

	_, err := ev.Analogy("king", "man", "xyzzy", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownWord)

	var uerr *domain.UnknownWordError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "xyzzy", uerr.Word)
}

func TestAnalogyRejectsNonPositiveK(t *testing.T) {
	ev := royalFixture(t)

	for _, k := range []int{0, -5} {
		_, err := ev.Analogy("king", "man", "woman", k)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		_, err = ev.Nearest("man", k)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	}
}

func TestAnalogyDegenerateQuery(t *testing.T) {
	v := vocab.Restore([]string{"a", "b", "c", "d"})
	m, err := model.FromState(model.State{
		Dim: 2,
		// a - b + c is exactly the zero vector.
		WIn:  [][]float64{{0, 1}, {1, 1}, {1, 0}, {3, 4}},
		WOut: [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		BOut: []float64{0, 0, 0, 0},
	})
	require.NoError(t, err)
	ev, err := New(m, v)
	require.NoError(t, err)

	_, err = ev.Analogy("a", "b", "c", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDegenerateVector)

	var derr *domain.DegenerateVectorError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, -1, derr.ID)
	assert.Empty(t, derr.Word)
}

func TestAnalogyRejectsZeroCandidateRow(t *testing.T) {
	v := vocab.Restore([]string{"a", "b", "c", "zero"})
	m, err := model.FromState(model.State{
		Dim:  2,
		WIn:  [][]float64{{1, 0}, {1, 1}, {2, 0}, {0, 0}},
		WOut: [][]float64{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		BOut: []float64{0, 0, 0, 0},
	})
	require.NoError(t, err)
	ev, err := New(m, v)
	require.NoError(t, err)

	_, err = ev.Analogy("a", "b", "c", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDegenerateVector)

	var derr *domain.DegenerateVectorError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "zero", derr.Word)
	assert.Equal(t, 3, derr.ID)
}

func TestNearestRanksNeighbors(t *testing.T) {
	ev := royalFixture(t)

	got, err := ev.Nearest("man", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// cos(man, woman) = 1, cos(man, queen) = 2/sqrt(5),
	// cos(man, king) = 1/sqrt(2).
	assert.Equal(t, "woman", got[0].Word)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-12)
	assert.Equal(t, "queen", got[1].Word)
	assert.InDelta(t, 0.8944271909999159, got[1].Similarity, 1e-12)
	assert.Equal(t, "king", got[2].Word)
	assert.InDelta(t, 0.7071067811865475, got[2].Similarity, 1e-12)
}

func TestNearestExcludesTheWordItself(t *testing.T) {
	ev := royalFixture(t)

	got, err := ev.Nearest("man", 10)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, ws := range got {
		assert.NotEqual(t, "man", ws.Word)
	}
}

func TestTiesBreakTowardSmallerID(t *testing.T) {
	// All three rows point the same way, so both candidates score an
	// exact 1.0 against the query.
	v := vocab.Restore([]string{"q", "b", "c"})
	m, err := model.FromState(model.State{
		Dim:  2,
		WIn:  [][]float64{{1, 0}, {2, 0}, {3, 0}},
		WOut: [][]float64{{0, 0}, {0, 0}, {0, 0}},
		BOut: []float64{0, 0, 0},
	})
	require.NoError(t, err)
	ev, err := New(m, v)
	require.NoError(t, err)

	got, err := ev.Nearest("q", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Word)
	assert.Equal(t, "c", got[1].Word)

	// With k=1 the tie decides which candidate survives eviction.
	got, err = ev.Nearest("q", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Word)
}

func TestNewValidation(t *testing.T) {
	v := vocab.Restore([]string{"a", "b"})
	m, err := model.New(2, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	three, err := model.New(3, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = New(nil, v)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = New(m, nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = New(three, v)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

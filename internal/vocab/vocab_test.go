package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skipgram/internal/domain"
)

func testDocs() [][]string {
	return [][]string{
		{"cat", "sat", "cat"},
		{"dog", "sat"},
	}
}

func TestBuildAssignsFrequencyOrderedIDs(t *testing.T) {
	v := Build(testDocs())
	require.Equal(t, 3, v.Size())
	require.Equal(t, 5, v.Total())

	// cat and sat both occur twice, so the tie falls to lexical order.
	assert.Equal(t, []string{"cat", "sat", "dog"}, v.Words())

	id, err := v.ID("cat")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	id, err = v.ID("dog")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestBuildIsDeterministic(t *testing.T) {
	a := Build(testDocs())
	b := Build(testDocs())
	assert.Equal(t, a.Words(), b.Words())
}

func TestRoundTripBijection(t *testing.T) {
	v := Build(testDocs())
	for id := 0; id < v.Size(); id++ {
		w, ok := v.Word(id)
		require.True(t, ok)
		back, err := v.ID(w)
		require.NoError(t, err)
		assert.Equal(t, id, back)
	}
}

func TestCounts(t *testing.T) {
	v := Build(testDocs())
	catID, _ := v.ID("cat")
	dogID, _ := v.ID("dog")
	assert.Equal(t, 2, v.Count(catID))
	assert.Equal(t, 1, v.Count(dogID))
	assert.Equal(t, 0, v.Count(-1))
	assert.Equal(t, 0, v.Count(99))
}

func TestUnknownWord(t *testing.T) {
	v := Build(testDocs())
	_, err := v.ID("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownWord))

	var uw *domain.UnknownWordError
	require.True(t, errors.As(err, &uw))
	assert.Equal(t, "missing", uw.Word)

	assert.False(t, v.Has("missing"))
	assert.True(t, v.Has("cat"))
}

func TestWordOutOfRange(t *testing.T) {
	v := Build(testDocs())
	_, ok := v.Word(-1)
	assert.False(t, ok)
	_, ok = v.Word(v.Size())
	assert.False(t, ok)
}

func TestEmptyCorpus(t *testing.T) {
	v := Build(nil)
	assert.Equal(t, 0, v.Size())
	assert.Equal(t, 0, v.Total())
	assert.Empty(t, v.Words())

	_, err := v.ID("anything")
	assert.Error(t, err)

	ids, err := v.Encode(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEncode(t *testing.T) {
	v := Build(testDocs())
	ids, err := v.Encode([]string{"dog", "cat", "sat"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, ids)

	_, err = v.Encode([]string{"cat", "missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownWord))
}

func TestRestore(t *testing.T) {
	orig := Build(testDocs())
	v := Restore(orig.Words())

	assert.Equal(t, orig.Size(), v.Size())
	assert.Equal(t, orig.Words(), v.Words())
	for id := 0; id < v.Size(); id++ {
		w, _ := orig.Word(id)
		got, err := v.ID(w)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	// Counts do not survive a restore.
	assert.Equal(t, 0, v.Total())
	assert.Equal(t, 0, v.Count(0))
}

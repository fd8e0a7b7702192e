// Package analogy answers vector-arithmetic analogy queries
// (king - man + woman ≈ queen) and nearest-neighbor queries against the
// trained input embeddings.
package analogy

import (
	"container/heap"
	"math"

	"skipgram/internal/domain"
	"skipgram/internal/model"
	"skipgram/internal/vocab"
)

// Evaluator scores composed query vectors against every input-embedding
// row. It only ever reads the model, so queries may interleave with
// training at batch boundaries.
type Evaluator struct {
	model *model.Model
	vocab *vocab.Vocabulary
}

// New pairs a model with the vocabulary its rows were trained under.
func New(m *model.Model, v *vocab.Vocabulary) (*Evaluator, error) {
	if m == nil {
		return nil, &domain.ConfigurationError{Field: "model", Reason: "required"}
	}
	if v == nil {
		return nil, &domain.ConfigurationError{Field: "vocabulary", Reason: "required"}
	}
	if m.VocabSize() != v.Size() {
		return nil, &domain.ConfigurationError{Field: "model", Reason: "vocabulary size mismatch"}
	}
	return &Evaluator{model: m, vocab: v}, nil
}

// Analogy resolves "a - b + c = ?". The query vector is
// wIn[a] - wIn[b] + wIn[c]; candidates are every vocabulary word except
// a, b and c, ranked by cosine similarity. Results come back in
// descending similarity with ties broken by ascending id; asking for
// more than V-3 words returns all V-3.
func (e *Evaluator) Analogy(a, b, c string, k int) ([]domain.WordSimilarity, error) {
	ids, err := e.resolve(a, b, c)
	if err != nil {
		return nil, err
	}
	ra, _ := e.model.Row(ids[0])
	rb, _ := e.model.Row(ids[1])
	rc, _ := e.model.Row(ids[2])
	target := make([]float64, e.model.Dim())
	for d := range target {
		target[d] = ra[d] - rb[d] + rc[d]
	}
	exclude := map[int]struct{}{ids[0]: {}, ids[1]: {}, ids[2]: {}}
	return e.top(target, exclude, k)
}

// Nearest returns the k nearest neighbors of word, the word itself
// excluded.
func (e *Evaluator) Nearest(word string, k int) ([]domain.WordSimilarity, error) {
	id, err := e.vocab.ID(word)
	if err != nil {
		return nil, err
	}
	row, _ := e.model.Row(id)
	target := append([]float64(nil), row...)
	return e.top(target, map[int]struct{}{id: {}}, k)
}

// top streams every candidate row past a bounded min-heap of size k, so
// a query costs O(V log k) regardless of how small k is.
func (e *Evaluator) top(target []float64, exclude map[int]struct{}, k int) ([]domain.WordSimilarity, error) {
	if k <= 0 {
		return nil, &domain.ConfigurationError{Field: "k", Reason: "must be positive"}
	}
	size := e.model.VocabSize()
	if size == 0 {
		return nil, &domain.ConfigurationError{Field: "vocabulary", Reason: "empty"}
	}
	tn := norm(target)
	if tn == 0 {
		return nil, &domain.DegenerateVectorError{ID: -1}
	}
	h := make(candidateHeap, 0, k)
	for id := 0; id < size; id++ {
		if _, skip := exclude[id]; skip {
			continue
		}
		row, _ := e.model.Row(id)
		rn := norm(row)
		if rn == 0 {
			word, _ := e.vocab.Word(id)
			return nil, &domain.DegenerateVectorError{Word: word, ID: id}
		}
		cand := candidate{id: id, sim: dot(target, row) / (tn * rn)}
		if len(h) < k {
			heap.Push(&h, cand)
			continue
		}
		if h[0].worse(cand) {
			h[0] = cand
			heap.Fix(&h, 0)
		}
	}
	out := make([]domain.WordSimilarity, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		cand := heap.Pop(&h).(candidate)
		word, _ := e.vocab.Word(cand.id)
		out[i] = domain.WordSimilarity{Word: word, Similarity: cand.sim}
	}
	return out, nil
}

func (e *Evaluator) resolve(words ...string) ([]int, error) {
	ids := make([]int, len(words))
	for i, w := range words {
		id, err := e.vocab.ID(w)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

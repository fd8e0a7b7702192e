// Package model holds the skip-gram embedding matrices and the math that
// trains them.
package model

import (
	"fmt"
	"math"
	"math/rand"

	"skipgram/internal/domain"
)

const (
	outMean   = -1.0
	outStddev = 1.0

	// truncAttempts bounds the rejection loop for the truncated normal
	// init; past it the draw is clamped to the two-sigma interval.
	truncAttempts = 100
)

// Model is the trainable state: input embeddings wIn (V x h), output
// embeddings wOut (V x h) and output biases bOut (V). Scoring a word w
// against a center c is dot(wOut[w], wIn[c]) + bOut[w].
type Model struct {
	dim  int
	wIn  [][]float64
	wOut [][]float64
	bOut []float64
}

// New initializes a model for vocabSize words with h=dim. Input rows are
// uniform in [-1,1); output rows come from a normal with mean -1 and
// standard deviation 1, truncated to two standard deviations; biases
// start at zero. All draws come from rng.
func New(vocabSize, dim int, rng *rand.Rand) (*Model, error) {
	if vocabSize <= 0 {
		return nil, &domain.ConfigurationError{Field: "vocab_size", Reason: "must be positive"}
	}
	if dim <= 0 {
		return nil, &domain.ConfigurationError{Field: "dimension", Reason: "must be positive"}
	}
	m := &Model{
		dim:  dim,
		wIn:  make([][]float64, vocabSize),
		wOut: make([][]float64, vocabSize),
		bOut: make([]float64, vocabSize),
	}
	for i := range m.wIn {
		in := make([]float64, dim)
		out := make([]float64, dim)
		for d := range in {
			in[d] = rng.Float64()*2 - 1
			out[d] = truncatedNormal(rng, outMean, outStddev)
		}
		m.wIn[i] = in
		m.wOut[i] = out
	}
	return m, nil
}

func truncatedNormal(rng *rand.Rand, mean, stddev float64) float64 {
	lo, hi := mean-2*stddev, mean+2*stddev
	var x float64
	for i := 0; i < truncAttempts; i++ {
		x = rng.NormFloat64()*stddev + mean
		if x >= lo && x <= hi {
			return x
		}
	}
	return math.Min(math.Max(x, lo), hi)
}

// VocabSize returns V.
func (m *Model) VocabSize() int { return len(m.wIn) }

// Dim returns h.
func (m *Model) Dim() int { return m.dim }

// Embed returns copies of the input-embedding rows for ids. Duplicate
// ids are fine; every returned row is an independent copy.
func (m *Model) Embed(ids []int) ([][]float64, error) {
	out := make([][]float64, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(m.wIn) {
			return nil, fmt.Errorf("embed: id %d out of range [0,%d)", id, len(m.wIn))
		}
		row := make([]float64, m.dim)
		copy(row, m.wIn[id])
		out[i] = row
	}
	return out, nil
}

// Row returns the live input-embedding row for id. The slice shares the
// model's backing array; treat it as read-only. Embed returns copies for
// anything longer-lived.
func (m *Model) Row(id int) ([]float64, bool) {
	if id < 0 || id >= len(m.wIn) {
		return nil, false
	}
	return m.wIn[id], true
}

// State is the full trainable state in checkpoint-friendly form.
type State struct {
	Dim  int
	WIn  [][]float64
	WOut [][]float64
	BOut []float64
}

// State deep-copies the model state out.
func (m *Model) State() State {
	return State{
		Dim:  m.dim,
		WIn:  copyMatrix(m.wIn),
		WOut: copyMatrix(m.wOut),
		BOut: append([]float64(nil), m.bOut...),
	}
}

// FromState validates a state's shape and deep-copies it into a fresh
// model.
func FromState(s State) (*Model, error) {
	if s.Dim <= 0 {
		return nil, &domain.ConfigurationError{Field: "dimension", Reason: "must be positive"}
	}
	v := len(s.WIn)
	if v == 0 {
		return nil, &domain.ConfigurationError{Field: "w_in", Reason: "empty"}
	}
	if len(s.WOut) != v || len(s.BOut) != v {
		return nil, &domain.ConfigurationError{
			Field:  "state",
			Reason: fmt.Sprintf("row counts disagree: w_in %d, w_out %d, b_out %d", v, len(s.WOut), len(s.BOut)),
		}
	}
	for i := 0; i < v; i++ {
		if len(s.WIn[i]) != s.Dim || len(s.WOut[i]) != s.Dim {
			return nil, &domain.ConfigurationError{
				Field:  "state",
				Reason: fmt.Sprintf("row %d has length %d/%d, want %d", i, len(s.WIn[i]), len(s.WOut[i]), s.Dim),
			}
		}
	}
	return &Model{
		dim:  s.Dim,
		wIn:  copyMatrix(s.WIn),
		wOut: copyMatrix(s.WOut),
		bOut: append([]float64(nil), s.BOut...),
	}, nil
}

func copyMatrix(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func (m *Model) checkBatch(batch []domain.TrainingPair) error {
	if len(batch) == 0 {
		return &domain.ConfigurationError{Field: "batch", Reason: "empty"}
	}
	for _, p := range batch {
		if p.Center < 0 || p.Center >= len(m.wIn) {
			return fmt.Errorf("center id %d out of range [0,%d)", p.Center, len(m.wIn))
		}
		if p.Context < 0 || p.Context >= len(m.wIn) {
			return fmt.Errorf("context id %d out of range [0,%d)", p.Context, len(m.wIn))
		}
	}
	return nil
}

// Package domain holds the core types, interfaces and error kinds shared
// across the training pipeline and the query surfaces.
package domain

import "math/rand"

// Document is one unit of raw corpus text. Windows never cross document
// boundaries, so the split into documents matters for training.
type Document struct {
	ID      string
	Path    string
	Content string
}

// TrainingPair couples a center word id with one context word id drawn
// from its window.
type TrainingPair struct {
	Center  int
	Context int
}

// WordSimilarity is a scored candidate returned by similarity queries,
// ordered by descending similarity.
type WordSimilarity struct {
	Word       string
	Similarity float64
}

// Progress describes trainer state at a monitoring point. SoftmaxLoss is
// NaN outside monitored batches where only the sampling loss is known.
// Err carries non-fatal failures (checkpoint writes) the trainer decided
// to continue past.
type Progress struct {
	Epoch        int
	TotalEpochs  int
	Batch        int
	TotalBatches int
	NSLoss       float64
	SoftmaxLoss  float64
	Checkpoint   string
	Err          error
}

// Stopwords reports membership in a stopword list. The cleaner only ever
// asks the membership question, so corpora can plug in any source.
type Stopwords interface {
	Contains(token string) bool
}

// Cleaner normalizes one raw document into training tokens, preserving
// token order.
type Cleaner interface {
	Clean(text string) []string
}

// NegativeSampler draws word ids for negative-sampling updates. Draws use
// the supplied source so runs stay reproducible under a fixed seed.
type NegativeSampler interface {
	Sample(rng *rand.Rand) int
}

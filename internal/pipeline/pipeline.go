// Package pipeline turns raw documents into everything the trainer
// needs: a vocabulary, subsampled id documents and the training pairs.
package pipeline

import (
	"fmt"
	"math/rand"

	"skipgram/internal/domain"
	"skipgram/internal/pairs"
	"skipgram/internal/sampler"
	"skipgram/internal/vocab"
)

// Corpus is the prepared output of one Build call.
type Corpus struct {
	Vocabulary *vocab.Vocabulary
	Documents  [][]int
	Pairs      []domain.TrainingPair
	Stats      Stats
}

// Stats counts what each stage kept, for run logs.
type Stats struct {
	Documents     int
	TokensCleaned int
	TokensKept    int
	Pairs         int
}

// Builder wires the cleaning, counting, subsampling and pair-generation
// stages together. Parameter validation happens in Build, where the
// stage constructors run.
type Builder struct {
	cleaner   domain.Cleaner
	threshold float64
	minCount  int
	window    int
}

// NewBuilder keeps the stage parameters alongside the cleaner.
func NewBuilder(cleaner domain.Cleaner, threshold float64, minCount, window int) (*Builder, error) {
	if cleaner == nil {
		return nil, &domain.ConfigurationError{Field: "cleaner", Reason: "required"}
	}
	return &Builder{cleaner: cleaner, threshold: threshold, minCount: minCount, window: window}, nil
}

// Build runs the full preparation over raw documents. Subsampling draws
// from rng, so a fixed seed reproduces the same corpus exactly.
func (b *Builder) Build(docs []domain.Document, rng *rand.Rand) (*Corpus, error) {
	if len(docs) == 0 {
		return nil, &domain.ConfigurationError{Field: "corpus", Reason: "no documents"}
	}
	if rng == nil {
		return nil, &domain.ConfigurationError{Field: "rng", Reason: "required"}
	}
	cleaned := make([][]string, len(docs))
	stats := Stats{Documents: len(docs)}
	for i, d := range docs {
		cleaned[i] = b.cleaner.Clean(d.Content)
		stats.TokensCleaned += len(cleaned[i])
	}
	if stats.TokensCleaned == 0 {
		return nil, &domain.ConfigurationError{Field: "corpus", Reason: "no tokens survive cleaning"}
	}
	v := vocab.Build(cleaned)
	sub, err := sampler.NewSubsampler(v, b.threshold, b.minCount)
	if err != nil {
		return nil, err
	}
	gen, err := pairs.NewGenerator(b.window)
	if err != nil {
		return nil, err
	}
	idDocs := make([][]int, len(cleaned))
	for i, doc := range cleaned {
		ids, err := v.Encode(doc)
		if err != nil {
			return nil, fmt.Errorf("encode document %s: %w", docs[i].ID, err)
		}
		idDocs[i] = sub.Apply(ids, rng)
		stats.TokensKept += len(idDocs[i])
	}
	ps := gen.Pairs(idDocs)
	stats.Pairs = len(ps)
	return &Corpus{Vocabulary: v, Documents: idDocs, Pairs: ps, Stats: stats}, nil
}

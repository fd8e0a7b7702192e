// Package trainer drives the epoch and batch loop over materialized
// training pairs.
package trainer

import (
	"context"
	"math"
	"math/rand"

	"skipgram/internal/checkpoint"
	"skipgram/internal/domain"
	"skipgram/internal/model"
	"skipgram/internal/vocab"
)

// Config are the knobs for one run. The config package applies the file
// defaults; here every field must already be concrete.
type Config struct {
	Epochs          int
	BatchSize       int
	LearningRate    float64
	Negatives       int
	MonitorEvery    int    // batches between full loss reports; 0 disables
	CheckpointEvery int    // epochs between checkpoint writes; 0 disables
	CheckpointPath  string // destination for periodic and final snapshots
}

// Trainer owns one training run over a fixed pair list. It is the single
// writer of the model; progress callbacks run between batches and so
// observe whole-batch commits.
type Trainer struct {
	cfg        Config
	model      *model.Model
	vocab      *vocab.Vocabulary
	pairs      []domain.TrainingPair
	neg        domain.NegativeSampler
	rng        *rand.Rand
	onProgress func(domain.Progress)
}

// New validates the run before any work starts. onProgress may be nil.
func New(cfg Config, m *model.Model, v *vocab.Vocabulary, pairs []domain.TrainingPair, neg domain.NegativeSampler, rng *rand.Rand, onProgress func(domain.Progress)) (*Trainer, error) {
	switch {
	case m == nil:
		return nil, &domain.ConfigurationError{Field: "model", Reason: "required"}
	case v == nil:
		return nil, &domain.ConfigurationError{Field: "vocabulary", Reason: "required"}
	case rng == nil:
		return nil, &domain.ConfigurationError{Field: "rng", Reason: "required"}
	case len(pairs) == 0:
		return nil, &domain.ConfigurationError{Field: "pairs", Reason: "no training pairs"}
	case m.VocabSize() != v.Size():
		return nil, &domain.ConfigurationError{Field: "model", Reason: "vocabulary size mismatch"}
	case cfg.Epochs <= 0:
		return nil, &domain.ConfigurationError{Field: "epochs", Reason: "must be positive"}
	case cfg.BatchSize <= 0:
		return nil, &domain.ConfigurationError{Field: "batch_size", Reason: "must be positive"}
	case cfg.LearningRate <= 0:
		return nil, &domain.ConfigurationError{Field: "learning_rate", Reason: "must be positive"}
	case cfg.Negatives < 0:
		return nil, &domain.ConfigurationError{Field: "negatives", Reason: "must not be negative"}
	case cfg.Negatives > 0 && neg == nil:
		return nil, &domain.ConfigurationError{Field: "sampler", Reason: "required when negatives are requested"}
	case cfg.MonitorEvery < 0:
		return nil, &domain.ConfigurationError{Field: "monitor_every", Reason: "must not be negative"}
	case cfg.CheckpointEvery < 0:
		return nil, &domain.ConfigurationError{Field: "checkpoint_every", Reason: "must not be negative"}
	case cfg.CheckpointEvery > 0 && cfg.CheckpointPath == "":
		return nil, &domain.ConfigurationError{Field: "checkpoint_path", Reason: "required when checkpointing"}
	}
	return &Trainer{cfg: cfg, model: m, vocab: v, pairs: pairs, neg: neg, rng: rng, onProgress: onProgress}, nil
}

// Train runs the configured epochs. The pair list is reshuffled before
// every epoch and cut into BatchSize batches, the last one short. ctx is
// honored between batches. A non-finite loss halts the run with a
// NumericalInstabilityError; the last successfully written checkpoint
// stays on disk. Checkpoint write failures do not stop training, they
// surface through the progress callback.
func (t *Trainer) Train(ctx context.Context) error {
	batches := (len(t.pairs) + t.cfg.BatchSize - 1) / t.cfg.BatchSize
	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		t.rng.Shuffle(len(t.pairs), func(i, j int) {
			t.pairs[i], t.pairs[j] = t.pairs[j], t.pairs[i]
		})
		lastNS := math.NaN()
		for b := 0; b < batches; b++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			lo := b * t.cfg.BatchSize
			hi := lo + t.cfg.BatchSize
			if hi > len(t.pairs) {
				hi = len(t.pairs)
			}
			batch := t.pairs[lo:hi]

			nsLoss, err := t.model.Step(batch, t.cfg.Negatives, t.cfg.LearningRate, t.neg, t.rng)
			if err != nil {
				return err
			}
			if !finite(nsLoss) {
				return &domain.NumericalInstabilityError{Epoch: epoch, Batch: b + 1, Loss: "negative-sampling"}
			}
			lastNS = nsLoss

			if t.cfg.MonitorEvery > 0 && (b+1)%t.cfg.MonitorEvery == 0 {
				if err := t.monitor(epoch, b+1, batches, batch); err != nil {
					return err
				}
			}
		}
		t.report(domain.Progress{
			Epoch: epoch, TotalEpochs: t.cfg.Epochs,
			Batch: batches, TotalBatches: batches,
			NSLoss: lastNS, SoftmaxLoss: math.NaN(),
		})
		if t.cfg.CheckpointEvery > 0 && epoch%t.cfg.CheckpointEvery == 0 {
			t.writeCheckpoint(epoch, batches)
		}
	}
	return nil
}

// monitor recomputes both losses on the batch just stepped and reports
// them together.
func (t *Trainer) monitor(epoch, batch, batches int, pairs []domain.TrainingPair) error {
	ns, err := t.model.NegativeSamplingLoss(pairs, t.cfg.Negatives, t.neg, t.rng)
	if err != nil {
		return err
	}
	full, err := t.model.FullSoftmaxLoss(pairs)
	if err != nil {
		return err
	}
	if !finite(ns) {
		return &domain.NumericalInstabilityError{Epoch: epoch, Batch: batch, Loss: "negative-sampling"}
	}
	if !finite(full) {
		return &domain.NumericalInstabilityError{Epoch: epoch, Batch: batch, Loss: "full-softmax"}
	}
	t.report(domain.Progress{
		Epoch: epoch, TotalEpochs: t.cfg.Epochs,
		Batch: batch, TotalBatches: batches,
		NSLoss: ns, SoftmaxLoss: full,
	})
	return nil
}

func (t *Trainer) writeCheckpoint(epoch, batches int) {
	err := checkpoint.Save(t.cfg.CheckpointPath, t.model, t.vocab)
	t.report(domain.Progress{
		Epoch: epoch, TotalEpochs: t.cfg.Epochs,
		Batch: batches, TotalBatches: batches,
		NSLoss: math.NaN(), SoftmaxLoss: math.NaN(),
		Checkpoint: t.cfg.CheckpointPath,
		Err:        err,
	})
}

func (t *Trainer) report(p domain.Progress) {
	if t.onProgress != nil {
		t.onProgress(p)
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

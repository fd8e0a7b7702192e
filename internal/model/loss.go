package model

import (
	"math"
	"math/rand"

	"skipgram/internal/domain"
)

// score is the logistic-regression logit of word w given center c.
func (m *Model) score(w, c int) float64 {
	return dot(m.wOut[w], m.wIn[c]) + m.bOut[w]
}

// NegativeSamplingLoss returns the mean skip-gram negative-sampling loss
// over the batch at the current weights. Each pair scores its true
// context against k negatives drawn from neg; a draw that collides with
// the true context is redrawn a bounded number of times, then skipped.
func (m *Model) NegativeSamplingLoss(batch []domain.TrainingPair, k int, neg domain.NegativeSampler, rng *rand.Rand) (float64, error) {
	if err := m.checkBatch(batch); err != nil {
		return 0, err
	}
	if err := checkNegatives(k, neg); err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range batch {
		sum += -logSigmoid(m.score(p.Context, p.Center))
		for kk := 0; kk < k; kk++ {
			n, ok := drawNegative(p.Context, neg, rng)
			if !ok {
				continue
			}
			sum += -logSigmoid(-m.score(n, p.Center))
		}
	}
	return sum / float64(len(batch)), nil
}

// FullSoftmaxLoss returns the mean exact cross-entropy against all V
// output scores. O(V*h) per pair; monitoring only, never part of a
// gradient step.
func (m *Model) FullSoftmaxLoss(batch []domain.TrainingPair) (float64, error) {
	if err := m.checkBatch(batch); err != nil {
		return 0, err
	}
	logits := make([]float64, len(m.wOut))
	var sum float64
	for _, p := range batch {
		for w := range m.wOut {
			logits[w] = m.score(w, p.Center)
		}
		sum += logSumExp(logits) - logits[p.Context]
	}
	return sum / float64(len(batch)), nil
}

const negativeRedraws = 8

// drawNegative rejects draws equal to the true context word. After
// negativeRedraws collisions the draw is skipped rather than forced.
func drawNegative(target int, neg domain.NegativeSampler, rng *rand.Rand) (int, bool) {
	for i := 0; i <= negativeRedraws; i++ {
		n := neg.Sample(rng)
		if n != target {
			return n, true
		}
	}
	return 0, false
}

func checkNegatives(k int, neg domain.NegativeSampler) error {
	if k < 0 {
		return &domain.ConfigurationError{Field: "negatives", Reason: "must not be negative"}
	}
	if k > 0 && neg == nil {
		return &domain.ConfigurationError{Field: "sampler", Reason: "required when negatives are requested"}
	}
	return nil
}

// sigmoid branches on the sign so neither tail overflows.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// logSigmoid computes log(sigmoid(x)) via log1p, staying finite for
// arguments far into either tail.
func logSigmoid(x float64) float64 {
	if x >= 0 {
		return -math.Log1p(math.Exp(-x))
	}
	return x - math.Log1p(math.Exp(x))
}

// logSumExp subtracts the max before exponentiating so large scores
// cannot overflow.
func logSumExp(xs []float64) float64 {
	mx := xs[0]
	for _, x := range xs[1:] {
		if x > mx {
			mx = x
		}
	}
	if math.IsInf(mx, -1) {
		return mx
	}
	var s float64
	for _, x := range xs {
		s += math.Exp(x - mx)
	}
	return mx + math.Log(s)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

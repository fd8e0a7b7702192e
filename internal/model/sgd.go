package model

import (
	"math/rand"

	"skipgram/internal/domain"
)

// Step applies one stochastic gradient update per pair, in batch order,
// and returns the running mean negative-sampling loss as the updates
// apply. The gradients are the closed-form logistic ones: for the true
// context the logit error is sigmoid(score)-1, for a negative it is
// sigmoid(score). Each pair's update touches the center's input row, the
// scored output rows and their biases. Step is the only writer; readers
// that run between batches observe whole-batch commits.
func (m *Model) Step(batch []domain.TrainingPair, k int, lr float64, neg domain.NegativeSampler, rng *rand.Rand) (float64, error) {
	if err := m.checkBatch(batch); err != nil {
		return 0, err
	}
	if err := checkNegatives(k, neg); err != nil {
		return 0, err
	}
	if lr <= 0 {
		return 0, &domain.ConfigurationError{Field: "learning_rate", Reason: "must be positive"}
	}
	grad := make([]float64, m.dim)
	var sum float64
	for _, p := range batch {
		vc := m.wIn[p.Center]
		for d := range grad {
			grad[d] = 0
		}

		st := m.score(p.Context, p.Center)
		sum += -logSigmoid(st)
		gt := sigmoid(st) - 1
		ut := m.wOut[p.Context]
		for d := range ut {
			grad[d] += gt * ut[d]
			ut[d] -= lr * gt * vc[d]
		}
		m.bOut[p.Context] -= lr * gt

		for kk := 0; kk < k; kk++ {
			n, ok := drawNegative(p.Context, neg, rng)
			if !ok {
				continue
			}
			sn := m.score(n, p.Center)
			sum += -logSigmoid(-sn)
			gn := sigmoid(sn)
			un := m.wOut[n]
			for d := range un {
				grad[d] += gn * un[d]
				un[d] -= lr * gn * vc[d]
			}
			m.bOut[n] -= lr * gn
		}

		for d := range vc {
			vc[d] -= lr * grad[d]
		}
	}
	return sum / float64(len(batch)), nil
}

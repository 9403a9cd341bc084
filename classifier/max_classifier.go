package classifier

import (
	"github.com/vijaydialani/keystone/distributed"
	"github.com/vijaydialani/keystone/pkg/errors"
	"github.com/vijaydialani/keystone/workflow"
)

// MaxClassifier turns a per-example score vector into a hard class decision
// by taking the index of the largest entry. Composed after a model's
// log-posterior output it yields the maximum-a-posteriori class.
type MaxClassifier struct{}

var _ workflow.Transformer[[]float64, int] = MaxClassifier{}

// Apply returns the argmax of every score vector. Ties resolve to the lowest
// class index. An empty score vector aborts the call with a ValueError.
func (MaxClassifier) Apply(scores *distributed.Dataset[[]float64]) (*distributed.Dataset[int], error) {
	return distributed.Map(scores, func(v []float64) (int, error) {
		if len(v) == 0 {
			return 0, errors.NewValueError("MaxClassifier.Apply", "empty score vector")
		}
		best := 0
		for i := 1; i < len(v); i++ {
			if v[i] > v[best] {
				best = i
			}
		}
		return best, nil
	})
}

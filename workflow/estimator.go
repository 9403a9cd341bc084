package workflow

import (
	"github.com/vijaydialani/keystone/distributed"
)

// Estimator is an unsupervised fitting stage: it derives a Transformer's
// parameters from a single pass over the training data. Fit must not retain
// a reference to the training dataset; the returned Transformer is immutable.
type Estimator[In, Out any] interface {
	Fit(data *distributed.Dataset[In]) (Transformer[In, Out], error)
}

// LabelEstimator is a supervised fitting stage. The data and labels datasets
// must have equal cardinality and be positionally aligned; alignment is
// established once upstream by distributed.Zip and is not re-validated per
// element here.
type LabelEstimator[In, Out, L any] interface {
	Fit(data *distributed.Dataset[In], labels *distributed.Dataset[L]) (Transformer[In, Out], error)
}

// EstimatorFunc adapts a plain function to the Estimator interface.
type EstimatorFunc[In, Out any] func(*distributed.Dataset[In]) (Transformer[In, Out], error)

// Fit calls f.
func (f EstimatorFunc[In, Out]) Fit(data *distributed.Dataset[In]) (Transformer[In, Out], error) {
	return f(data)
}

// LabelEstimatorFunc adapts a plain function to the LabelEstimator interface.
type LabelEstimatorFunc[In, Out, L any] func(*distributed.Dataset[In], *distributed.Dataset[L]) (Transformer[In, Out], error)

// Fit calls f.
func (f LabelEstimatorFunc[In, Out, L]) Fit(data *distributed.Dataset[In], labels *distributed.Dataset[L]) (Transformer[In, Out], error) {
	return f(data, labels)
}

package workflow

import (
	"github.com/vijaydialani/keystone/distributed"
)

// Then composes two transformers sequentially: the result applies first and
// feeds its output into second. Composition is associative, since the
// composed Apply is defined exactly as second.Apply(first.Apply(x)) with no
// state of its own. Errors from either stage propagate unchanged.
//
// Then is a free function rather than a method because Go methods cannot
// introduce the extra type parameter the downstream stage needs.
func Then[A, B, C any](first Transformer[A, B], second Transformer[B, C]) Transformer[A, C] {
	return TransformerFunc[A, C](func(data *distributed.Dataset[A]) (*distributed.Dataset[C], error) {
		mid, err := first.Apply(data)
		if err != nil {
			return nil, err
		}
		return second.Apply(mid)
	})
}

// EstimatorThen composes a fitting stage with a downstream transformer.
// Fitting the result fits the estimator and chains the fitted transformer
// with next.
func EstimatorThen[A, B, C any](est Estimator[A, B], next Transformer[B, C]) Estimator[A, C] {
	return EstimatorFunc[A, C](func(data *distributed.Dataset[A]) (Transformer[A, C], error) {
		fitted, err := est.Fit(data)
		if err != nil {
			return nil, err
		}
		return Then(fitted, next), nil
	})
}

// LabelEstimatorThen composes a supervised fitting stage with a downstream
// transformer in the same way as EstimatorThen.
func LabelEstimatorThen[A, B, C, L any](est LabelEstimator[A, B, L], next Transformer[B, C]) LabelEstimator[A, C, L] {
	return LabelEstimatorFunc[A, C, L](func(data *distributed.Dataset[A], labels *distributed.Dataset[L]) (Transformer[A, C], error) {
		fitted, err := est.Fit(data, labels)
		if err != nil {
			return nil, err
		}
		return Then(fitted, next), nil
	})
}

// Package workflow defines the stage abstractions pipelines are built from:
// Transformer (a pure function between datasets), Estimator and
// LabelEstimator (fitting stages that produce a Transformer from training
// data), and the sequential composition operators that chain them.
package workflow

import (
	"github.com/vijaydialani/keystone/distributed"
)

// Transformer is a deterministic, side-effect-free function from one dataset
// to another. Apply must be referentially transparent: the same input
// contents yield the same output contents regardless of partition processing
// order or which worker runs a partition.
type Transformer[In, Out any] interface {
	Apply(data *distributed.Dataset[In]) (*distributed.Dataset[Out], error)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc[In, Out any] func(*distributed.Dataset[In]) (*distributed.Dataset[Out], error)

// Apply calls f.
func (f TransformerFunc[In, Out]) Apply(data *distributed.Dataset[In]) (*distributed.Dataset[Out], error) {
	return f(data)
}

// Identity returns the unit transformer, which passes its input through
// unchanged. It is the left and right identity of Then.
func Identity[T any]() Transformer[T, T] {
	return TransformerFunc[T, T](func(data *distributed.Dataset[T]) (*distributed.Dataset[T], error) {
		return data, nil
	})
}

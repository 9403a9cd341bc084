// Package distributed provides the partitioned-collection substrate the
// pipeline stages run on: an in-process Dataset split into partitions that
// are processed concurrently, positional Zip for pairing features with
// labels, and a one-shot Broadcast primitive for read-only parameters.
//
// The package fixes the contract stages depend on (map over partitions,
// zip, cache, broadcast); a cluster-backed substrate would implement the
// same operations.
package distributed

import (
	"strconv"

	"github.com/vijaydialani/keystone/core/parallel"
	"github.com/vijaydialani/keystone/pkg/errors"
)

// Dataset is a partitioned collection of elements. Order is stable within a
// partition and unspecified across partitions. Datasets are immutable: every
// operation returns a new Dataset and never mutates its input.
type Dataset[T any] struct {
	partitions [][]T
	cached     bool
}

// FromSlice splits values into numPartitions contiguous chunks.
// numPartitions values below 1 are treated as 1; empty trailing partitions
// are kept so that partition count is exactly what the caller asked for.
func FromSlice[T any](values []T, numPartitions int) *Dataset[T] {
	if numPartitions < 1 {
		numPartitions = 1
	}
	parts := make([][]T, numPartitions)
	chunkSize := (len(values) + numPartitions - 1) / numPartitions
	if chunkSize == 0 {
		chunkSize = 1
	}
	for i := 0; i < numPartitions; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if start > len(values) {
			start = len(values)
		}
		if end > len(values) {
			end = len(values)
		}
		parts[i] = values[start:end:end]
	}
	return &Dataset[T]{partitions: parts}
}

// FromPartitions wraps an explicit partition layout. The slices are used as
// given; callers must not mutate them afterwards.
func FromPartitions[T any](parts [][]T) *Dataset[T] {
	return &Dataset[T]{partitions: parts}
}

// NumPartitions returns the number of partitions, including empty ones.
func (d *Dataset[T]) NumPartitions() int {
	return len(d.partitions)
}

// Count returns the total number of elements across all partitions.
func (d *Dataset[T]) Count() int {
	n := 0
	for _, p := range d.partitions {
		n += len(p)
	}
	return n
}

// Collect concatenates all partitions in partition order.
func (d *Dataset[T]) Collect() []T {
	out := make([]T, 0, d.Count())
	for _, p := range d.partitions {
		out = append(out, p...)
	}
	return out
}

// Cache marks the dataset as materialized. The in-process substrate always
// holds partitions in memory, so this only records intent, mirroring the
// caching hook a cluster substrate would implement.
func (d *Dataset[T]) Cache() *Dataset[T] {
	d.cached = true
	return d
}

// IsCached reports whether Cache has been called on this dataset.
func (d *Dataset[T]) IsCached() bool {
	return d.cached
}

// MapPartitions applies fn to each partition concurrently and returns a new
// dataset with the same partition count. fn receives the partition index and
// its elements, and must not retain or mutate the input slice.
//
// Any error returned by fn aborts the whole operation; a panic inside fn is
// recovered into a PanicError naming the partition. The first failing
// partition (by index) determines the returned error.
func MapPartitions[T, U any](d *Dataset[T], fn func(partition int, elems []T) ([]U, error)) (*Dataset[U], error) {
	n := len(d.partitions)
	if n == 0 {
		return nil, errors.WithStack(errors.ErrEmptyPartition)
	}

	outParts := make([][]U, n)
	errs := make([]error, n)

	parallel.ForEachIndex(n, func(i int) {
		errs[i] = errors.SafeExecute(partitionOp(i), func() error {
			out, err := fn(i, d.partitions[i])
			if err != nil {
				return err
			}
			outParts[i] = out
			return nil
		})
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &Dataset[U]{partitions: outParts}, nil
}

// Map applies fn to every element, preserving partitioning and
// within-partition order.
func Map[T, U any](d *Dataset[T], fn func(T) (U, error)) (*Dataset[U], error) {
	return MapPartitions(d, func(_ int, elems []T) ([]U, error) {
		out := make([]U, len(elems))
		for i, e := range elems {
			u, err := fn(e)
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	})
}

// Pair is a positionally matched element of two zipped datasets.
type Pair[T, U any] struct {
	First  T
	Second U
}

// Zip pairs two datasets positionally. Both datasets must have the same
// partition count and identical per-partition cardinality; a mismatch
// returns an AlignmentError. Zip establishes the positional correspondence
// once, before any further processing, so downstream stages may assume
// alignment without re-validating it.
func Zip[T, U any](a *Dataset[T], b *Dataset[U]) (*Dataset[Pair[T, U]], error) {
	if len(a.partitions) != len(b.partitions) {
		return nil, errors.NewAlignmentError("Zip", a.Count(), b.Count(), -1)
	}
	parts := make([][]Pair[T, U], len(a.partitions))
	for i := range a.partitions {
		pa, pb := a.partitions[i], b.partitions[i]
		if len(pa) != len(pb) {
			return nil, errors.NewAlignmentError("Zip", len(pa), len(pb), i)
		}
		pairs := make([]Pair[T, U], len(pa))
		for j := range pa {
			pairs[j] = Pair[T, U]{First: pa[j], Second: pb[j]}
		}
		parts[i] = pairs
	}
	return &Dataset[Pair[T, U]]{partitions: parts}, nil
}

func partitionOp(i int) string {
	return "partition " + strconv.Itoa(i)
}

// Package classifier provides learning stages for distributed pipelines.
// Its estimators fit model parameters with one aggregation pass over a
// partitioned training set and emit an immutable transformer usable at
// prediction time.
package classifier

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/vijaydialani/keystone/distributed"
	"github.com/vijaydialani/keystone/pkg/errors"
	"github.com/vijaydialani/keystone/pkg/log"
	"github.com/vijaydialani/keystone/workflow"
)

// NaiveBayesEstimator fits a multinomial Naive Bayes model from labeled
// training data. Feature values are treated as nonnegative frequency-like
// counts; Lambda is the additive (Laplace) smoothing constant applied to the
// class-conditional counts.
//
// NumClasses is declared, not inferred: every class identifier in the labels
// must lie in [0, NumClasses), and every declared class must be observed at
// least once. A declared class with zero training examples has an undefined
// log prior and fails the fit with a DegenerateClassError instead of leaving
// a silently zeroed parameter row.
type NaiveBayesEstimator struct {
	NumClasses int
	Lambda     float64
}

var _ workflow.LabelEstimator[[]float64, []float64, int] = (*NaiveBayesEstimator)(nil)

// NewNaiveBayesEstimator creates an estimator for numClasses classes with the
// default smoothing constant lambda = 1.0.
func NewNaiveBayesEstimator(numClasses int) *NaiveBayesEstimator {
	return &NaiveBayesEstimator{NumClasses: numClasses, Lambda: 1.0}
}

// Fit aggregates per-class example counts and per-class feature sums in one
// pass over the zipped (features, labels) partitions, then derives log priors
// and smoothed log conditionals. It returns a NaiveBayesModel and retains no
// reference to the training data.
//
// Failure conditions: misaligned features/labels cardinality (AlignmentError),
// inconsistent feature dimensionality (DimensionError), labels outside
// [0, NumClasses) or negative feature values (ValidationError), and declared
// classes with no training examples (DegenerateClassError).
func (e *NaiveBayesEstimator) Fit(features *distributed.Dataset[[]float64], labels *distributed.Dataset[int]) (workflow.Transformer[[]float64, []float64], error) {
	start := time.Now()

	if e.NumClasses <= 0 {
		return nil, errors.NewValidationError("NumClasses", "must be positive", e.NumClasses)
	}
	if e.Lambda < 0 {
		return nil, errors.NewValidationError("Lambda", "must be non-negative", e.Lambda)
	}

	pairs, err := distributed.Zip(features, labels)
	if err != nil {
		return nil, err
	}

	numClasses := e.NumClasses
	partials, err := distributed.MapPartitions(pairs, func(_ int, examples []distributed.Pair[[]float64, int]) ([]*classStats, error) {
		st := newClassStats(numClasses)
		for _, ex := range examples {
			if err := st.add(ex.First, ex.Second); err != nil {
				return nil, err
			}
		}
		return []*classStats{st}, nil
	})
	if err != nil {
		return nil, err
	}

	merged := newClassStats(e.NumClasses)
	for _, st := range partials.Collect() {
		if err := merged.merge(st); err != nil {
			return nil, err
		}
	}

	model, err := e.buildModel(merged)
	if err != nil {
		return nil, err
	}

	slog.Info("naive bayes fit complete",
		slog.String(log.StageNameKey, "NaiveBayesEstimator"),
		slog.String(log.OperationKey, log.OperationFit),
		slog.Int(log.SamplesKey, int(floats.Sum(merged.counts))),
		slog.Int(log.FeaturesKey, merged.features),
		slog.Int(log.ClassesKey, e.NumClasses),
		slog.Int(log.PartitionsKey, features.NumPartitions()),
		slog.Int64(log.DurationMsKey, time.Since(start).Milliseconds()))

	return model, nil
}

// classStats holds the sufficient statistics of one partition (or of the
// merged whole): per-class example counts and per-class feature sums.
// features stays -1 until the first example fixes the dimensionality D.
type classStats struct {
	numClasses int
	features   int
	counts     []float64
	sums       *mat.Dense // numClasses × features
}

func newClassStats(numClasses int) *classStats {
	return &classStats{
		numClasses: numClasses,
		features:   -1,
		counts:     make([]float64, numClasses),
	}
}

func (s *classStats) add(x []float64, label int) error {
	const op = "NaiveBayesEstimator.Fit"

	if label < 0 || label >= s.numClasses {
		return errors.NewValidationError("labels", "class identifier outside [0, numClasses)", label)
	}
	if len(x) == 0 {
		return errors.NewModelError(op, "empty feature vector", errors.ErrEmptyData)
	}
	if s.features < 0 {
		s.features = len(x)
		s.sums = mat.NewDense(s.numClasses, s.features, nil)
	}
	if len(x) != s.features {
		return errors.NewDimensionError(op, s.features, len(x), 1)
	}

	s.counts[label]++
	for d, v := range x {
		if v < 0 {
			return errors.NewValidationError("features", "multinomial feature counts must be non-negative", v)
		}
		s.sums.Set(label, d, s.sums.At(label, d)+v)
	}
	return nil
}

// merge folds another partition's statistics into s. Empty partitions carry
// no dimensionality and merge as a no-op.
func (s *classStats) merge(other *classStats) error {
	if other.features < 0 {
		return nil
	}
	if s.features < 0 {
		s.features = other.features
		s.sums = mat.NewDense(s.numClasses, s.features, nil)
	}
	if other.features != s.features {
		return errors.NewDimensionError("NaiveBayesEstimator.Fit", s.features, other.features, 1)
	}
	floats.Add(s.counts, other.counts)
	s.sums.Add(s.sums, other.sums)
	return nil
}

// buildModel performs the reindexing and smoothing step: it materializes the
// dense NumClasses × D parameter matrices once, validating that the declared
// class index space [0, NumClasses) is exactly covered by the observed labels.
func (e *NaiveBayesEstimator) buildModel(st *classStats) (*NaiveBayesModel, error) {
	const op = "NaiveBayesEstimator.Fit"

	if st.features < 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	for c, cnt := range st.counts {
		if cnt == 0 {
			return nil, errors.NewDegenerateClassError(op, c)
		}
	}

	numClasses, numFeatures := e.NumClasses, st.features
	total := floats.Sum(st.counts)

	pi := mat.NewVecDense(numClasses, nil)
	theta := mat.NewDense(numClasses, numFeatures, nil)
	for c := 0; c < numClasses; c++ {
		pi.SetVec(c, math.Log(st.counts[c]/total))

		denom := floats.Sum(st.sums.RawRowView(c)) + float64(numFeatures)*e.Lambda
		for d := 0; d < numFeatures; d++ {
			theta.Set(c, d, math.Log((st.sums.At(c, d)+e.Lambda)/denom))
		}
	}

	if err := errors.CheckNumericalStability(op, pi.RawVector().Data); err != nil {
		return nil, err
	}
	// With positive smoothing every conditional is strictly between 0 and 1,
	// so a non-finite theta entry means the aggregation itself went wrong.
	// With Lambda == 0 a -Inf entry is a legitimate unseen-feature log(0).
	if e.Lambda > 0 {
		if err := errors.CheckMatrix(op, theta, numClasses, numFeatures); err != nil {
			return nil, err
		}
	}

	classes := make([]int, numClasses)
	for c := range classes {
		classes[c] = c
	}
	return &NaiveBayesModel{Classes: classes, Pi: pi, Theta: theta}, nil
}

// NaiveBayesModel holds the learned log class priors (Pi, length C) and log
// class-conditional feature probabilities (Theta, C × D), row-aligned with
// Classes. The model is constructed once by Fit and never mutated; it may be
// applied concurrently to any number of datasets.
type NaiveBayesModel struct {
	Classes []int
	Pi      *mat.VecDense
	Theta   *mat.Dense
}

var _ workflow.Transformer[[]float64, []float64] = (*NaiveBayesModel)(nil)

// nbParams is the read-only parameter bundle shipped to workers per Apply call.
type nbParams struct {
	pi    *mat.VecDense
	theta *mat.Dense
}

// NumFeatures returns the feature dimensionality D the model was fitted on.
func (m *NaiveBayesModel) NumFeatures() int {
	_, d := m.Theta.Dims()
	return d
}

// Apply computes the unnormalized log-posterior vector pi + theta·x for every
// feature vector in the dataset. Callers needing probabilities or a hard
// decision must exponentiate/normalize or argmax downstream.
//
// The parameters are distributed once per Apply call via the broadcast
// primitive; each partition reads the handle once and reuses the local copy
// for all of its examples. A feature vector whose dimensionality disagrees
// with the model's D aborts the call with a DimensionError.
func (m *NaiveBayesModel) Apply(features *distributed.Dataset[[]float64]) (*distributed.Dataset[[]float64], error) {
	const op = "NaiveBayesModel.Apply"
	if m.Pi == nil || m.Theta == nil {
		return nil, errors.NewNotFittedError("NaiveBayesModel", "Apply")
	}
	numClasses, numFeatures := m.Theta.Dims()

	params := distributed.Distribute(&nbParams{pi: m.Pi, theta: m.Theta})

	return distributed.MapPartitions(features, func(_ int, vecs [][]float64) ([][]float64, error) {
		local := params.Value() // one read per partition, reused for every example
		out := make([][]float64, len(vecs))
		for i, x := range vecs {
			if len(x) != numFeatures {
				return nil, errors.NewDimensionError(op, numFeatures, len(x), 1)
			}
			posterior := mat.NewVecDense(numClasses, nil)
			posterior.MulVec(local.theta, mat.NewVecDense(numFeatures, x))
			posterior.AddVec(posterior, local.pi)
			out[i] = posterior.RawVector().Data
		}
		return out, nil
	})
}

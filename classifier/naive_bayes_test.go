package classifier

import (
	"math"
	"testing"

	"github.com/vijaydialani/keystone/distributed"
	"github.com/vijaydialani/keystone/pkg/errors"
	"github.com/vijaydialani/keystone/workflow"
)

const tol = 1e-12

// Two classes with two binary features each: class 0 fires feature 0,
// class 1 fires feature 1.
func trainingData() ([][]float64, []int) {
	features := [][]float64{
		{1, 0},
		{1, 0},
		{0, 1},
		{0, 1},
	}
	labels := []int{0, 0, 1, 1}
	return features, labels
}

func fitModel(t *testing.T, features [][]float64, labels []int, numClasses, numPartitions int) *NaiveBayesModel {
	t.Helper()
	est := NewNaiveBayesEstimator(numClasses)
	fitted, err := est.Fit(
		distributed.FromSlice(features, numPartitions),
		distributed.FromSlice(labels, numPartitions),
	)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	model, ok := fitted.(*NaiveBayesModel)
	if !ok {
		t.Fatalf("Fit() returned %T, want *NaiveBayesModel", fitted)
	}
	return model
}

func TestNaiveBayesFitConcreteScenario(t *testing.T) {
	features, labels := trainingData()
	model := fitModel(t, features, labels, 2, 2)

	wantPi := []float64{math.Log(0.5), math.Log(0.5)}
	for c, want := range wantPi {
		if got := model.Pi.AtVec(c); math.Abs(got-want) > tol {
			t.Errorf("Pi[%d] = %v, want %v", c, got, want)
		}
	}

	// Smoothed counts: class 0 sums [2,0], denominator 2 + 2*1 = 4.
	wantTheta := [][]float64{
		{math.Log(3.0 / 4.0), math.Log(1.0 / 4.0)},
		{math.Log(1.0 / 4.0), math.Log(3.0 / 4.0)},
	}
	for c := range wantTheta {
		for d := range wantTheta[c] {
			if got := model.Theta.At(c, d); math.Abs(got-wantTheta[c][d]) > tol {
				t.Errorf("Theta[%d][%d] = %v, want %v", c, d, got, wantTheta[c][d])
			}
		}
	}

	if len(model.Classes) != 2 || model.Classes[0] != 0 || model.Classes[1] != 1 {
		t.Errorf("Classes = %v, want [0 1]", model.Classes)
	}
}

func TestNaiveBayesApplyShape(t *testing.T) {
	features, labels := trainingData()
	model := fitModel(t, features, labels, 2, 2)

	out, err := model.Apply(distributed.FromSlice(features, 2))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	posteriors := out.Collect()
	if len(posteriors) != len(features) {
		t.Fatalf("Apply() produced %d vectors, want %d", len(posteriors), len(features))
	}
	for i, p := range posteriors {
		if len(p) != 2 {
			t.Errorf("posterior %d has length %d, want 2", i, len(p))
		}
	}
}

func TestNaiveBayesClassificationDirection(t *testing.T) {
	features, labels := trainingData()
	model := fitModel(t, features, labels, 2, 2)

	out, err := model.Apply(distributed.FromSlice([][]float64{{1, 0}}, 1))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	posterior := out.Collect()[0]
	if posterior[0] <= posterior[1] {
		t.Errorf("class-0 example scored [%v, %v]; class 0 should win", posterior[0], posterior[1])
	}
}

func TestNaiveBayesRepartitionInvariance(t *testing.T) {
	features := [][]float64{
		{3, 0, 1},
		{2, 1, 0},
		{0, 4, 2},
		{1, 3, 1},
		{0, 0, 5},
		{2, 2, 2},
	}
	labels := []int{0, 0, 1, 1, 2, 2}

	reference := fitModel(t, features, labels, 3, 1)
	for _, numPartitions := range []int{2, 3, 4, 6} {
		model := fitModel(t, features, labels, 3, numPartitions)
		for c := 0; c < 3; c++ {
			if got, want := model.Pi.AtVec(c), reference.Pi.AtVec(c); math.Abs(got-want) > 1e-9 {
				t.Errorf("partitions=%d: Pi[%d] = %v, want %v", numPartitions, c, got, want)
			}
			for d := 0; d < 3; d++ {
				if got, want := model.Theta.At(c, d), reference.Theta.At(c, d); math.Abs(got-want) > 1e-9 {
					t.Errorf("partitions=%d: Theta[%d][%d] = %v, want %v", numPartitions, c, d, got, want)
				}
			}
		}
	}
}

func TestNaiveBayesSmoothingAvoidsLogZero(t *testing.T) {
	// Feature 1 never fires for class 0 and feature 0 never fires for
	// class 1; with lambda > 0 neither conditional may be log(0).
	features, labels := trainingData()
	model := fitModel(t, features, labels, 2, 2)

	rows, cols := model.Theta.Dims()
	for c := 0; c < rows; c++ {
		for d := 0; d < cols; d++ {
			if math.IsInf(model.Theta.At(c, d), -1) {
				t.Errorf("Theta[%d][%d] = -Inf despite smoothing", c, d)
			}
		}
	}
}

func TestNaiveBayesDegenerateClass(t *testing.T) {
	// numClasses overstates the observed classes: class 2 has no examples.
	features, labels := trainingData()
	est := NewNaiveBayesEstimator(3)

	_, err := est.Fit(
		distributed.FromSlice(features, 2),
		distributed.FromSlice(labels, 2),
	)
	if err == nil {
		t.Fatal("Fit() error = nil, want DegenerateClassError")
	}
	var degErr *errors.DegenerateClassError
	if !errors.As(err, &degErr) {
		t.Fatalf("Fit() error = %v, want *DegenerateClassError", err)
	}
	if degErr.Class != 2 {
		t.Errorf("DegenerateClassError.Class = %d, want 2", degErr.Class)
	}
}

func TestNaiveBayesLabelOutOfRange(t *testing.T) {
	// numClasses underspecifies the observed labels; this is a logic error
	// upstream and must not be auto-corrected.
	features, labels := trainingData()
	est := NewNaiveBayesEstimator(1)

	_, err := est.Fit(
		distributed.FromSlice(features, 2),
		distributed.FromSlice(labels, 2),
	)
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Fit() error = %v, want *ValidationError", err)
	}
}

func TestNaiveBayesFitValidation(t *testing.T) {
	features, labels := trainingData()

	tests := []struct {
		name string
		est  *NaiveBayesEstimator
	}{
		{name: "Zero classes", est: &NaiveBayesEstimator{NumClasses: 0, Lambda: 1.0}},
		{name: "Negative lambda", est: &NaiveBayesEstimator{NumClasses: 2, Lambda: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.est.Fit(
				distributed.FromSlice(features, 2),
				distributed.FromSlice(labels, 2),
			)
			var valErr *errors.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("Fit() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestNaiveBayesNegativeFeature(t *testing.T) {
	est := NewNaiveBayesEstimator(2)
	_, err := est.Fit(
		distributed.FromSlice([][]float64{{1, 0}, {-1, 1}}, 1),
		distributed.FromSlice([]int{0, 1}, 1),
	)
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("Fit() error = %v, want *ValidationError", err)
	}
}

func TestNaiveBayesInconsistentDimensionality(t *testing.T) {
	est := NewNaiveBayesEstimator(2)
	_, err := est.Fit(
		distributed.FromSlice([][]float64{{1, 0}, {0, 1, 1}}, 1),
		distributed.FromSlice([]int{0, 1}, 1),
	)
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Fit() error = %v, want *DimensionError", err)
	}
}

func TestNaiveBayesMisalignedCollections(t *testing.T) {
	est := NewNaiveBayesEstimator(2)
	_, err := est.Fit(
		distributed.FromSlice([][]float64{{1, 0}, {0, 1}, {1, 1}}, 1),
		distributed.FromSlice([]int{0, 1}, 1),
	)
	var alignErr *errors.AlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatalf("Fit() error = %v, want *AlignmentError", err)
	}
}

func TestNaiveBayesApplyDimensionMismatch(t *testing.T) {
	features, labels := trainingData()
	model := fitModel(t, features, labels, 2, 2)

	_, err := model.Apply(distributed.FromSlice([][]float64{{1, 0, 0}}, 1))
	if err == nil {
		t.Fatal("Apply() error = nil, want DimensionError")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("Apply() error = %v, want *DimensionError", err)
	}
	if dimErr.Expected != 2 || dimErr.Got != 3 {
		t.Errorf("DimensionError = expected %d got %d, want expected 2 got 3", dimErr.Expected, dimErr.Got)
	}
}

func TestNaiveBayesModelIsReusable(t *testing.T) {
	features, labels := trainingData()
	model := fitModel(t, features, labels, 2, 2)

	first, err := model.Apply(distributed.FromSlice(features, 2))
	if err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	second, err := model.Apply(distributed.FromSlice(features, 4))
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	fv, sv := first.Collect(), second.Collect()
	for i := range fv {
		for j := range fv[i] {
			if math.Abs(fv[i][j]-sv[i][j]) > tol {
				t.Errorf("posterior[%d][%d] differs across applications: %v vs %v", i, j, fv[i][j], sv[i][j])
			}
		}
	}
}

func TestNaiveBayesZeroValueModelNotFitted(t *testing.T) {
	var model NaiveBayesModel
	_, err := model.Apply(distributed.FromSlice([][]float64{{1, 0}}, 1))
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("Apply() error = %v, want *NotFittedError", err)
	}
}

func TestNaiveBayesComposedPipeline(t *testing.T) {
	features, labels := trainingData()

	est := NewNaiveBayesEstimator(2)
	pipeline := workflow.LabelEstimatorThen[[]float64, []float64, int, int](est, MaxClassifier{})

	predict, err := pipeline.Fit(
		distributed.FromSlice(features, 2),
		distributed.FromSlice(labels, 2),
	)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	out, err := predict.Apply(distributed.FromSlice(features, 2))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	predictions := out.Collect()
	for i, want := range labels {
		if predictions[i] != want {
			t.Errorf("prediction[%d] = %d, want %d", i, predictions[i], want)
		}
	}
}

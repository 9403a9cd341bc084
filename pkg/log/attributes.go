// Package log defines standard attribute keys for pipeline operations.
//
// Using these keys consistently across fit and apply logging enables
// structured analysis of pipeline runs: which stage ran, how much data it
// saw, how it was partitioned, and how long it took.

package log

// Stage and operation context.
const (
	// StageNameKey identifies the pipeline stage emitting the log.
	// Examples: "NaiveBayesEstimator", "MaxClassifier"
	StageNameKey = "stage.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "apply"
	OperationKey = "pipeline.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "classifier", "workflow", "distributed"
	ComponentKey = "pipeline.component"
)

// Data shape and distribution.
const (
	// SamplesKey indicates the number of examples in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the feature dimensionality of the dataset.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of classes in a labeled dataset.
	ClassesKey = "data.classes"

	// PartitionsKey indicates the number of partitions the dataset is split into.
	PartitionsKey = "data.partitions"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Standard attribute value constants for common operations.
const (
	OperationFit   = "fit"
	OperationApply = "apply"
)

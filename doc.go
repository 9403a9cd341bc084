// Package keystone provides a minimal distributed machine-learning pipeline
// framework for Go: composable transformation stages over partitioned
// datasets, fit-then-apply estimators, and a multinomial Naive Bayes
// learning stage.
//
// # Design
//
// A pipeline is built from two capability shapes. A Transformer is a pure
// function from one partitioned dataset to another; a LabelEstimator derives
// a Transformer's parameters from training data in a single aggregation
// pass. Stages chain with workflow.Then, and fitted model parameters are
// shipped to workers once per apply call through a broadcast handle rather
// than per record.
//
// # Quick Start
//
//	features := distributed.FromSlice(trainX, 4)
//	labels := distributed.FromSlice(trainY, 4)
//
//	est := classifier.NewNaiveBayesEstimator(numClasses)
//	model, err := est.Fit(features, labels)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Compose the model with an argmax stage and classify held-out data.
//	predict := workflow.Then(model, classifier.MaxClassifier{})
//	predictions, err := predict.Apply(distributed.FromSlice(testX, 4))
//
// The packages:
//
//   - distributed: partitioned in-process dataset, Zip, and the broadcast
//     primitive
//   - workflow: Transformer/Estimator/LabelEstimator and sequential
//     composition
//   - classifier: multinomial Naive Bayes estimator and model, argmax stage
//   - metrics: classification evaluation helpers
//   - pkg/errors, pkg/log: typed errors with stack traces and structured
//     logging
package keystone

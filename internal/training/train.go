package training

import (
	"fmt"
	"math/rand"
	"time"

	"exo-sense/internal/classifier"
	"exo-sense/internal/domain"
)

// testFraction is the held-out share of the stratified validation split.
const testFraction = 0.2

// TrainDefaultModel assembles the training dataset, fits the default
// classifier on a stratified 80/20 split with class-balanced weighting,
// logs the held-out classification report, and persists the artifact.
// Nothing is written when any stage fails: a partial model is never
// persisted.
func TrainDefaultModel(artifactPath string, opts DatasetOptions) (*classifier.Artifact, error) {
	opts.applyDefaults()
	logger := opts.Logger

	x, y, err := BuildTrainingDataset(opts)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.RandomSeed))
	trainIdx, testIdx := StratifiedSplit(y, testFraction, rng)

	estimator := classifier.NewLogistic()
	if err := estimator.Fit(rows(x, trainIdx), labels(y, trainIdx)); err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	yPred := make([]int, len(testIdx))
	for i, idx := range testIdx {
		p, err := estimator.PredictProbability(x[idx])
		if err != nil {
			return nil, fmt.Errorf("score validation sample: %w", err)
		}
		if p >= 0.5 {
			yPred[i] = 1
		}
	}
	report := Evaluate(labels(y, testIdx), yPred)
	logger.Printf("held-out validation report:\n%s", report)

	artifact := &classifier.Artifact{
		Version:      classifier.ArtifactVersion,
		FeatureNames: domain.FeatureNames,
		TrainedAt:    time.Now().UTC(),
		Model:        estimator,
	}
	if err := classifier.SaveArtifact(artifactPath, artifact); err != nil {
		return nil, err
	}
	logger.Printf("saved trained model to %s", artifactPath)

	return artifact, nil
}

// ModelTrainer adapts TrainDefaultModel to the classifier.Trainer
// contract, capturing the dataset options.
func ModelTrainer(opts DatasetOptions) classifier.Trainer {
	return func(artifactPath string, randomSeed int64) (*classifier.Artifact, error) {
		o := opts
		o.RandomSeed = randomSeed
		return TrainDefaultModel(artifactPath, o)
	}
}

func rows(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

func labels(y []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

// Package classifier wraps a probabilistic binary classifier behind a
// predict-one-curve contract. Persisted artifacts carry the feature-name
// schema they were fitted on so a drifted vectorization order is caught
// at load time.
package classifier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Classifier errors.
var (
	ErrNotFitted           = errors.New("classifier has not been fitted")
	ErrDimensionMismatch   = errors.New("feature dimensionality mismatch")
	ErrInsufficientClasses = errors.New("training data must contain both classes")
)

// Estimator is the capability required of a statistical model: fit on a
// labeled feature matrix, then report the class-1 probability of a single
// feature vector. Any model honoring this contract and trained with
// class-balanced weighting is a legal substitute for the default.
type Estimator interface {
	Fit(x [][]float64, y []int) error
	PredictProbability(features []float64) (float64, error)
}

// Logistic is a class-balanced logistic regression over standardized
// features. Fitting is deterministic: weights start at zero and
// full-batch gradient descent runs a fixed number of epochs, so the same
// dataset always produces the same model.
type Logistic struct {
	Means   []float64 `json:"means"`
	Scales  []float64 `json:"scales"`
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`

	LearningRate float64 `json:"learning_rate"`
	Epochs       int     `json:"epochs"`
	L2           float64 `json:"l2"`
}

// NewLogistic returns an unfitted estimator with default hyperparameters.
func NewLogistic() *Logistic {
	return &Logistic{
		LearningRate: 0.1,
		Epochs:       500,
		L2:           1e-4,
	}
}

// Fit trains the model on a feature matrix and binary labels. Samples are
// weighted inversely to their class frequency, compensating for the
// heavy class imbalance of real catalogs.
func (m *Logistic) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: empty feature matrix", ErrDimensionMismatch)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d rows but %d labels", ErrDimensionMismatch, len(x), len(y))
	}

	dims := len(x[0])
	positives := 0
	for i, row := range x {
		if len(row) != dims {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), dims)
		}
		if y[i] == 1 {
			positives++
		}
	}
	n := len(x)
	negatives := n - positives
	if positives == 0 || negatives == 0 {
		return fmt.Errorf("%w: %d positive, %d negative samples", ErrInsufficientClasses, positives, negatives)
	}

	m.Means, m.Scales = fitScaler(x, dims)
	scaled := make([][]float64, n)
	for i, row := range x {
		scaled[i] = m.transform(row)
	}

	// Balanced weighting: w_c = n / (2 * n_c), so both classes contribute
	// equally to the gradient regardless of their frequency.
	posWeight := float64(n) / (2 * float64(positives))
	negWeight := float64(n) / (2 * float64(negatives))

	weights := make([]float64, dims)
	bias := 0.0
	grad := make([]float64, dims)
	for epoch := 0; epoch < m.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for i, row := range scaled {
			p := sigmoid(floats.Dot(weights, row) + bias)
			weight, target := negWeight, 0.0
			if y[i] == 1 {
				weight, target = posWeight, 1.0
			}
			g := weight * (p - target)
			floats.AddScaled(grad, g, row)
			gradBias += g
		}

		inv := 1.0 / float64(n)
		for j := range weights {
			weights[j] -= m.LearningRate * (grad[j]*inv + m.L2*weights[j])
		}
		bias -= m.LearningRate * gradBias * inv
	}

	m.Weights = weights
	m.Bias = bias
	return nil
}

// PredictProbability returns the class-1 probability for one feature
// vector.
func (m *Logistic) PredictProbability(features []float64) (float64, error) {
	if len(m.Weights) == 0 {
		return 0, ErrNotFitted
	}
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("%w: got %d features, fitted on %d", ErrDimensionMismatch, len(features), len(m.Weights))
	}
	return sigmoid(floats.Dot(m.Weights, m.transform(features)) + m.Bias), nil
}

// transform standardizes one feature vector with the fitted scaler.
func (m *Logistic) transform(features []float64) []float64 {
	out := make([]float64, len(features))
	for j, v := range features {
		out[j] = (v - m.Means[j]) / m.Scales[j]
	}
	return out
}

// fitScaler computes per-column mean and standard deviation. Columns with
// no spread get scale 1 so standardization stays defined.
func fitScaler(x [][]float64, dims int) (means, scales []float64) {
	means = make([]float64, dims)
	scales = make([]float64, dims)
	column := make([]float64, len(x))
	for j := 0; j < dims; j++ {
		for i, row := range x {
			column[i] = row[j]
		}
		means[j] = stat.Mean(column, nil)
		scales[j] = stat.PopStdDev(column, nil)
		if scales[j] == 0 || math.IsNaN(scales[j]) {
			scales[j] = 1
		}
	}
	return means, scales
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

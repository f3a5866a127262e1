package classifier

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"exo-sense/internal/domain"
	"exo-sense/internal/features"
)

// DefaultThreshold is the decision boundary on the class-1 probability.
// Deliberately above 0.5: the detector is biased toward precision, fewer
// false planet calls. The boundary is inclusive.
const DefaultThreshold = 0.55

// ErrModelUnavailable is returned when no trained artifact exists and
// auto-training is disabled.
var ErrModelUnavailable = errors.New("model artifact unavailable")

// Trainer produces and persists a fitted artifact at the given path. It
// is injected so the adapter stays decoupled from dataset assembly.
type Trainer func(artifactPath string, randomSeed int64) (*Artifact, error)

// ModelOptions configures the classifier adapter.
type ModelOptions struct {
	ArtifactPath string  // required
	AutoTrain    bool    // train via Trainer when the artifact is missing
	RandomSeed   int64   // seed forwarded to the trainer
	Threshold    float64 // decision boundary; 0 means DefaultThreshold
	Trainer      Trainer // required when AutoTrain is set
	Logger       *log.Logger
}

// Metadata describes a loaded model.
type Metadata struct {
	Version      string
	FeatureNames []string
}

// Model adapts a trained probabilistic classifier to the
// predict-one-curve contract. Construct once and reuse; Predict is safe
// for concurrent use after construction.
type Model struct {
	estimator Estimator
	metadata  Metadata
	threshold float64
}

// NewModel loads the artifact at the configured path, or trains one when
// auto-training is enabled. Returns ErrModelUnavailable when the artifact
// is missing and cannot be produced.
func NewModel(opts ModelOptions) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	art, err := loadOrTrain(opts, logger)
	if err != nil {
		return nil, err
	}
	if err := art.CheckSchema(domain.FeatureNames); err != nil {
		return nil, err
	}

	return &Model{
		estimator: art.Model,
		metadata:  Metadata{Version: art.Version, FeatureNames: art.FeatureNames},
		threshold: threshold,
	}, nil
}

func loadOrTrain(opts ModelOptions, logger *log.Logger) (*Artifact, error) {
	if _, err := os.Stat(opts.ArtifactPath); err == nil {
		logger.Printf("loading classifier artifact from %s", opts.ArtifactPath)
		return LoadArtifact(opts.ArtifactPath)
	}

	if !opts.AutoTrain || opts.Trainer == nil {
		return nil, fmt.Errorf("%w: no artifact at %s and auto-train disabled",
			ErrModelUnavailable, opts.ArtifactPath)
	}

	logger.Printf("no artifact at %s, training a new classifier", opts.ArtifactPath)
	return opts.Trainer(opts.ArtifactPath, opts.RandomSeed)
}

// Metadata returns version and feature schema of the loaded model.
func (m *Model) Metadata() Metadata {
	return m.metadata
}

// Predict extracts features from the curve, scores them, and applies the
// decision threshold. Construction and cleaning errors from the curve
// propagate unchanged.
func (m *Model) Predict(lc domain.LightCurve) (domain.PredictionResult, error) {
	feats, err := features.Extract(lc)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	probability, err := m.estimator.PredictProbability(feats.Vector())
	if err != nil {
		return domain.PredictionResult{}, err
	}

	return domain.PredictionResult{
		Probability: probability,
		Label:       labelFor(probability, m.threshold),
		Features:    feats,
	}, nil
}

// labelFor applies the inclusive decision boundary.
func labelFor(probability, threshold float64) string {
	if probability >= threshold {
		return domain.LabelPlanet
	}
	return domain.LabelNonPlanet
}

// Package training assembles labeled datasets from real and synthetic
// light curves, fits the default classifier, and persists the trained
// artifact.
package training

import (
	"errors"
	"io"
	"log"
	"math/rand"

	"exo-sense/internal/domain"
	"exo-sense/internal/features"
	"exo-sense/internal/simulation"
)

// ErrNoTrainingData is returned when every configured source yields zero
// usable samples.
var ErrNoTrainingData = errors.New("no training data available")

// Defaults for dataset assembly.
const (
	DefaultSyntheticSamples = 400
	DefaultMinCurveSamples  = 400
)

// LabeledCurve pairs a light curve with its binary label
// (1 = planet, 0 = non-planet).
type LabeledCurve struct {
	Curve domain.LightCurve
	Label int
}

// RealSource supplies labeled curves from an ingestion collaborator. The
// format and location of the underlying catalog is that collaborator's
// concern.
type RealSource func() ([]LabeledCurve, error)

// DatasetOptions configures BuildTrainingDataset. Zero values fall back
// to the documented defaults.
type DatasetOptions struct {
	RandomSeed       int64
	SyntheticSamples int  // simulated curves; 0 means default 400, negative disables
	IncludeReal      bool // pull curves from RealSource when set
	MinCurveSamples  int  // drop real curves shorter than this; default 400
	RealSource       RealSource
	SimConfig        simulation.Config // zero value means DefaultConfig
	Logger           *log.Logger
}

func (o *DatasetOptions) applyDefaults() {
	if o.SyntheticSamples == 0 {
		o.SyntheticSamples = DefaultSyntheticSamples
	}
	if o.MinCurveSamples == 0 {
		o.MinCurveSamples = DefaultMinCurveSamples
	}
	if (o.SimConfig == simulation.Config{}) {
		o.SimConfig = simulation.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
}

// BuildTrainingDataset assembles the feature matrix and label vector used
// for model training: real curves when available, augmented with
// simulated ones labeled by i.i.d. coin flips. Returns ErrNoTrainingData
// when both sources come up empty.
func BuildTrainingDataset(opts DatasetOptions) ([][]float64, []int, error) {
	opts.applyDefaults()

	var x [][]float64
	var y []int

	if opts.IncludeReal {
		realX, realY := loadRealDataset(opts)
		if len(realY) > 0 {
			x = append(x, realX...)
			y = append(y, realY...)
			opts.Logger.Printf("loaded %d real light curves for training", len(realY))
		} else {
			opts.Logger.Printf("no real light curves available, proceeding without them")
		}
	}

	if opts.SyntheticSamples > 0 {
		synX, synY, err := generateSynthetic(opts)
		if err != nil {
			return nil, nil, err
		}
		x = append(x, synX...)
		y = append(y, synY...)
		opts.Logger.Printf("generated %d synthetic samples", len(synY))
	}

	if len(y) == 0 {
		return nil, nil, ErrNoTrainingData
	}

	counts := map[int]int{}
	for _, label := range y {
		counts[label]++
	}
	opts.Logger.Printf("training set class distribution: non-planet=%d planet=%d", counts[0], counts[1])

	return x, y, nil
}

func generateSynthetic(opts DatasetOptions) ([][]float64, []int, error) {
	rng := rand.New(rand.NewSource(opts.RandomSeed))

	x := make([][]float64, 0, opts.SyntheticSamples)
	y := make([]int, 0, opts.SyntheticSamples)
	for i := 0; i < opts.SyntheticSamples; i++ {
		hasTransit := rng.Intn(2) == 1

		curve, err := simulation.Simulate(rng, hasTransit, opts.SimConfig)
		if err != nil {
			return nil, nil, err
		}
		feats, err := features.Extract(curve)
		if err != nil {
			return nil, nil, err
		}

		x = append(x, feats.Vector())
		label := 0
		if hasTransit {
			label = 1
		}
		y = append(y, label)
	}
	return x, y, nil
}

func loadRealDataset(opts DatasetOptions) ([][]float64, []int) {
	if opts.RealSource == nil {
		opts.Logger.Printf("no real-data source configured, skipping real curves")
		return nil, nil
	}

	labeled, err := opts.RealSource()
	if err != nil {
		opts.Logger.Printf("failed to load real light curves: %v", err)
		return nil, nil
	}

	var x [][]float64
	var y []int
	for _, sample := range labeled {
		if sample.Curve.SampleCount() < opts.MinCurveSamples {
			continue
		}
		feats, err := features.Extract(sample.Curve)
		if err != nil {
			opts.Logger.Printf("skipping unusable curve: %v", err)
			continue
		}
		x = append(x, feats.Vector())
		y = append(y, sample.Label)
	}
	return x, y
}

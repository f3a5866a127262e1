package training

import (
	"log"
	"os"
	"sync"

	"exo-sense/internal/classifier"
)

// DefaultRandomSeed seeds auto-training of the process-wide model.
const DefaultRandomSeed = 7

// DefaultArtifactPath returns the artifact location: the
// EXOSENSE_MODEL_PATH environment variable when set, otherwise a local
// artifacts directory.
func DefaultArtifactPath() string {
	if path := os.Getenv("EXOSENSE_MODEL_PATH"); path != "" {
		return path
	}
	return "artifacts/exoplanet_classifier.json"
}

var (
	defaultOnce  sync.Once
	defaultModel *classifier.Model
	defaultErr   error
)

// DefaultModel returns the process-wide classifier handle, training and
// persisting an artifact on first use when none exists. The sync.Once
// guard makes first-time initialization a critical section: concurrent
// first accesses cannot trigger duplicate training or race on the
// artifact file. Construction failure is sticky for the process
// lifetime, matching the load-once contract.
func DefaultModel(logger *log.Logger) (*classifier.Model, error) {
	defaultOnce.Do(func() {
		defaultModel, defaultErr = classifier.NewModel(classifier.ModelOptions{
			ArtifactPath: DefaultArtifactPath(),
			AutoTrain:    true,
			RandomSeed:   DefaultRandomSeed,
			Trainer:      ModelTrainer(DatasetOptions{Logger: logger}),
			Logger:       logger,
		})
	})
	return defaultModel, defaultErr
}

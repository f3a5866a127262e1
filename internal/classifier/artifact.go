package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArtifactVersion identifies the current artifact layout.
const ArtifactVersion = "0.1.0"

// ErrSchemaMismatch is returned when a persisted artifact was fitted on a
// different feature schema than the running binary vectorizes.
var ErrSchemaMismatch = errors.New("artifact feature schema mismatch")

// Artifact is the persisted form of a trained classifier together with
// the metadata needed to validate it at load time.
type Artifact struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	TrainedAt    time.Time `json:"trained_at"`
	Model        *Logistic `json:"model"`
}

// CheckSchema verifies that the artifact was fitted on exactly the given
// feature-name order.
func (a *Artifact) CheckSchema(featureNames []string) error {
	if len(a.FeatureNames) != len(featureNames) {
		return fmt.Errorf("%w: artifact has %d features, want %d",
			ErrSchemaMismatch, len(a.FeatureNames), len(featureNames))
	}
	for i, name := range featureNames {
		if a.FeatureNames[i] != name {
			return fmt.Errorf("%w: position %d is %q, want %q",
				ErrSchemaMismatch, i, a.FeatureNames[i], name)
		}
	}
	return nil
}

// SaveArtifact writes the artifact as a single JSON file, creating parent
// directories as needed.
func SaveArtifact(path string, art *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads an artifact previously written by SaveArtifact.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if art.Model == nil {
		return nil, fmt.Errorf("decode artifact %s: missing model", path)
	}
	return &art, nil
}

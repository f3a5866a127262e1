package domain

// Classification labels assigned by the decision layer.
const (
	LabelPlanet    = "planet"
	LabelNonPlanet = "non-planet"
)

// PredictionResult is the immutable output of one inference call.
type PredictionResult struct {
	Probability float64            `json:"probability"`
	Label       string             `json:"label"`
	Features    LightCurveFeatures `json:"features"`
}

// ExoplanetDetected reports whether the curve was labeled as a planet.
func (r PredictionResult) ExoplanetDetected() bool {
	return r.Label == LabelPlanet
}

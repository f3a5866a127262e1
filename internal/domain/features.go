package domain

// LightCurveFeatures summarises a light curve as a fixed set of numeric
// descriptors. Field declaration order IS the vectorization order: Vector
// and FeatureNames walk the fields in the same sequence, and a trained
// model is only valid for the schema it was fitted on. Reordering fields
// breaks every previously persisted artifact.
type LightCurveFeatures struct {
	MeanFlux       float64 `json:"mean_flux"`
	MedianFlux     float64 `json:"median_flux"`
	StdFlux        float64 `json:"std_flux"`
	MinFlux        float64 `json:"min_flux"`
	MaxFlux        float64 `json:"max_flux"`
	TrendSlope     float64 `json:"trend_slope"`
	Depth          float64 `json:"depth"`
	DepthSNR       float64 `json:"depth_snr"`
	TransitRatio   float64 `json:"transit_ratio"`
	AutoCorrLag1   float64 `json:"auto_corr_lag1"`
	AutoCorrLag5   float64 `json:"auto_corr_lag5"`
	PeakPower      float64 `json:"peak_power"`
	DominantPeriod float64 `json:"dominant_period"`
	Skewness       float64 `json:"skewness"`
	Kurtosis       float64 `json:"kurtosis"`
}

// FeatureNames lists feature identifiers in vectorization order. It is
// stored inside every model artifact so a schema drift is detected at
// load time instead of silently mis-scoring curves.
var FeatureNames = []string{
	"mean_flux",
	"median_flux",
	"std_flux",
	"min_flux",
	"max_flux",
	"trend_slope",
	"depth",
	"depth_snr",
	"transit_ratio",
	"auto_corr_lag1",
	"auto_corr_lag5",
	"peak_power",
	"dominant_period",
	"skewness",
	"kurtosis",
}

// FeatureCount is the fixed dimensionality of the feature vector.
const FeatureCount = 15

// Vector returns feature values in FeatureNames order.
func (f LightCurveFeatures) Vector() []float64 {
	return []float64{
		f.MeanFlux,
		f.MedianFlux,
		f.StdFlux,
		f.MinFlux,
		f.MaxFlux,
		f.TrendSlope,
		f.Depth,
		f.DepthSNR,
		f.TransitRatio,
		f.AutoCorrLag1,
		f.AutoCorrLag5,
		f.PeakPower,
		f.DominantPeriod,
		f.Skewness,
		f.Kurtosis,
	}
}

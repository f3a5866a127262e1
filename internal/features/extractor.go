// Package features converts light curves into fixed-size numeric feature
// vectors. Classification quality depends entirely on this pipeline:
// flux normalization, dip detection, autocorrelation, spectral period
// estimation and distribution moments.
package features

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"exo-sense/internal/domain"
)

// eps floors denominators so degenerate curves degrade to zero-valued
// features instead of dividing by zero.
const eps = 1e-8

// DetectorConfig holds the empirically chosen constants of the pipeline.
// The values are defaults with no documented derivation; changing them
// shifts the training statistics of any downstream classifier.
type DetectorConfig struct {
	// DipSigma is how many standard deviations below the median a sample
	// must fall to count as an in-transit dip.
	DipSigma float64
	// MinPeriodogramSamples gates the spectral features: shorter curves
	// report zero peak power and period.
	MinPeriodogramSamples int
}

// DefaultDetectorConfig returns the thresholds the default model was
// trained against.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		DipSigma:              2.5,
		MinPeriodogramSamples: 10,
	}
}

// Extract computes the feature vector for a light curve with the default
// detector thresholds. The curve is cleaned and sorted defensively, so
// callers that already did so pay only an O(n) scan. Extraction never
// fails for a curve with at least one finite sample; every edge case
// (short input, flat flux, absent dips) degrades to zero-valued features.
func Extract(lc domain.LightCurve) (domain.LightCurveFeatures, error) {
	return ExtractWithConfig(lc, DefaultDetectorConfig())
}

// ExtractWithConfig is Extract with explicit detector thresholds.
func ExtractWithConfig(lc domain.LightCurve, cfg DetectorConfig) (domain.LightCurveFeatures, error) {
	cleaned, err := lc.ClipNonFinite()
	if err != nil {
		return domain.LightCurveFeatures{}, err
	}
	cleaned = cleaned.EnsureSorted()

	time := cleaned.Time
	normalized := normalizeFlux(cleaned.Flux)

	f := domain.LightCurveFeatures{
		MeanFlux:   stat.Mean(normalized, nil),
		MedianFlux: median(normalized),
		StdFlux:    stat.PopStdDev(normalized, nil),
		MinFlux:    floats.Min(normalized),
		MaxFlux:    floats.Max(normalized),
	}

	f.TrendSlope = trendSlope(time, normalized)
	f.Depth, f.DepthSNR, f.TransitRatio = detectTransits(normalized, cfg.DipSigma)
	f.AutoCorrLag1 = autocorr(normalized, 1)
	f.AutoCorrLag5 = autocorr(normalized, 5)
	f.PeakPower, f.DominantPeriod = periodicSignature(time, normalized, cfg.MinPeriodogramSamples)
	f.Skewness = sanitize(skewness(normalized))
	f.Kurtosis = sanitize(exKurtosis(normalized))

	return f, nil
}

// normalizeFlux converts flux to relative units around its median. When
// the median is within eps of zero the data is already centered, so the
// flux is mean-centered instead of divided.
func normalizeFlux(flux []float64) []float64 {
	out := make([]float64, len(flux))
	med := median(flux)
	if math.Abs(med) <= eps {
		mean := stat.Mean(flux, nil)
		for i, v := range flux {
			out[i] = v - mean
		}
		return out
	}
	for i, v := range flux {
		out[i] = (v - med) / (med + eps)
	}
	return out
}

// trendSlope is the slope of a degree-1 least-squares fit of flux against
// time. 0 for fewer than 2 samples or a degenerate time axis.
func trendSlope(time, flux []float64) float64 {
	if len(time) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(time, flux, nil, false)
	return sanitize(slope)
}

// detectTransits flags samples more than dipSigma standard deviations
// below the median as in-transit and derives depth, SNR and the fraction
// of dipped samples. All zeros when no sample crosses the threshold.
func detectTransits(flux []float64, dipSigma float64) (depth, depthSNR, transitRatio float64) {
	std := stat.PopStdDev(flux, nil) + eps
	med := median(flux)
	threshold := med - dipSigma*std

	dips := 0
	for _, v := range flux {
		if v < threshold {
			dips++
		}
	}
	if dips == 0 {
		return 0, 0, 0
	}

	depth = math.Abs(floats.Min(flux) - med)
	depthSNR = depth / std
	transitRatio = float64(dips) / float64(len(flux))
	return depth, depthSNR, transitRatio
}

// autocorr is the normalized autocorrelation of mean-centered flux at the
// given lag. 0 when the curve has lag or fewer samples.
func autocorr(flux []float64, lag int) float64 {
	if len(flux) <= lag {
		return 0
	}
	mean := stat.Mean(flux, nil)
	centered := make([]float64, len(flux))
	for i, v := range flux {
		centered[i] = v - mean
	}

	numerator := floats.Dot(centered[:len(centered)-lag], centered[lag:])
	denominator := floats.Dot(centered, centered) + eps
	return numerator / denominator
}

// periodicSignature estimates the spectral concentration of the curve: a
// one-sided periodogram at the implied sampling frequency, reduced to the
// power fraction in the strongest positive-frequency bin and the period
// of that bin. Requires minSamples samples and a positive median cadence.
func periodicSignature(time, flux []float64, minSamples int) (peakRatio, dominantPeriod float64) {
	n := len(time)
	if n < minSamples {
		return 0, 0
	}
	cadence := medianDiff(time)
	if cadence <= 0 {
		return 0, 0
	}

	mean := stat.Mean(flux, nil)
	detrended := make([]float64, n)
	for i, v := range flux {
		detrended[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, detrended)

	fs := 1.0 / cadence
	freqs := make([]float64, 0, len(coeffs)-1)
	power := make([]float64, 0, len(coeffs)-1)
	for k := 1; k < len(coeffs); k++ {
		freq := fft.Freq(k) * fs
		if freq <= 0 {
			continue
		}
		p := cmplx.Abs(coeffs[k])
		p = p * p / (float64(n) * float64(n))
		// One-sided spectrum: every bin except DC and (for even n) the
		// Nyquist bin carries the power of its negative-frequency twin.
		if !(n%2 == 0 && k == n/2) {
			p *= 2
		}
		freqs = append(freqs, freq)
		power = append(power, p)
	}
	if len(freqs) == 0 {
		return 0, 0
	}

	peak := 0
	for i := 1; i < len(power); i++ {
		if power[i] > power[peak] {
			peak = i
		}
	}
	if freqs[peak] > 0 {
		dominantPeriod = 1 / freqs[peak]
	}
	total := floats.Sum(power) + eps
	return power[peak] / total, dominantPeriod
}

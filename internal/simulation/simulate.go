// Package simulation generates synthetic light curves with known ground
// truth for classifier training and testing. Generation is a pure
// function of the supplied random generator, so a fixed seed reproduces
// a dataset bit for bit.
package simulation

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"exo-sense/internal/domain"
)

// Simulate generates one synthetic light curve.
//
// The forward model, in draw order:
//  1. Uniform time grid over [0, duration].
//  2. Baseline flux 1, plus i.i.d. Gaussian noise.
//  3. Stellar rotation: a sinusoid with period drawn from U[8, 18] days.
//  4. hasTransit: periodic box dips (period U[1, 14] d, depth
//     U[5e-4, 3.5e-3], duration U[0.05, 0.25] d, random phase), plus a
//     30% chance of a secondary eclipse half a period later at 30-60% of
//     the primary depth - the eclipsing-binary false-positive scenario.
//  5. Otherwise: a 50% chance of a single Gaussian flare, a non-periodic
//     confounder a classifier must learn to reject.
//
// The ground-truth label is not embedded in the curve; callers pair the
// returned curve with hasTransit themselves.
func Simulate(rng *rand.Rand, hasTransit bool, cfg Config) (domain.LightCurve, error) {
	if err := cfg.Validate(); err != nil {
		return domain.LightCurve{}, err
	}

	n := cfg.SampleCount()
	time := make([]float64, n)
	if n > 1 {
		floats.Span(time, 0, cfg.DurationDays)
	}

	flux := make([]float64, n)
	for i := range flux {
		flux[i] = 1 + rng.NormFloat64()*cfg.NoiseLevel
	}

	rotationPeriod := uniform(rng, 8, 18)
	for i := range flux {
		flux[i] += cfg.StellarVariability * math.Sin(2*math.Pi*time[i]/rotationPeriod)
	}

	if hasTransit {
		period := uniform(rng, 1, 14)
		depth := uniform(rng, 5e-4, 3.5e-3)
		duration := uniform(rng, 0.05, 0.25)
		phase := uniform(rng, 0, period)

		subtractBox(time, flux, period, phase, duration, depth)

		if rng.Float64() < 0.3 {
			secondaryDepth := depth * uniform(rng, 0.3, 0.6)
			subtractBox(time, flux, period, phase+period/2, duration, secondaryDepth)
		}
	} else if rng.Float64() < 0.5 {
		// Keep the flare away from the window edges; for very short
		// windows shrink the margin instead of inverting the interval.
		margin := math.Min(2, cfg.DurationDays/4)
		center := uniform(rng, margin, cfg.DurationDays-margin)
		width := uniform(rng, 0.05, 0.2)
		height := uniform(rng, 5e-4, 2e-3)
		for i := range flux {
			z := (time[i] - center) / width
			flux[i] += height * math.Exp(-0.5*z*z)
		}
	}

	return domain.FromSequences(time, flux)
}

// subtractBox dims every sample whose phase-folded time falls inside the
// transit window.
func subtractBox(time, flux []float64, period, phase, duration, depth float64) {
	for i := range flux {
		if posMod(time[i]-phase, period) < duration {
			flux[i] -= depth
		}
	}
}

// posMod is the modulo operation with a result in [0, b).
func posMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

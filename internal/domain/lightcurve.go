package domain

import (
	"fmt"
	"math"
	"sort"
)

// LightCurve is a time series of stellar brightness measurements.
// Time is in days, flux in relative brightness units; both slices always
// have the same length. Curves are value objects: transforms return new
// curves and never modify the receiver.
type LightCurve struct {
	Time []float64
	Flux []float64
}

// FromSequences builds a LightCurve from raw time/flux sequences.
// Inputs are copied. Returns ErrInvalidInput when either sequence is
// empty or the lengths differ.
func FromSequences(time, flux []float64) (LightCurve, error) {
	if len(time) == 0 {
		return LightCurve{}, fmt.Errorf("%w: time array cannot be empty", ErrInvalidInput)
	}
	if len(flux) == 0 {
		return LightCurve{}, fmt.Errorf("%w: flux array cannot be empty", ErrInvalidInput)
	}
	if len(time) != len(flux) {
		return LightCurve{}, fmt.Errorf(
			"%w: time and flux arrays must have the same length (%d != %d)",
			ErrInvalidInput, len(time), len(flux),
		)
	}

	t := make([]float64, len(time))
	f := make([]float64, len(flux))
	copy(t, time)
	copy(f, flux)
	return LightCurve{Time: t, Flux: f}, nil
}

// SampleCount returns the number of samples in the curve.
func (lc LightCurve) SampleCount() int {
	return len(lc.Time)
}

// ClipNonFinite returns a copy retaining only samples where both time and
// flux are finite. Returns ErrNoFiniteSamples when nothing survives.
// Idempotent: an already-clean curve is returned unchanged.
func (lc LightCurve) ClipNonFinite() (LightCurve, error) {
	finite := 0
	for i := range lc.Time {
		if isFinite(lc.Time[i]) && isFinite(lc.Flux[i]) {
			finite++
		}
	}
	if finite == 0 {
		return LightCurve{}, fmt.Errorf("%w: light curve has no usable samples", ErrNoFiniteSamples)
	}
	if finite == len(lc.Time) {
		return lc, nil
	}

	t := make([]float64, 0, finite)
	f := make([]float64, 0, finite)
	for i := range lc.Time {
		if isFinite(lc.Time[i]) && isFinite(lc.Flux[i]) {
			t = append(t, lc.Time[i])
			f = append(f, lc.Flux[i])
		}
	}
	return LightCurve{Time: t, Flux: f}, nil
}

// EnsureSorted returns a copy whose time axis is non-decreasing, using a
// stable sort by time. Already-sorted curves are returned as-is.
// Idempotent.
func (lc LightCurve) EnsureSorted() LightCurve {
	if sort.Float64sAreSorted(lc.Time) {
		return lc
	}

	order := make([]int, len(lc.Time))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return lc.Time[order[i]] < lc.Time[order[j]]
	})

	t := make([]float64, len(lc.Time))
	f := make([]float64, len(lc.Flux))
	for i, j := range order {
		t[i] = lc.Time[j]
		f[i] = lc.Flux[j]
	}
	return LightCurve{Time: t, Flux: f}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSequences_Valid(t *testing.T) {
	lc, err := FromSequences([]float64{0, 1, 2}, []float64{1.0, 0.99, 1.01})
	require.NoError(t, err)
	assert.Equal(t, 3, lc.SampleCount())
	assert.Equal(t, []float64{0, 1, 2}, lc.Time)
}

func TestFromSequences_CopiesInput(t *testing.T) {
	time := []float64{0, 1}
	flux := []float64{1, 2}
	lc, err := FromSequences(time, flux)
	require.NoError(t, err)

	// Mutating the caller's slices must not change the curve.
	time[0] = 99
	flux[0] = 99
	assert.Equal(t, 0.0, lc.Time[0])
	assert.Equal(t, 1.0, lc.Flux[0])
}

func TestFromSequences_EmptyTime(t *testing.T) {
	_, err := FromSequences(nil, []float64{1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromSequences_EmptyFlux(t *testing.T) {
	_, err := FromSequences([]float64{1}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromSequences_LengthMismatch(t *testing.T) {
	_, err := FromSequences([]float64{0, 1}, []float64{1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestClipNonFinite_RemovesAllNonFinite(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	lc, err := FromSequences(
		[]float64{0, nan, 2, 3, 4},
		[]float64{1, 1, inf, -inf, 1},
	)
	require.NoError(t, err)

	cleaned, err := lc.ClipNonFinite()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4}, cleaned.Time)
	assert.Equal(t, []float64{1, 1}, cleaned.Flux)
	for i := range cleaned.Time {
		assert.False(t, math.IsNaN(cleaned.Time[i]) || math.IsInf(cleaned.Time[i], 0))
		assert.False(t, math.IsNaN(cleaned.Flux[i]) || math.IsInf(cleaned.Flux[i], 0))
	}
}

func TestClipNonFinite_AllNaN(t *testing.T) {
	nan := math.NaN()
	lc, err := FromSequences([]float64{0, 1}, []float64{nan, nan})
	require.NoError(t, err)

	_, err = lc.ClipNonFinite()
	require.ErrorIs(t, err, ErrNoFiniteSamples)
}

func TestClipNonFinite_Idempotent(t *testing.T) {
	lc, err := FromSequences([]float64{0, 1, 2}, []float64{1, 2, 3})
	require.NoError(t, err)

	once, err := lc.ClipNonFinite()
	require.NoError(t, err)
	twice, err := once.ClipNonFinite()
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestEnsureSorted_Reorders(t *testing.T) {
	lc, err := FromSequences([]float64{2, 0, 1}, []float64{30, 10, 20})
	require.NoError(t, err)

	sorted := lc.EnsureSorted()
	assert.Equal(t, []float64{0, 1, 2}, sorted.Time)
	assert.Equal(t, []float64{10, 20, 30}, sorted.Flux)

	// Original curve is untouched.
	assert.Equal(t, []float64{2, 0, 1}, lc.Time)
}

func TestEnsureSorted_Idempotent(t *testing.T) {
	lc, err := FromSequences([]float64{3, 1, 2, 1}, []float64{4, 1, 3, 2})
	require.NoError(t, err)

	once := lc.EnsureSorted()
	twice := once.EnsureSorted()
	assert.Equal(t, once, twice)

	for i := 1; i < once.SampleCount(); i++ {
		assert.LessOrEqual(t, once.Time[i-1], once.Time[i])
	}
}

func TestEnsureSorted_StableForTies(t *testing.T) {
	// Ties on time keep their original relative order.
	lc, err := FromSequences([]float64{1, 0, 1}, []float64{100, 0, 200})
	require.NoError(t, err)

	sorted := lc.EnsureSorted()
	assert.Equal(t, []float64{0, 1, 1}, sorted.Time)
	assert.Equal(t, []float64{0, 100, 200}, sorted.Flux)
}

func TestEnsureSorted_NoopWhenSorted(t *testing.T) {
	lc, err := FromSequences([]float64{0, 1, 2}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, lc, lc.EnsureSorted())
}

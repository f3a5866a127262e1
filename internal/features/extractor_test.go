package features

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exo-sense/internal/domain"
	"exo-sense/internal/simulation"
)

func mustCurve(t *testing.T, time, flux []float64) domain.LightCurve {
	t.Helper()
	lc, err := domain.FromSequences(time, flux)
	require.NoError(t, err)
	return lc
}

func TestExtract_SingleSample(t *testing.T) {
	f, err := Extract(mustCurve(t, []float64{0}, []float64{1}))
	require.NoError(t, err)

	// Every feature degrades to zero for a single constant sample.
	assert.Equal(t, make([]float64, domain.FeatureCount), f.Vector())
}

func TestExtract_VectorLengthIsFixed(t *testing.T) {
	curves := []domain.LightCurve{
		mustCurve(t, []float64{0}, []float64{1}),
		mustCurve(t, []float64{0, 1}, []float64{1, 2}),
		mustCurve(t, []float64{0, 1, 2, 3, 4}, []float64{1, 1, 1, 1, 1}),
	}
	for _, lc := range curves {
		f, err := Extract(lc)
		require.NoError(t, err)
		assert.Len(t, f.Vector(), domain.FeatureCount)
	}
}

func TestExtract_AllNaNPropagatesCleaningError(t *testing.T) {
	nan := math.NaN()
	_, err := Extract(mustCurve(t, []float64{0, 1}, []float64{nan, nan}))
	require.ErrorIs(t, err, domain.ErrNoFiniteSamples)
}

func TestExtract_DefensiveSort(t *testing.T) {
	time := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	flux := []float64{1, 1.01, 0.99, 1, 1.02, 0.98, 1, 1.01, 0.99, 1, 1.02, 0.98}

	shuffledTime := []float64{5, 0, 3, 1, 9, 2, 7, 4, 11, 6, 10, 8}
	shuffledFlux := make([]float64, len(flux))
	for i, tt := range shuffledTime {
		shuffledFlux[i] = flux[int(tt)]
	}

	sorted, err := Extract(mustCurve(t, time, flux))
	require.NoError(t, err)
	shuffled, err := Extract(mustCurve(t, shuffledTime, shuffledFlux))
	require.NoError(t, err)

	assert.Equal(t, sorted, shuffled)
}

func TestExtract_DipDetection(t *testing.T) {
	// 95 baseline samples and a 5-sample 1% dip.
	n := 100
	time := make([]float64, n)
	flux := make([]float64, n)
	for i := range flux {
		time[i] = float64(i)
		flux[i] = 1.0
	}
	for i := 40; i < 45; i++ {
		flux[i] = 0.99
	}

	f, err := Extract(mustCurve(t, time, flux))
	require.NoError(t, err)
	assert.Greater(t, f.Depth, 0.0)
	assert.Greater(t, f.DepthSNR, 0.0)
	assert.InDelta(t, 0.05, f.TransitRatio, 1e-12)
	assert.InDelta(t, 0.01, f.Depth, 1e-4)
}

func TestExtract_NoDipsYieldZeroTransitFeatures(t *testing.T) {
	time := make([]float64, 50)
	flux := make([]float64, 50)
	for i := range flux {
		time[i] = float64(i)
		// Smooth low-amplitude wave, nothing beyond 2.5 sigma.
		flux[i] = 1 + 0.001*math.Sin(float64(i)/5)
	}

	f, err := Extract(mustCurve(t, time, flux))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Depth)
	assert.Equal(t, 0.0, f.DepthSNR)
	assert.Equal(t, 0.0, f.TransitRatio)
}

func TestExtract_TrendSlope(t *testing.T) {
	time := make([]float64, 20)
	flux := make([]float64, 20)
	for i := range flux {
		time[i] = float64(i)
		flux[i] = 1 + 0.01*float64(i)
	}

	f, err := Extract(mustCurve(t, time, flux))
	require.NoError(t, err)
	assert.Greater(t, f.TrendSlope, 0.0)
}

func TestExtract_NearZeroMedianUsesAdditiveCentering(t *testing.T) {
	// Already-centered flux must not be divided by its tiny median.
	time := []float64{0, 1, 2, 3}
	flux := []float64{-0.5, 0.5, -0.5, 0.5}

	f, err := Extract(mustCurve(t, time, flux))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f.MaxFlux, 1e-12)
	assert.InDelta(t, -0.5, f.MinFlux, 1e-12)
	assert.InDelta(t, 0.0, f.MeanFlux, 1e-12)
}

func TestAutocorr(t *testing.T) {
	// A slowly varying signal correlates strongly with itself at lag 1.
	n := 100
	smooth := make([]float64, n)
	for i := range smooth {
		smooth[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}
	assert.Greater(t, autocorr(smooth, 1), 0.9)

	// White-ish alternation anticorrelates at lag 1.
	alternating := make([]float64, n)
	for i := range alternating {
		alternating[i] = float64(1 - 2*(i%2))
	}
	assert.Less(t, autocorr(alternating, 1), -0.9)

	// Short inputs degrade to zero.
	assert.Equal(t, 0.0, autocorr([]float64{1, 2}, 5))
	assert.Equal(t, 0.0, autocorr([]float64{1}, 1))
}

func TestPeriodicSignature_PureSinusoid(t *testing.T) {
	// 10 days at 0.01 d cadence with a 0.5 d period: 20 exact cycles,
	// so the signal lands on a single frequency bin.
	n := 1000
	cadence := 0.01
	time := make([]float64, n)
	flux := make([]float64, n)
	for i := range time {
		time[i] = float64(i) * cadence
		flux[i] = 1 + 0.001*math.Sin(2*math.Pi*time[i]/0.5)
	}

	f, err := Extract(mustCurve(t, time, flux))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f.DominantPeriod, 1e-6)
	assert.Greater(t, f.PeakPower, 0.99)
}

func TestPeriodicSignature_Gates(t *testing.T) {
	// Fewer than 10 samples.
	peak, period := periodicSignature([]float64{0, 1, 2}, []float64{1, 2, 3}, 10)
	assert.Equal(t, 0.0, peak)
	assert.Equal(t, 0.0, period)

	// Zero cadence (all timestamps equal).
	time := make([]float64, 12)
	flux := make([]float64, 12)
	for i := range flux {
		flux[i] = float64(i)
	}
	peak, period = periodicSignature(time, flux, 10)
	assert.Equal(t, 0.0, peak)
	assert.Equal(t, 0.0, period)
}

func TestExtract_SimulatedTransitsAreDetectable(t *testing.T) {
	// Individual draws may miss the 2.5 sigma threshold, so the property
	// is checked over many seeds.
	cfg := simulation.DefaultConfig()
	detected := 0
	const seeds = 20
	for seed := int64(0); seed < seeds; seed++ {
		rng := rand.New(rand.NewSource(seed))
		lc, err := simulation.Simulate(rng, true, cfg)
		require.NoError(t, err)

		f, err := Extract(lc)
		require.NoError(t, err)
		if f.Depth > 0 && f.TransitRatio > 0 {
			detected++
		}
	}
	assert.GreaterOrEqual(t, detected, 15, "transit signature detected in %d/%d simulations", detected, seeds)
}

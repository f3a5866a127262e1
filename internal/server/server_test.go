package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exo-sense/internal/classifier"
	"exo-sense/internal/domain"
	"exo-sense/internal/simulation"
	"exo-sense/internal/training"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "classifier.json")
	_, err := training.TrainDefaultModel(path, training.DatasetOptions{
		RandomSeed:       3,
		SyntheticSamples: 48,
		SimConfig: simulation.Config{
			DurationDays:       8,
			CadenceMinutes:     10,
			NoiseLevel:         5e-4,
			StellarVariability: 2.5e-4,
		},
	})
	require.NoError(t, err)

	model, err := classifier.NewModel(classifier.ModelOptions{ArtifactPath: path})
	require.NoError(t, err)
	return New(model, nil)
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, classifier.ArtifactVersion, body["model_version"])
}

func TestAnalyze_ValidCurve(t *testing.T) {
	srv := testServer(t)

	lc, err := simulation.Simulate(rand.New(rand.NewSource(6)), true, simulation.Config{
		DurationDays:       8,
		CadenceMinutes:     10,
		NoiseLevel:         5e-4,
		StellarVariability: 2.5e-4,
	})
	require.NoError(t, err)

	payload, err := json.Marshal(map[string][]float64{"time": lc.Time, "flux": lc.Flux})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(string(payload)))
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.GreaterOrEqual(t, body.Probability, 0.0)
	assert.LessOrEqual(t, body.Probability, 1.0)
	assert.Contains(t, []string{domain.LabelPlanet, domain.LabelNonPlanet}, body.Label)
	assert.Equal(t, body.Label == domain.LabelPlanet, body.ExoplanetDetected)
	assert.Equal(t, lc.SampleCount(), body.SampleCount)
}

func TestAnalyze_MismatchedArrays(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"time":[1,2,3],"flux":[1]}`))
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_EmptyBody(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`not json`))
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyze_EmptyArrays(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"time":[],"flux":[]}`))
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Package server exposes the analyze API over HTTP. It is a thin layer:
// request decoding and status mapping only, all algorithmic content
// lives in the core packages.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"exo-sense/internal/classifier"
	"exo-sense/internal/domain"
)

// Server holds the model handle and serves prediction requests.
type Server struct {
	model  *classifier.Model
	logger *log.Logger
}

// New creates a server around an initialized model handle.
func New(model *classifier.Model, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{model: model, logger: logger}
}

// Routes returns the HTTP mux for the API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	return mux
}

type analyzeRequest struct {
	Time []float64 `json:"time"`
	Flux []float64 `json:"flux"`
}

type analyzeResponse struct {
	Probability       float64                   `json:"probability"`
	Label             string                    `json:"label"`
	ExoplanetDetected bool                      `json:"exoplanet_detected"`
	Features          domain.LightCurveFeatures `json:"features"`
	SampleCount       int                       `json:"sample_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"model_version": s.model.Metadata().Version,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	curve, err := domain.FromSequences(req.Time, req.Flux)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := s.model.Predict(curve)
	switch {
	case errors.Is(err, domain.ErrNoFiniteSamples):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.logger.Printf("analyze failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Probability:       result.Probability,
		Label:             result.Label,
		ExoplanetDetected: result.ExoplanetDetected(),
		Features:          result.Features,
		SampleCount:       curve.SampleCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package main

import (
	"net/http"
	"time"

	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
)

// ModelInfoResponse describes the loaded model bundle
type ModelInfoResponse struct {
	ModelID       string         `json:"model_id"`
	Algorithm     string         `json:"algorithm"`
	SchemaVersion int            `json:"schema_version"`
	FeatureNames  []string       `json:"feature_names"`
	Params        map[string]any `json:"params,omitempty"`
	Metrics       ml.Metrics     `json:"metrics"`
	TrainedAt     time.Time      `json:"trained_at"`
}

// handleModelInfo returns metadata about the bundle the server is scoring with.
func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, ModelInfoResponse{
		ModelID:       s.bundle.ID,
		Algorithm:     s.bundle.Algorithm,
		SchemaVersion: s.bundle.SchemaVersion,
		FeatureNames:  s.bundle.FeatureNames,
		Params:        s.bundle.Params,
		Metrics:       s.bundle.Metrics,
		TrainedAt:     s.bundle.TrainedAt,
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

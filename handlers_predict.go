package main

import (
	"encoding/json"
	"net/http"
)

// PredictionResponse is the scoring endpoint's reply
type PredictionResponse struct {
	PredictedIsHighRisk int     `json:"predicted_is_high_risk"`
	RiskProba           float64 `json:"risk_proba"`
}

// handlePredict scores one customer feature record.
// The request is a flat JSON object of named numeric fields; the field set
// must match the bundle's stored schema exactly, so a drifted client gets a
// 400 naming the offending field instead of a silently shifted vector.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var fields map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeBadRequestResponse(w, "invalid request body: "+err.Error())
		return
	}

	vector, err := s.bundle.VectorFromFields(fields)
	if err != nil {
		writeBadRequestResponse(w, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, PredictionResponse{
		PredictedIsHighRisk: s.model.Predict(vector),
		RiskProba:           s.model.PredictProba(vector),
	})
}

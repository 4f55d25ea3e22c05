package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoring"
)

// ScoreHandler exposes the pure scoring functions
type ScoreHandler struct{}

// NewScoreHandler creates a new score handler
func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{}
}

// HealthResponse is the result of a health score calculation
type HealthResponse struct {
	Score         float64                `json:"score"`
	Status        contracts.HealthStatus `json:"status"`
	Contributions map[string]float64     `json:"contributions"`
}

// CalculateHealth scores a set of dashboard cards sent by the client
// POST /api/score/health
func (h *ScoreHandler) CalculateHealth(w http.ResponseWriter, r *http.Request) {
	var summary contracts.DashboardCardsSummary
	if err := json.NewDecoder(r.Body).Decode(&summary); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := scoring.InputsFromSummary(&summary)
	if err := scoring.ValidateInputs(in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := scoring.CalculateHealth(in)

	respondJSON(w, http.StatusOK, HealthResponse{
		Score:         result.Score,
		Status:        result.Status,
		Contributions: result.Contributions,
	})
}

// LevelResponse is a bucketed score
type LevelResponse struct {
	Scale scoring.Scale       `json:"scale"`
	Score float64             `json:"score"`
	Level contracts.RiskLevel `json:"level"`
}

// GetLevel buckets a score into a risk level
// GET /api/score/level?scale=risk|diversification&score=4.2
func (h *ScoreHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	scale := scoring.Scale(q.Get("scale"))
	if scale == "" {
		scale = scoring.ScaleRisk
	}
	if scale != scoring.ScaleRisk && scale != scoring.ScaleDiversification {
		respondError(w, http.StatusBadRequest, "scale must be risk or diversification")
		return
	}

	score, err := strconv.ParseFloat(q.Get("score"), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		respondError(w, http.StatusBadRequest, "score must be a number")
		return
	}

	respondJSON(w, http.StatusOK, LevelResponse{
		Scale: scale,
		Score: score,
		Level: scoring.Level(scale, score),
	})
}

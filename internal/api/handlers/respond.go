package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrPortfolioNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

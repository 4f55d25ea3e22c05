package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
)

// DashboardService is the part of dashboard.Service the API needs
type DashboardService interface {
	GetSummary(ctx context.Context, portfolioID string) (*contracts.DashboardCardsSummary, error)
	Refresh(ctx context.Context, portfolioID string) (*contracts.DashboardCardsSummary, error)
}

// DashboardHandler handles dashboard API endpoints
// ⭐ SSOT: the only HTTP entry to dashboard summaries
type DashboardHandler struct {
	service DashboardService
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

// GetDashboard returns the dashboard summary of a portfolio
// GET /api/portfolios/{id}/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	summary, err := h.service.GetSummary(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithPortfolio(id).WithError(err).Error("Failed to get dashboard")
			respondError(w, status, "Failed to build dashboard")
			return
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// RefreshDashboard rebuilds and stores the dashboard summary
// POST /api/portfolios/{id}/dashboard/refresh
func (h *DashboardHandler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	summary, err := h.service.Refresh(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithPortfolio(id).WithError(err).Error("Failed to refresh dashboard")
			respondError(w, status, "Failed to refresh dashboard")
			return
		}
		respondError(w, status, err.Error())
		return
	}

	h.logger.WithPortfolio(id).Info("Dashboard refreshed via API")
	respondJSON(w, http.StatusOK, summary)
}

package handler

import (
	"context"
	"net/http"

	"github.com/iho/hucha/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	GetSummary(ctx context.Context, ownerID, month string) (*usecase.DashboardSummary, error)
}

// DashboardHandler serves the monthly summary.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Summary returns the acting user's summary for the month in the
// "month" query parameter (YYYY-MM, defaults to the current month).
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardUC.GetSummary(r.Context(), ownerID(r), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

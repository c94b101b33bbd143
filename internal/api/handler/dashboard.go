package handler

import (
	"net/http"

	"github.com/khairallah17/anomaly-tracker/internal/api/response"
	"github.com/khairallah17/anomaly-tracker/internal/core"
)

type Dashboard struct {
	svc *core.DashboardService
}

func NewDashboard(svc *core.DashboardService) *Dashboard {
	return &Dashboard{svc: svc}
}

// Stats godoc
//
//	@Summary		Dashboard statistics
//	@Description	Returns anomaly counts by status and criticality tier, open anomalies per service, and window utilization.
//	@Tags			Dashboard
//	@Security		ApiKeyAuth
//	@Success		200	{object}	core.DashboardStats
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/dashboard/stats [get]
func (h *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, stats)
}

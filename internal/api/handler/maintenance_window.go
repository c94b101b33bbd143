package handler

import (
	"net/http"

	"github.com/khairallah17/anomaly-tracker/internal/api/request"
	"github.com/khairallah17/anomaly-tracker/internal/api/response"
	"github.com/khairallah17/anomaly-tracker/internal/core"
	"github.com/khairallah17/anomaly-tracker/internal/model"
)

type MaintenanceWindow struct {
	svc *core.MaintenanceWindowService
}

func NewMaintenanceWindow(svc *core.MaintenanceWindowService) *MaintenanceWindow {
	return &MaintenanceWindow{svc: svc}
}

// List godoc
//
//	@Summary		List maintenance windows
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Success		200	{array}		model.MaintenanceWindow
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/maintenance-windows [get]
func (h *MaintenanceWindow) List(w http.ResponseWriter, r *http.Request) {
	windows, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, windows)
}

// Create godoc
//
//	@Summary		Create a maintenance window
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			body	body		request.CreateMaintenanceWindow	true	"Window details"
//	@Success		201		{object}	model.MaintenanceWindow
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/maintenance-windows [post]
func (h *MaintenanceWindow) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaintenanceWindow
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	window := &model.MaintenanceWindow{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.svc.Create(r.Context(), window); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, window)
}

// Get godoc
//
//	@Summary		Get a maintenance window
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"Window ID"
//	@Success		200	{object}	model.MaintenanceWindow
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id} [get]
func (h *MaintenanceWindow) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	window, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, window)
}

// Update godoc
//
//	@Summary		Update a maintenance window
//	@Description	Patches a window. Shrinking below the assigned anomalies' required hours is rejected.
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id		path		int								true	"Window ID"
//	@Param			body	body		request.UpdateMaintenanceWindow	true	"Fields to update"
//	@Success		200		{object}	model.MaintenanceWindow
//	@Failure		422		{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id} [patch]
func (h *MaintenanceWindow) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateMaintenanceWindow
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	window, err := h.svc.Update(r.Context(), id, core.UpdateWindowParams{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, window)
}

// Delete godoc
//
//	@Summary		Delete a maintenance window
//	@Description	Removes the window; assigned anomalies are unassigned, not deleted.
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id	path	int	true	"Window ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id} [delete]
func (h *MaintenanceWindow) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAnomalies godoc
//
//	@Summary		List a window's anomalies
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"Window ID"
//	@Success		200	{array}		model.Anomaly
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id}/anomalies [get]
func (h *MaintenanceWindow) ListAnomalies(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	anomalies, err := h.svc.ListAnomalies(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, anomalies)
}

// Assign godoc
//
//	@Summary		Assign anomalies to a window
//	@Description	Capacity-checks every anomaly before assigning; insufficient hours reject the whole batch.
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id		path	int						true	"Window ID"
//	@Param			body	body	request.WindowAnomalies	true	"Anomaly IDs"
//	@Success		204
//	@Failure		422	{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id}/anomalies [post]
func (h *MaintenanceWindow) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.WindowAnomalies
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Assign(r.Context(), id, req.AnomalyIDs); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unassign godoc
//
//	@Summary		Remove anomalies from a window
//	@Description	Idempotent; anomalies not in the window are skipped silently.
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id		path	int						true	"Window ID"
//	@Param			body	body	request.WindowAnomalies	true	"Anomaly IDs"
//	@Success		204
//	@Failure		400	{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id}/anomalies [delete]
func (h *MaintenanceWindow) Unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.WindowAnomalies
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Unassign(r.Context(), id, req.AnomalyIDs); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move godoc
//
//	@Summary		Move an anomaly to another window
//	@Description	Reassigns the named anomaly, verified to be in the source window, to the target window after a capacity check.
//	@Tags			Maintenance Windows
//	@Security		ApiKeyAuth
//	@Param			id			path		int					true	"Source window ID"
//	@Param			anomalyID	path		int					true	"Anomaly ID"
//	@Param			body		body		request.MoveAnomaly	true	"Target window"
//	@Success		200			{object}	rules.Capacity
//	@Failure		404			{object}	response.ErrorResponse
//	@Failure		422			{object}	response.ErrorResponse
//	@Router			/maintenance-windows/{id}/anomalies/{anomalyID}/move [post]
func (h *MaintenanceWindow) Move(w http.ResponseWriter, r *http.Request) {
	sourceID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	anomalyID, ok := pathID(w, r, "anomalyID")
	if !ok {
		return
	}

	var req request.MoveAnomaly
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	capacity, err := h.svc.Move(r.Context(), sourceID, anomalyID, req.TargetWindowID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, capacity)
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/khairallah17/anomaly-tracker/internal/api/request"
	"github.com/khairallah17/anomaly-tracker/internal/api/response"
	"github.com/khairallah17/anomaly-tracker/internal/core"
	"github.com/khairallah17/anomaly-tracker/internal/model"
)

type Anomaly struct {
	svc *core.AnomalyService
}

func NewAnomaly(svc *core.AnomalyService) *Anomaly {
	return &Anomaly{svc: svc}
}

// List godoc
//
//	@Summary		List anomalies
//	@Description	Returns a filtered, paginated list of anomalies.
//	@Tags			Anomalies
//	@Security		ApiKeyAuth
//	@Param			search					query		string	false	"Match description or equipment"
//	@Param			description				query		string	false	"Description substring"
//	@Param			equipment				query		string	false	"Equipment substring"
//	@Param			system					query		string	false	"System/unit substring"
//	@Param			service					query		string	false	"Service exact match, or 'all'"
//	@Param			status					query		string	false	"Status exact match, or 'all'"
//	@Param			criticality				query		string	false	"Criticality tier, or 'all'"
//	@Param			sys_shutdown_required	query		string	false	"true, false, or 'all'"
//	@Param			detection_date			query		string	false	"Calendar day (YYYY-MM-DD)"
//	@Param			page					query		int		false	"Page number"	default(1)
//	@Param			limit					query		int		false	"Page size"		default(50)
//	@Success		200						{object}	response.Page{data=[]model.Anomaly}
//	@Failure		500						{object}	response.ErrorResponse
//	@Router			/anomalies [get]
func (h *Anomaly) List(w http.ResponseWriter, r *http.Request) {
	filter := request.ParseAnomalyFilter(r)
	pg := request.ParsePagination(r)

	anomalies, total, err := h.svc.List(r.Context(), filter, pg.Page, pg.Limit)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WritePage(w, http.StatusOK, anomalies, pg.Page, pg.Limit, total)
}

// Create godoc
//
//	@Summary		Report an anomaly
//	@Description	Creates a new anomaly in the IN_PROGRESS state.
//	@Tags			Anomalies
//	@Security		ApiKeyAuth
//	@Param			body	body		request.CreateAnomaly	true	"Anomaly details"
//	@Success		201		{object}	model.Anomaly
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/anomalies [post]
func (h *Anomaly) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAnomaly
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	a := &model.Anomaly{
		Description:            req.Description,
		Equipment:              req.Equipment,
		EquipmentNumber:        req.EquipmentNumber,
		System:                 req.System,
		Unit:                   req.Unit,
		Service:                req.Service,
		CurrentSystemStatus:    req.CurrentSystemStatus,
		EstimatedTime:          req.EstimatedTime,
		SysShutdownRequired:    req.SysShutdownRequired,
		PredictedDisponibility: req.PredictedDisponibility,
		PredictedIntegrity:     req.PredictedIntegrity,
		PredictedProcessSafety: req.PredictedProcessSafety,
	}
	if req.DetectionDate != nil {
		a.DetectionDate = *req.DetectionDate
	}

	if err := h.svc.Create(r.Context(), a); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, a)
}

// Get godoc
//
//	@Summary		Get an anomaly
//	@Tags			Anomalies
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"Anomaly ID"
//	@Success		200	{object}	model.Anomaly
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/anomalies/{id} [get]
func (h *Anomaly) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, a)
}

// Update godoc
//
//	@Summary		Update an anomaly
//	@Description	Patches mutable fields. Status changes are validated against the forward-only lifecycle.
//	@Tags			Anomalies
//	@Security		ApiKeyAuth
//	@Param			id		path		int						true	"Anomaly ID"
//	@Param			body	body		request.UpdateAnomaly	true	"Fields to update"
//	@Success		200		{object}	model.Anomaly
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/anomalies/{id} [patch]
func (h *Anomaly) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateAnomaly
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := core.UpdateAnomalyParams{
		Description:         req.Description,
		Equipment:           req.Equipment,
		EquipmentNumber:     req.EquipmentNumber,
		DetectionDate:       req.DetectionDate,
		System:              req.System,
		Unit:                req.Unit,
		Service:             req.Service,
		CurrentSystemStatus: req.CurrentSystemStatus,
		EstimatedTime:       req.EstimatedTime,
		SysShutdownRequired: req.SysShutdownRequired,
		UserFeedback:        req.UserFeedback,
		FinalDisponibility:  req.FinalDisponibility,
		FinalIntegrity:      req.FinalIntegrity,
		FinalProcessSafety:  req.FinalProcessSafety,
	}
	if req.Status != nil {
		canonical, ok := model.NormalizeStatus(*req.Status)
		if !ok {
			response.WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", *req.Status))
			return
		}
		params.Status = &canonical
	}

	a, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, a)
}

// Close godoc
//
//	@Summary		Close an anomaly
//	@Description	Transitions the anomaly to CLOSED and records the REX summary.
//	@Tags			Anomalies
//	@Security		ApiKeyAuth
//	@Param			id		path		int						true	"Anomaly ID"
//	@Param			body	body		request.CloseAnomaly	true	"REX details"
//	@Success		200		{object}	model.Anomaly
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/close [post]
func (h *Anomaly) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CloseAnomaly
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.svc.Close(r.Context(), id, req.REXSummary)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, a)
}

// ListActionPlan godoc
//
//	@Summary		List an anomaly's action plan
//	@Tags			Action Plan
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"Anomaly ID"
//	@Success		200	{array}		model.ActionPlanItem
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/action-plan [get]
func (h *Anomaly) ListActionPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.svc.ListActionPlan(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, items)
}

// AddActionPlanItem godoc
//
//	@Summary		Add an action plan step
//	@Tags			Action Plan
//	@Security		ApiKeyAuth
//	@Param			id		path		int							true	"Anomaly ID"
//	@Param			body	body		request.AddActionPlanItem	true	"Step details"
//	@Success		201		{object}	model.ActionPlanItem
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/action-plan [post]
func (h *Anomaly) AddActionPlanItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.AddActionPlanItem
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &model.ActionPlanItem{
		AnomalyID:   id,
		Action:      req.Action,
		Responsible: req.Responsible,
		Resources:   req.Resources,
		Status:      req.Status,
	}
	if err := h.svc.AddActionPlanItem(r.Context(), item); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, item)
}

// UpdateActionPlanItem godoc
//
//	@Summary		Update an action plan step
//	@Tags			Action Plan
//	@Security		ApiKeyAuth
//	@Param			itemID	path		int								true	"Item ID"
//	@Param			body	body		request.UpdateActionPlanItem	true	"Fields to update"
//	@Success		200		{object}	model.ActionPlanItem
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/action-plan/{itemID} [patch]
func (h *Anomaly) UpdateActionPlanItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	var req request.UpdateActionPlanItem
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.UpdateActionPlanItem(r.Context(), itemID, core.UpdateActionPlanItemParams{
		Action:      req.Action,
		Responsible: req.Responsible,
		Resources:   req.Resources,
		Status:      req.Status,
	})
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, item)
}

// DeleteActionPlanItem godoc
//
//	@Summary		Delete an action plan step
//	@Tags			Action Plan
//	@Security		ApiKeyAuth
//	@Param			itemID	path	int	true	"Item ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/action-plan/{itemID} [delete]
func (h *Anomaly) DeleteActionPlanItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.svc.DeleteActionPlanItem(r.Context(), itemID); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

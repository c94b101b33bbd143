package handler

import (
	"net/http"

	"github.com/khairallah17/anomaly-tracker/internal/api/request"
	"github.com/khairallah17/anomaly-tracker/internal/api/response"
	"github.com/khairallah17/anomaly-tracker/internal/core"
	"github.com/khairallah17/anomaly-tracker/internal/model"
)

type Comment struct {
	svc *core.CommentService
}

func NewComment(svc *core.CommentService) *Comment {
	return &Comment{svc: svc}
}

// Create godoc
//
//	@Summary		Comment on an anomaly
//	@Tags			Comments
//	@Security		ApiKeyAuth
//	@Param			id		path		int						true	"Anomaly ID"
//	@Param			body	body		request.CreateComment	true	"Comment details"
//	@Success		201		{object}	model.Comment
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/comments [post]
func (h *Comment) Create(w http.ResponseWriter, r *http.Request) {
	anomalyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CreateComment
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := &model.Comment{
		AnomalyID: anomalyID,
		Author:    req.Author,
		Body:      req.Body,
	}
	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

// CreateFlat godoc
//
//	@Summary		Comment on an anomaly (flat form)
//	@Description	Same as the nested route; the anomaly id travels in the body.
//	@Tags			Comments
//	@Security		ApiKeyAuth
//	@Param			body	body		request.CreateCommentFlat	true	"Comment details"
//	@Success		201		{object}	model.Comment
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/comments [post]
func (h *Comment) CreateFlat(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCommentFlat
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := &model.Comment{
		AnomalyID: req.AnomalyID,
		Author:    req.Author,
		Body:      req.Body,
	}
	if err := h.svc.Create(r.Context(), c); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, c)
}

// Get godoc
//
//	@Summary		Get a comment
//	@Tags			Comments
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"Comment ID"
//	@Success		200	{object}	model.Comment
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/comments/{id} [get]
func (h *Comment) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

// ListByAnomaly godoc
//
//	@Summary		List an anomaly's comments
//	@Tags			Comments
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"Anomaly ID"
//	@Success		200	{array}		model.Comment
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/anomalies/{id}/comments [get]
func (h *Comment) ListByAnomaly(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	comments, err := h.svc.ListByAnomaly(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, comments)
}

// Update godoc
//
//	@Summary		Update a comment
//	@Tags			Comments
//	@Security		ApiKeyAuth
//	@Param			id		path		int						true	"Comment ID"
//	@Param			body	body		request.UpdateComment	true	"New body"
//	@Success		200		{object}	model.Comment
//	@Failure		404		{object}	response.ErrorResponse
//	@Router			/comments/{id} [patch]
func (h *Comment) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateComment
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Update(r.Context(), id, req.Body)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, c)
}

// Delete godoc
//
//	@Summary		Delete a comment
//	@Tags			Comments
//	@Security		ApiKeyAuth
//	@Param			id	path	int	true	"Comment ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/comments/{id} [delete]
func (h *Comment) Delete(w http.ResponseWriter, r *http.Request) {
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

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/khairallah17/anomaly-tracker/internal/api/request"
	"github.com/khairallah17/anomaly-tracker/internal/api/response"
	"github.com/khairallah17/anomaly-tracker/internal/core"
	"github.com/khairallah17/anomaly-tracker/internal/model"
)

type APIKey struct {
	svc *core.APIKeyService
}

func NewAPIKey(svc *core.APIKeyService) *APIKey {
	return &APIKey{svc: svc}
}

// createAPIKeyResponse includes the raw key, returned exactly once.
type createAPIKeyResponse struct {
	*model.APIKey
	Key string `json:"key"`
}

// List godoc
//
//	@Summary		List API keys
//	@Tags			API Keys
//	@Security		ApiKeyAuth
//	@Success		200	{array}		model.APIKey
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/api-keys [get]
func (h *APIKey) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, keys)
}

// Create godoc
//
//	@Summary		Create an API key
//	@Description	Returns the raw key once; only the hash is stored.
//	@Tags			API Keys
//	@Security		ApiKeyAuth
//	@Param			body	body		request.CreateAPIKey	true	"Key name"
//	@Success		201		{object}	handler.createAPIKeyResponse
//	@Failure		400		{object}	response.ErrorResponse
//	@Router			/api-keys [post]
func (h *APIKey) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, rawKey, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, createAPIKeyResponse{APIKey: key, Key: rawKey})
}

// Get godoc
//
//	@Summary		Get an API key
//	@Tags			API Keys
//	@Security		ApiKeyAuth
//	@Param			id	path		string	true	"Key ID"
//	@Success		200	{object}	model.APIKey
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/api-keys/{id} [get]
func (h *APIKey) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	key, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, key)
}

// Revoke godoc
//
//	@Summary		Revoke an API key
//	@Tags			API Keys
//	@Security		ApiKeyAuth
//	@Param			id	path	string	true	"Key ID"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/api-keys/{id} [delete]
func (h *APIKey) Revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Revoke(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

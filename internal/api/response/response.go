package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/khairallah17/anomaly-tracker/internal/core"
	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// ErrorResponse is the wire shape of error payloads.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteServiceError maps the service error taxonomy onto HTTP statuses:
// missing records are 404, rejected input 400, illegal transitions 409,
// capacity failures 422 with the structured shortfall, everything else 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	var transitionErr *rules.TransitionError
	var capacityErr *rules.CapacityError

	switch {
	case errors.Is(err, core.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &transitionErr):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &capacityErr):
		WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    err.Error(),
			"capacity": capacityErr.Capacity,
		})
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// Page wraps a list with page-based pagination metadata.
type Page struct {
	Data       any  `json:"data"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// WritePage writes a paginated JSON response.
func WritePage(w http.ResponseWriter, status int, data any, page, limit, total int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	WriteJSON(w, status, Page{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	})
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khairallah17/anomaly-tracker/internal/core"
	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", core.ErrNotFound, http.StatusNotFound},
		{"message match is not enough", errors.New("anomaly 4: " + core.ErrNotFound.Error()), http.StatusInternalServerError},
		{"validation", &core.ValidationError{Msg: "bad input"}, http.StatusBadRequest},
		{"transition", &rules.TransitionError{From: "CLOSED", To: "TREATED"}, http.StatusConflict},
		{"capacity", &rules.CapacityError{Capacity: rules.Capacity{RequiredHours: 6, AvailableHours: 4, Shortfall: 2}}, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)
			assert.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteServiceError_CapacityPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, &rules.CapacityError{Capacity: rules.Capacity{
		RequiredHours:  6,
		AvailableHours: 4,
		Shortfall:      2,
	}})

	var body struct {
		Error    string         `json:"error"`
		Capacity rules.Capacity `json:"capacity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, 6, body.Capacity.RequiredHours)
	assert.Equal(t, 4, body.Capacity.AvailableHours)
	assert.Equal(t, 2, body.Capacity.Shortfall)
}

func TestWritePage_Metadata(t *testing.T) {
	tests := []struct {
		page, limit, total int
		totalPages         int
		hasNext, hasPrev   bool
	}{
		{1, 50, 0, 0, false, false},
		{1, 50, 50, 1, false, false},
		{1, 50, 51, 2, true, false},
		{2, 50, 51, 2, false, true},
		{3, 10, 95, 10, true, true},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WritePage(rec, http.StatusOK, []int{}, tt.page, tt.limit, tt.total)

		var p Page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, tt.page, p.Page)
		assert.Equal(t, tt.limit, p.Limit)
		assert.Equal(t, tt.total, p.Total)
		assert.Equal(t, tt.totalPages, p.TotalPages, "page %d limit %d total %d", tt.page, tt.limit, tt.total)
		assert.Equal(t, tt.hasNext, p.HasNext)
		assert.Equal(t, tt.hasPrev, p.HasPrev)
	}
}

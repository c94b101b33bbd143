package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newWindowHandler() *MaintenanceWindow {
	return NewMaintenanceWindow(nil)
}

// --- Create ---

func TestWindowCreate_InvalidJSON(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/maintenance-windows", "not json")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestWindowCreate_MissingTitle(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/maintenance-windows", map[string]any{
		"startDate": "2025-06-01T08:00:00Z",
		"endDate":   "2025-06-03T08:00:00Z",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

// --- Assign / Unassign ---

func TestWindowAssign_EmptyAnomalyIDs(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/maintenance-windows/11/anomalies", map[string]any{
		"anomalyIds": []int64{},
	})
	r = withChiURLParam(r, "id", "11")

	h.Assign(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWindowAssign_NonPositiveAnomalyID(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/maintenance-windows/11/anomalies", map[string]any{
		"anomalyIds": []int64{4, 0},
	})
	r = withChiURLParam(r, "id", "11")

	h.Assign(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWindowAssign_InvalidWindowID(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/maintenance-windows/abc/anomalies", map[string]any{
		"anomalyIds": []int64{4},
	})
	r = withChiURLParam(r, "id", "abc")

	h.Assign(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid id")
}

func TestWindowUnassign_InvalidJSON(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodDelete, "/maintenance-windows/11/anomalies", "{")
	r = withChiURLParam(r, "id", "11")

	h.Unassign(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Move ---

func TestWindowMove_MissingTarget(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/maintenance-windows/11/anomalies/4/move", map[string]any{})
	r = withChiURLParams(r, map[string]string{"id": "11", "anomalyID": "4"})

	h.Move(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestWindowMove_InvalidAnomalyID(t *testing.T) {
	h := newWindowHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/maintenance-windows/11/anomalies/abc/move", map[string]any{
		"targetWindowId": 12,
	})
	r = withChiURLParams(r, map[string]string{"id": "11", "anomalyID": "abc"})

	h.Move(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid anomalyID")
}

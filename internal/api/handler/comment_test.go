package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCommentHandler() *Comment {
	return NewComment(nil)
}

func TestCommentCreate_InvalidAnomalyID(t *testing.T) {
	h := newCommentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/anomalies/abc/comments", map[string]any{
		"author": "n.ikken",
		"body":   "checked on site",
	})
	r = withChiURLParam(r, "id", "abc")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid id")
}

func TestCommentCreate_MissingBody(t *testing.T) {
	h := newCommentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/anomalies/1/comments", map[string]any{
		"author": "n.ikken",
	})
	r = withChiURLParam(r, "id", "1")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestCommentCreateFlat_MissingAnomalyID(t *testing.T) {
	h := newCommentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/comments", map[string]any{
		"author": "n.ikken",
		"body":   "checked on site",
	})

	h.CreateFlat(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestCommentUpdate_MissingBody(t *testing.T) {
	h := newCommentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPatch, "/comments/9", map[string]any{})
	r = withChiURLParam(r, "id", "9")

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentDelete_InvalidID(t *testing.T) {
	h := newCommentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodDelete, "/comments/abc", nil)
	r = withChiURLParam(r, "id", "abc")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

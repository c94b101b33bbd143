package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khairallah17/anomaly-tracker/internal/api/request"
	"github.com/khairallah17/anomaly-tracker/internal/api/response"
)

// AuditLog represents an audit log entry.
type AuditLog struct {
	ID           int64           `json:"id"`
	APIKeyID     *string         `json:"apiKeyId,omitempty"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	ResourceType *string         `json:"resourceType,omitempty"`
	ResourceID   *string         `json:"resourceId,omitempty"`
	StatusCode   int             `json:"statusCode"`
	RequestBody  json.RawMessage `json:"requestBody,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Audit struct {
	pool *pgxpool.Pool
}

func NewAudit(pool *pgxpool.Pool) *Audit {
	return &Audit{pool: pool}
}

// List godoc
//
//	@Summary		List audit logs
//	@Description	Returns a paginated list of audit log entries. Supports filtering by resource_type, HTTP method (action), and date range (date_from/date_to). Each entry includes the acting API key, HTTP method, path, resource affected, status code, request body, and timestamp.
//	@Tags			Audit Logs
//	@Security		ApiKeyAuth
//	@Param			page			query		int		false	"Page number (default 1)"
//	@Param			limit			query		int		false	"Page size (default 50)"
//	@Param			resource_type	query		string	false	"Filter by resource type"
//	@Param			action			query		string	false	"Filter by HTTP method"
//	@Param			date_from		query		string	false	"Filter by start date"
//	@Param			date_to			query		string	false	"Filter by end date"
//	@Success		200				{object}	response.Page{data=[]handler.AuditLog}
//	@Failure		500				{object}	response.ErrorResponse
//	@Router			/audit-logs [get]
func (h *Audit) List(w http.ResponseWriter, r *http.Request) {
	p := request.ParsePagination(r)

	resourceType := r.URL.Query().Get("resource_type")
	action := r.URL.Query().Get("action")
	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")

	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if resourceType != "" {
		where += fmt.Sprintf(` AND resource_type = $%d`, argIdx)
		args = append(args, resourceType)
		argIdx++
	}
	if action != "" {
		where += fmt.Sprintf(` AND method = $%d`, argIdx)
		args = append(args, action)
		argIdx++
	}
	if dateFrom != "" {
		where += fmt.Sprintf(` AND created_at >= $%d`, argIdx)
		args = append(args, dateFrom)
		argIdx++
	}
	if dateTo != "" {
		where += fmt.Sprintf(` AND created_at <= $%d`, argIdx)
		args = append(args, dateTo)
		argIdx++
	}

	var total int
	if err := h.pool.QueryRow(r.Context(), `SELECT count(*) FROM audit_logs`+where, args...).Scan(&total); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := `SELECT id, api_key_id, method, path, resource_type, resource_id, status_code, request_body, created_at
              FROM audit_logs` + where
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	logs := []AuditLog{}
	for rows.Next() {
		var l AuditLog
		if err := rows.Scan(&l.ID, &l.APIKeyID, &l.Method, &l.Path, &l.ResourceType, &l.ResourceID, &l.StatusCode, &l.RequestBody, &l.CreatedAt); err != nil {
			response.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logs = append(logs, l)
	}

	response.WritePage(w, http.StatusOK, logs, p.Page, p.Limit, total)
}

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/khairallah17/anomaly-tracker/internal/model"
	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

const anomalyColumns = `id, description, equipment, equipment_number, detection_date, status,
	system, unit, service, current_system_status, estimated_time, sys_shutdown_required,
	user_feedback, predicted_disponibility, predicted_integrity, predicted_process_safety,
	final_disponibility, final_integrity, final_process_safety, criticality,
	maintenance_window_id, rex_summary, treated_at, closed_at, created_at, updated_at`

type AnomalyService struct {
	db DB
}

func NewAnomalyService(db DB) *AnomalyService {
	return &AnomalyService{db: db}
}

func scanAnomaly(row interface{ Scan(dest ...any) error }, a *model.Anomaly) error {
	return row.Scan(&a.ID, &a.Description, &a.Equipment, &a.EquipmentNumber, &a.DetectionDate,
		&a.Status, &a.System, &a.Unit, &a.Service, &a.CurrentSystemStatus, &a.EstimatedTime,
		&a.SysShutdownRequired, &a.UserFeedback, &a.PredictedDisponibility, &a.PredictedIntegrity,
		&a.PredictedProcessSafety, &a.FinalDisponibility, &a.FinalIntegrity, &a.FinalProcessSafety,
		&a.Criticality, &a.MaintenanceWindowID, &a.REXSummary, &a.TreatedAt, &a.ClosedAt,
		&a.CreatedAt, &a.UpdatedAt)
}

// Create inserts a new anomaly. The status starts at IN_PROGRESS and the
// persisted criticality is derived from the severity sub-scores.
func (s *AnomalyService) Create(ctx context.Context, a *model.Anomaly) error {
	if a.EstimatedTime != nil && *a.EstimatedTime < 0 {
		return validationErrorf("estimated time must not be negative")
	}

	now := time.Now()
	a.Status = model.StatusInProgress
	if a.DetectionDate.IsZero() {
		a.DetectionDate = now
	}
	a.Criticality = rules.CombinedScore(*a)
	a.CreatedAt = now
	a.UpdatedAt = now

	err := s.db.QueryRow(ctx,
		`INSERT INTO anomalies (description, equipment, equipment_number, detection_date, status,
		        system, unit, service, current_system_status, estimated_time, sys_shutdown_required,
		        user_feedback, predicted_disponibility, predicted_integrity, predicted_process_safety,
		        final_disponibility, final_integrity, final_process_safety, criticality,
		        created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		 RETURNING id`,
		a.Description, a.Equipment, a.EquipmentNumber, a.DetectionDate, a.Status,
		a.System, a.Unit, a.Service, a.CurrentSystemStatus, a.EstimatedTime, a.SysShutdownRequired,
		a.UserFeedback, a.PredictedDisponibility, a.PredictedIntegrity, a.PredictedProcessSafety,
		a.FinalDisponibility, a.FinalIntegrity, a.FinalProcessSafety, a.Criticality,
		a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("create anomaly: %w", err)
	}
	return nil
}

// GetByID returns an anomaly by ID.
func (s *AnomalyService) GetByID(ctx context.Context, id int64) (*model.Anomaly, error) {
	var a model.Anomaly
	err := scanAnomaly(s.db.QueryRow(ctx,
		`SELECT `+anomalyColumns+` FROM anomalies WHERE id = $1`, id), &a)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("anomaly", id)
		}
		return nil, fmt.Errorf("get anomaly: %w", err)
	}
	return &a, nil
}

// List returns a page of anomalies. Index-friendly predicates (status,
// service) narrow the query; the full predicate set is then applied by the
// filter engine before paginating, so the page totals reflect every active
// filter.
func (s *AnomalyService) List(ctx context.Context, filter rules.AnomalyFilter, page, limit int) ([]model.Anomaly, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `SELECT ` + anomalyColumns + ` FROM anomalies`
	var conditions []string
	var args []any
	argN := 1

	if filter.Status != "" && filter.Status != rules.FilterAll {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argN))
		args = append(args, filter.Status)
		argN++
	}
	if filter.Service != "" && filter.Service != rules.FilterAll {
		conditions = append(conditions, fmt.Sprintf("service = $%d", argN))
		args = append(args, filter.Service)
		argN++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY detection_date DESC, id DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list anomalies: %w", err)
	}
	defer rows.Close()

	var anomalies []model.Anomaly
	for rows.Next() {
		var a model.Anomaly
		if err := scanAnomaly(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("scan anomaly: %w", err)
		}
		anomalies = append(anomalies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate anomalies: %w", err)
	}

	filtered := rules.FilterAnomalies(anomalies, filter)
	total := len(filtered)

	start := (page - 1) * limit
	if start >= total {
		return []model.Anomaly{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

// UpdateAnomalyParams holds the mutable fields of a PATCH. Nil means
// "leave unchanged". Status must already be canonical.
type UpdateAnomalyParams struct {
	Description         *string
	Equipment           *string
	EquipmentNumber     *string
	DetectionDate       *time.Time
	System              *string
	Unit                *string
	Service             *string
	CurrentSystemStatus *string
	EstimatedTime       *int
	SysShutdownRequired *bool
	UserFeedback        *bool
	FinalDisponibility  *float64
	FinalIntegrity      *float64
	FinalProcessSafety  *float64
	Status              *string
}

// Update patches an anomaly. Status changes run through the lifecycle
// engine; severity changes recompute the persisted criticality. Nothing is
// written unless every rule passes.
func (s *AnomalyService) Update(ctx context.Context, id int64, p UpdateAnomalyParams) (*model.Anomaly, error) {
	if p.EstimatedTime != nil && *p.EstimatedTime < 0 {
		return nil, validationErrorf("estimated time must not be negative")
	}

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Equipment != nil {
		a.Equipment = *p.Equipment
	}
	if p.EquipmentNumber != nil {
		a.EquipmentNumber = *p.EquipmentNumber
	}
	if p.DetectionDate != nil {
		a.DetectionDate = *p.DetectionDate
	}
	if p.System != nil {
		a.System = *p.System
	}
	if p.Unit != nil {
		a.Unit = *p.Unit
	}
	if p.Service != nil {
		a.Service = *p.Service
	}
	if p.CurrentSystemStatus != nil {
		a.CurrentSystemStatus = *p.CurrentSystemStatus
	}
	if p.EstimatedTime != nil {
		a.EstimatedTime = p.EstimatedTime
	}
	if p.SysShutdownRequired != nil {
		a.SysShutdownRequired = *p.SysShutdownRequired
	}
	if p.UserFeedback != nil {
		a.UserFeedback = *p.UserFeedback
	}
	if p.FinalDisponibility != nil {
		a.FinalDisponibility = p.FinalDisponibility
	}
	if p.FinalIntegrity != nil {
		a.FinalIntegrity = p.FinalIntegrity
	}
	if p.FinalProcessSafety != nil {
		a.FinalProcessSafety = p.FinalProcessSafety
	}

	if p.Status != nil {
		if err := rules.Transition(a, *p.Status, time.Now()); err != nil {
			return nil, err
		}
	}

	a.Criticality = rules.CombinedScore(*a)
	a.UpdatedAt = time.Now()

	if err := s.persist(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Close transitions an anomaly to CLOSED and records the REX summary.
func (s *AnomalyService) Close(ctx context.Context, id int64, rexSummary string) (*model.Anomaly, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rules.Transition(a, model.StatusClosed, time.Now()); err != nil {
		return nil, err
	}
	if rexSummary != "" {
		a.REXSummary = &rexSummary
	}
	a.UpdatedAt = time.Now()

	if err := s.persist(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnomalyService) persist(ctx context.Context, a *model.Anomaly) error {
	_, err := s.db.Exec(ctx,
		`UPDATE anomalies SET description = $1, equipment = $2, equipment_number = $3,
		        detection_date = $4, status = $5, system = $6, unit = $7, service = $8,
		        current_system_status = $9, estimated_time = $10, sys_shutdown_required = $11,
		        user_feedback = $12, final_disponibility = $13, final_integrity = $14,
		        final_process_safety = $15, criticality = $16, rex_summary = $17,
		        treated_at = $18, closed_at = $19, updated_at = $20
		 WHERE id = $21`,
		a.Description, a.Equipment, a.EquipmentNumber, a.DetectionDate, a.Status,
		a.System, a.Unit, a.Service, a.CurrentSystemStatus, a.EstimatedTime,
		a.SysShutdownRequired, a.UserFeedback, a.FinalDisponibility, a.FinalIntegrity,
		a.FinalProcessSafety, a.Criticality, a.REXSummary, a.TreatedAt, a.ClosedAt,
		a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update anomaly: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

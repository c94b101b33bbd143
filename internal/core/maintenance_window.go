package core

import (
	"context"
	"fmt"
	"time"

	"github.com/khairallah17/anomaly-tracker/internal/model"
	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

type MaintenanceWindowService struct {
	db        DB
	anomalies *AnomalyService
}

func NewMaintenanceWindowService(db DB, anomalies *AnomalyService) *MaintenanceWindowService {
	return &MaintenanceWindowService{db: db, anomalies: anomalies}
}

// Create inserts a new maintenance window after validating its bounds.
func (s *MaintenanceWindowService) Create(ctx context.Context, w *model.MaintenanceWindow) error {
	if w.EndDate.Before(w.StartDate) {
		return validationErrorf("window end date precedes start date")
	}

	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	err := s.db.QueryRow(ctx,
		`INSERT INTO maintenance_windows (title, start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		w.Title, w.StartDate, w.EndDate, w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("create maintenance window: %w", err)
	}
	return nil
}

// GetByID returns a maintenance window by ID.
func (s *MaintenanceWindowService) GetByID(ctx context.Context, id int64) (*model.MaintenanceWindow, error) {
	var w model.MaintenanceWindow
	err := s.db.QueryRow(ctx,
		`SELECT id, title, start_date, end_date, created_at, updated_at
		 FROM maintenance_windows WHERE id = $1`, id,
	).Scan(&w.ID, &w.Title, &w.StartDate, &w.EndDate, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("maintenance window", id)
		}
		return nil, fmt.Errorf("get maintenance window: %w", err)
	}
	return &w, nil
}

// List returns all maintenance windows ordered by start date.
func (s *MaintenanceWindowService) List(ctx context.Context) ([]model.MaintenanceWindow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, start_date, end_date, created_at, updated_at
		 FROM maintenance_windows ORDER BY start_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list maintenance windows: %w", err)
	}
	defer rows.Close()

	var windows []model.MaintenanceWindow
	for rows.Next() {
		var w model.MaintenanceWindow
		if err := rows.Scan(&w.ID, &w.Title, &w.StartDate, &w.EndDate, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan maintenance window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// UpdateWindowParams holds the mutable fields of a window.
type UpdateWindowParams struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Update patches a window. Shrinking the window is rejected when the
// assigned anomalies would no longer fit the new capacity.
func (s *MaintenanceWindowService) Update(ctx context.Context, id int64, p UpdateWindowParams) (*model.MaintenanceWindow, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.StartDate != nil {
		w.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		w.EndDate = *p.EndDate
	}
	if w.EndDate.Before(w.StartDate) {
		return nil, validationErrorf("window end date precedes start date")
	}

	booked, err := s.bookedHours(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if c := rules.CheckLoad(*w, booked); !c.Allowed {
		return nil, &rules.CapacityError{Capacity: c}
	}

	w.UpdatedAt = time.Now()
	_, err = s.db.Exec(ctx,
		`UPDATE maintenance_windows SET title = $1, start_date = $2, end_date = $3, updated_at = $4
		 WHERE id = $5`,
		w.Title, w.StartDate, w.EndDate, w.UpdatedAt, w.ID)
	if err != nil {
		return nil, fmt.Errorf("update maintenance window: %w", err)
	}
	return w, nil
}

// Delete removes a window. Assigned anomalies are unassigned first, never
// deleted with it.
func (s *MaintenanceWindowService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx,
		`UPDATE anomalies SET maintenance_window_id = NULL, updated_at = $1 WHERE maintenance_window_id = $2`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("unassign window anomalies: %w", err)
	}

	_, err = s.db.Exec(ctx, `DELETE FROM maintenance_windows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete maintenance window: %w", err)
	}
	return nil
}

// ListAnomalies returns the anomalies currently assigned to a window.
func (s *MaintenanceWindowService) ListAnomalies(ctx context.Context, windowID int64) ([]model.Anomaly, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+anomalyColumns+` FROM anomalies WHERE maintenance_window_id = $1 ORDER BY detection_date ASC, id ASC`,
		windowID)
	if err != nil {
		return nil, fmt.Errorf("list window anomalies: %w", err)
	}
	defer rows.Close()

	var anomalies []model.Anomaly
	for rows.Next() {
		var a model.Anomaly
		if err := scanAnomaly(rows, &a); err != nil {
			return nil, fmt.Errorf("scan window anomaly: %w", err)
		}
		anomalies = append(anomalies, a)
	}
	return anomalies, rows.Err()
}

// bookedHours sums the estimated repair time of the anomalies already
// assigned to a window, excluding the given anomaly ids so a re-assignment
// does not count its own hours twice.
func (s *MaintenanceWindowService) bookedHours(ctx context.Context, windowID int64, excluding []int64) (int, error) {
	if excluding == nil {
		excluding = []int64{}
	}
	var booked int
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(estimated_time), 0) FROM anomalies
		 WHERE maintenance_window_id = $1 AND NOT (id = ANY($2))`,
		windowID, excluding).Scan(&booked)
	if err != nil {
		return 0, fmt.Errorf("sum booked hours: %w", err)
	}
	return booked, nil
}

// Assign places anomalies into a window. Every anomaly is validated against
// the hours the window has left, counting both the load already assigned
// and the earlier anomalies of the same batch, before the first write, so
// a failed check mutates nothing. Shutdown-class anomalies force a fresh
// window read immediately before committing, since concurrent edits can
// invalidate the capacity computed at the start of the operation.
func (s *MaintenanceWindowService) Assign(ctx context.Context, windowID int64, anomalyIDs []int64) error {
	if len(anomalyIDs) == 0 {
		return validationErrorf("no anomaly ids given")
	}

	checkBatch := func() (needsRecheck bool, err error) {
		w, err := s.GetByID(ctx, windowID)
		if err != nil {
			return false, err
		}
		booked, err := s.bookedHours(ctx, windowID, anomalyIDs)
		if err != nil {
			return false, err
		}
		for _, id := range anomalyIDs {
			a, err := s.anomalies.GetByID(ctx, id)
			if err != nil {
				return false, err
			}
			c := rules.CanAssign(*a, *w, booked)
			if !c.Allowed {
				return false, &rules.CapacityError{Capacity: c}
			}
			booked += c.RequiredHours
			if a.SysShutdownRequired {
				needsRecheck = true
			}
		}
		return needsRecheck, nil
	}

	needsRecheck, err := checkBatch()
	if err != nil {
		return err
	}
	if needsRecheck {
		if _, err := checkBatch(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(ctx,
		`UPDATE anomalies SET maintenance_window_id = $1, updated_at = $2 WHERE id = ANY($3)`,
		windowID, time.Now(), anomalyIDs)
	if err != nil {
		return fmt.Errorf("assign anomalies: %w", err)
	}
	return nil
}

// Unassign removes anomalies from a window. Removing an anomaly that is
// not in the window is a no-op, so repeated calls are idempotent.
func (s *MaintenanceWindowService) Unassign(ctx context.Context, windowID int64, anomalyIDs []int64) error {
	if len(anomalyIDs) == 0 {
		return validationErrorf("no anomaly ids given")
	}

	_, err := s.db.Exec(ctx,
		`UPDATE anomalies SET maintenance_window_id = NULL, updated_at = $1
		 WHERE id = ANY($2) AND maintenance_window_id = $3`,
		time.Now(), anomalyIDs, windowID)
	if err != nil {
		return fmt.Errorf("unassign anomalies: %w", err)
	}
	return nil
}

// Move reassigns a single anomaly from one window to another. The moved
// anomaly is named explicitly rather than inferred from collection
// differences, and its current membership in the source window is verified
// rather than trusted.
func (s *MaintenanceWindowService) Move(ctx context.Context, sourceWindowID, anomalyID, targetWindowID int64) (rules.Capacity, error) {
	a, err := s.anomalies.GetByID(ctx, anomalyID)
	if err != nil {
		return rules.Capacity{}, err
	}
	if a.MaintenanceWindowID == nil || *a.MaintenanceWindowID != sourceWindowID {
		return rules.Capacity{}, fmt.Errorf("anomaly %d in window %d: %w", anomalyID, sourceWindowID, ErrNotFound)
	}

	checkTarget := func() (rules.Capacity, error) {
		target, err := s.GetByID(ctx, targetWindowID)
		if err != nil {
			return rules.Capacity{}, err
		}
		booked, err := s.bookedHours(ctx, targetWindowID, []int64{anomalyID})
		if err != nil {
			return rules.Capacity{}, err
		}
		c := rules.CanAssign(*a, *target, booked)
		if !c.Allowed {
			return c, &rules.CapacityError{Capacity: c}
		}
		return c, nil
	}

	c, err := checkTarget()
	if err != nil {
		return c, err
	}
	if a.SysShutdownRequired {
		if c, err = checkTarget(); err != nil {
			return c, err
		}
	}

	_, err = s.db.Exec(ctx,
		`UPDATE anomalies SET maintenance_window_id = $1, updated_at = $2 WHERE id = $3`,
		targetWindowID, time.Now(), anomalyID)
	if err != nil {
		return c, fmt.Errorf("move anomaly: %w", err)
	}
	return c, nil
}

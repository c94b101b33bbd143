package core

import (
	"context"
	"fmt"
	"time"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

// AddActionPlanItem appends a remediation step to an anomaly's plan. The
// position defaults to the end of the current plan.
func (s *AnomalyService) AddActionPlanItem(ctx context.Context, item *model.ActionPlanItem) error {
	if _, err := s.GetByID(ctx, item.AnomalyID); err != nil {
		return err
	}

	now := time.Now()
	if item.Status == "" {
		item.Status = model.ActionPending
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	err := s.db.QueryRow(ctx,
		`INSERT INTO action_plan_items (anomaly_id, position, action, responsible, resources, status, created_at, updated_at)
		 VALUES ($1, COALESCE((SELECT MAX(position) + 1 FROM action_plan_items WHERE anomaly_id = $1), 1), $2, $3, $4, $5, $6, $7)
		 RETURNING id, position`,
		item.AnomalyID, item.Action, item.Responsible, item.Resources, item.Status,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID, &item.Position)
	if err != nil {
		return fmt.Errorf("add action plan item: %w", err)
	}
	return nil
}

// ListActionPlan returns an anomaly's plan ordered by position.
func (s *AnomalyService) ListActionPlan(ctx context.Context, anomalyID int64) ([]model.ActionPlanItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, anomaly_id, position, action, responsible, resources, status, created_at, updated_at
		 FROM action_plan_items WHERE anomaly_id = $1 ORDER BY position ASC`, anomalyID)
	if err != nil {
		return nil, fmt.Errorf("list action plan: %w", err)
	}
	defer rows.Close()

	var items []model.ActionPlanItem
	for rows.Next() {
		var it model.ActionPlanItem
		if err := rows.Scan(&it.ID, &it.AnomalyID, &it.Position, &it.Action, &it.Responsible,
			&it.Resources, &it.Status, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan action plan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateActionPlanItemParams holds the mutable fields of an action plan item.
type UpdateActionPlanItemParams struct {
	Action      *string
	Responsible *string
	Resources   *string
	Status      *string
}

// UpdateActionPlanItem patches a single plan entry.
func (s *AnomalyService) UpdateActionPlanItem(ctx context.Context, itemID int64, p UpdateActionPlanItemParams) (*model.ActionPlanItem, error) {
	var it model.ActionPlanItem
	err := s.db.QueryRow(ctx,
		`SELECT id, anomaly_id, position, action, responsible, resources, status, created_at, updated_at
		 FROM action_plan_items WHERE id = $1`, itemID,
	).Scan(&it.ID, &it.AnomalyID, &it.Position, &it.Action, &it.Responsible,
		&it.Resources, &it.Status, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("action plan item", itemID)
		}
		return nil, fmt.Errorf("get action plan item: %w", err)
	}

	if p.Action != nil {
		it.Action = *p.Action
	}
	if p.Responsible != nil {
		it.Responsible = *p.Responsible
	}
	if p.Resources != nil {
		it.Resources = *p.Resources
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	it.UpdatedAt = time.Now()

	_, err = s.db.Exec(ctx,
		`UPDATE action_plan_items SET action = $1, responsible = $2, resources = $3, status = $4, updated_at = $5
		 WHERE id = $6`,
		it.Action, it.Responsible, it.Resources, it.Status, it.UpdatedAt, it.ID)
	if err != nil {
		return nil, fmt.Errorf("update action plan item: %w", err)
	}
	return &it, nil
}

// DeleteActionPlanItem removes a plan entry.
func (s *AnomalyService) DeleteActionPlanItem(ctx context.Context, itemID int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM action_plan_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete action plan item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("action plan item", itemID)
	}
	return nil
}

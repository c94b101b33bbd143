package request

import "time"

type CreateMaintenanceWindow struct {
	Title     string    `json:"title" validate:"required,max=256"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type UpdateMaintenanceWindow struct {
	Title     *string    `json:"title" validate:"omitempty,max=256"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// WindowAnomalies names the anomalies to assign to or remove from a window.
type WindowAnomalies struct {
	AnomalyIDs []int64 `json:"anomalyIds" validate:"required,min=1,dive,gt=0"`
}

// MoveAnomaly names the window an anomaly moves to. The anomaly itself is
// identified by the URL, never inferred by diffing window contents.
type MoveAnomaly struct {
	TargetWindowID int64 `json:"targetWindowId" validate:"required,gt=0"`
}

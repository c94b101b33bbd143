package model

import "time"

// Comment is a free-text annotation tied to an anomaly.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	AnomalyID int64     `json:"anomalyId" db:"anomaly_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

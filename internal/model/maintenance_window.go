package model

import (
	"math"
	"time"
)

type MaintenanceWindow struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AvailableHours is the window's capacity, derived from its bounds and
// rounded to the nearest whole hour. Capacity is never stored.
func (w MaintenanceWindow) AvailableHours() int {
	return int(math.Round(w.EndDate.Sub(w.StartDate).Hours()))
}

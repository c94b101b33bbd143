package rules

import (
	"github.com/khairallah17/anomaly-tracker/internal/model"
)

// Capacity is the result of checking an anomaly against a maintenance
// window's remaining hours.
type Capacity struct {
	Allowed        bool `json:"allowed"`
	AvailableHours int  `json:"availableHours"`
	RequiredHours  int  `json:"requiredHours"`
	// Shortfall is requiredHours - availableHours when the check fails,
	// zero otherwise.
	Shortfall int `json:"shortfall,omitempty"`
}

// CanAssign checks whether an anomaly's estimated repair time fits in the
// hours a maintenance window has left. bookedHours is the load already
// assigned to the window; the window's duration minus that load is what
// remains. An anomaly without an estimate requires zero hours and always
// fits an empty window.
func CanAssign(a model.Anomaly, w model.MaintenanceWindow, bookedHours int) Capacity {
	c := Capacity{
		AvailableHours: w.AvailableHours() - bookedHours,
	}
	if a.EstimatedTime != nil {
		c.RequiredHours = *a.EstimatedTime
	}
	c.Allowed = c.RequiredHours <= c.AvailableHours
	if !c.Allowed {
		c.Shortfall = c.RequiredHours - c.AvailableHours
	}
	return c
}

// CheckLoad verifies a window still holds its currently booked hours,
// used when a window's bounds shrink under existing assignments.
func CheckLoad(w model.MaintenanceWindow, bookedHours int) Capacity {
	c := Capacity{
		AvailableHours: w.AvailableHours(),
		RequiredHours:  bookedHours,
	}
	c.Allowed = c.RequiredHours <= c.AvailableHours
	if !c.Allowed {
		c.Shortfall = c.RequiredHours - c.AvailableHours
	}
	return c
}

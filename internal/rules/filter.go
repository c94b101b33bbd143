package rules

import (
	"strings"
	"time"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

// FilterAll matches every value of a predicate, disabling it.
const FilterAll = "all"

// BoolFilter is a tri-state boolean predicate value.
type BoolFilter string

const (
	BoolAny   BoolFilter = ""
	BoolTrue  BoolFilter = "true"
	BoolFalse BoolFilter = "false"
)

// AnomalyFilter holds the in-memory refinement predicates applied on top
// of whatever the persistence query returned. A zero value for any field
// (or FilterAll) skips that predicate entirely.
type AnomalyFilter struct {
	// Search matches description OR equipment label/number.
	Search      string
	Description string
	Equipment   string
	// SystemUnit matches any of system, unit, or current system status.
	SystemUnit string
	Service    string
	// ShutdownRequired accepts "", "all", "true", or "false".
	ShutdownRequired string
	// DetectionDate matches the calendar day; time of day is ignored.
	DetectionDate *time.Time
	Status        string
	// Criticality is a tier name matched against the combined score.
	Criticality string
}

// FilterAnomalies applies the filter as a conjunction over the input,
// preserving order. The input slice is never mutated.
func FilterAnomalies(anomalies []model.Anomaly, f AnomalyFilter) []model.Anomaly {
	out := make([]model.Anomaly, 0, len(anomalies))
	for _, a := range anomalies {
		if matches(a, f) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a model.Anomaly, f AnomalyFilter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Description), q) &&
			!strings.Contains(strings.ToLower(a.Equipment), q) &&
			!strings.Contains(strings.ToLower(a.EquipmentNumber), q) {
			return false
		}
	}
	if f.Description != "" && !containsFold(a.Description, f.Description) {
		return false
	}
	if f.Equipment != "" && !containsFold(a.Equipment, f.Equipment) && !containsFold(a.EquipmentNumber, f.Equipment) {
		return false
	}
	if f.SystemUnit != "" {
		if !containsFold(a.System, f.SystemUnit) &&
			!containsFold(a.Unit, f.SystemUnit) &&
			!containsFold(a.CurrentSystemStatus, f.SystemUnit) {
			return false
		}
	}
	if active(f.Service) && !strings.EqualFold(a.Service, f.Service) {
		return false
	}
	if f.ShutdownRequired != "" && f.ShutdownRequired != FilterAll {
		want := f.ShutdownRequired == string(BoolTrue)
		if a.SysShutdownRequired != want {
			return false
		}
	}
	if f.DetectionDate != nil && !sameDay(a.DetectionDate, *f.DetectionDate) {
		return false
	}
	if active(f.Status) && a.Status != f.Status {
		return false
	}
	if active(f.Criticality) && string(CombinedLevel(a)) != f.Criticality {
		return false
	}
	return true
}

// active reports whether a string predicate restricts the set.
func active(v string) bool {
	return v != "" && v != FilterAll
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sameDay compares two timestamps after truncating both to midnight in
// their own locations.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

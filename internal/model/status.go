package model

import "strings"

// Anomaly lifecycle statuses. The set is strictly forward-ordered:
// IN_PROGRESS -> TREATED -> CLOSED.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusTreated    = "TREATED"
	StatusClosed     = "CLOSED"
)

// statusAliases maps legacy and French spellings onto the canonical
// status domain. Applied exactly once, at request decoding; everything
// past the API boundary compares canonical values only.
var statusAliases = map[string]string{
	"in_progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"open":        StatusInProgress,
	"en cours":    StatusInProgress,
	"en-cours":    StatusInProgress,
	"treated":     StatusTreated,
	"traitee":     StatusTreated,
	"traitée":     StatusTreated,
	"traité":      StatusTreated,
	"closed":      StatusClosed,
	"cloture":     StatusClosed,
	"clôturé":     StatusClosed,
	"clôturée":    StatusClosed,
}

// NormalizeStatus resolves a raw status string to its canonical form.
// Returns false if the value maps to no known status.
func NormalizeStatus(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case StatusInProgress, StatusTreated, StatusClosed:
		return s, true
	}
	if canonical, ok := statusAliases[strings.ToLower(s)]; ok {
		return canonical, true
	}
	return "", false
}

// Action plan item statuses.
const (
	ActionPending    = "pending"
	ActionInProgress = "in_progress"
	ActionDone       = "done"
)

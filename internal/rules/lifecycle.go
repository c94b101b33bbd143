package rules

import (
	"time"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

// allowedNext holds the forward-only transition table. Re-selecting the
// current status is always legal; going backward never is.
var allowedNext = map[string][]string{
	model.StatusInProgress: {model.StatusInProgress, model.StatusTreated, model.StatusClosed},
	model.StatusTreated:    {model.StatusTreated, model.StatusClosed},
	model.StatusClosed:     {model.StatusClosed},
}

// AllowedNext returns the statuses reachable from the given status.
// Unknown statuses have no legal transitions.
func AllowedNext(status string) []string {
	next, ok := allowedNext[status]
	if !ok {
		return nil
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to string) bool {
	for _, s := range allowedNext[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition advances an anomaly to the next status, stamping the derived
// lifecycle timestamps. TreatedAt is set on reaching TREATED or beyond,
// ClosedAt on reaching CLOSED; existing stamps are never overwritten, so
// re-entering a status is idempotent. Illegal transitions return a
// TransitionError and leave the anomaly untouched.
func Transition(a *model.Anomaly, next string, now time.Time) error {
	if !CanTransition(a.Status, next) {
		return &TransitionError{From: a.Status, To: next}
	}

	a.Status = next
	switch next {
	case model.StatusTreated:
		if a.TreatedAt == nil {
			t := now
			a.TreatedAt = &t
		}
	case model.StatusClosed:
		// Jumping straight from IN_PROGRESS to CLOSED still passes
		// through treatment conceptually, so both stamps apply.
		if a.TreatedAt == nil {
			t := now
			a.TreatedAt = &t
		}
		if a.ClosedAt == nil {
			t := now
			a.ClosedAt = &t
		}
	}
	return nil
}

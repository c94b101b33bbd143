package rules

import "fmt"

// TransitionError reports an illegal lifecycle transition.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// CapacityError reports a failed window capacity check.
type CapacityError struct {
	Capacity
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient window capacity: need %dh, have %dh (short %dh)",
		e.RequiredHours, e.AvailableHours, e.Shortfall)
}

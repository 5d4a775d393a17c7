package domain

import "fmt"

// TransitionError reports an operation invoked while an entity was not in an
// eligible state, or outside the date window that allows it. It carries the
// attempted operation, the status at the time, and a human-readable reason so
// callers can branch without string matching.
type TransitionError struct {
	Op     string
	Status string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s: %s", e.Op, e.Status, e.Reason)
}

func newTransitionError(op, status, reason string) error {
	return &TransitionError{Op: op, Status: status, Reason: reason}
}

package scheduling

import (
	"errors"
	"fmt"

	"opsledger/models"
)

// ErrNotFound is returned when the referenced session does not exist.
var ErrNotFound = errors.New("session not found")

// ValidationError reports malformed caller input (bad date, inverted time
// range, negative price).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Msg
}

// ConflictError reports a scheduling overlap. It names the offending window
// so the caller can pick a different slot; it never leaks the other
// tenant's session details.
type ConflictError struct {
	EmployeeID string
	Date       string
	StartTime  string
	EndTime    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("employee %s is unavailable on %s between %s and %s", e.EmployeeID, e.Date, e.StartTime, e.EndTime)
}

// ForbiddenError reports that the actor lacks rights for the tenant scope
// or the requested operation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

// InvalidTransitionError reports a status change not reachable from the
// session's current state.
type InvalidTransitionError struct {
	From models.SessionStatus
	To   models.SessionStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no transition from %s to %s", e.From, e.To)
}

// ReconciliationError reports that a session completed but its ledger
// posting could not be written. The status change stays committed; the
// sweep repairs the ledger later.
type ReconciliationError struct {
	SessionID string
	Err       error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("session %s completed but reconciliation failed: %v", e.SessionID, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

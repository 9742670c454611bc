package sessionRepo

import (
	"errors"

	"opsledger/models"
)

// ErrNotFound is returned when no session matches the given id.
var ErrNotFound = errors.New("session not found")

// SessionRepository defines the data access methods the lifecycle engine
// needs. The engine depends only on this interface; Mongo and in-memory
// backends implement it.
type SessionRepository interface {
	// Create persists a new session record.
	Create(session *models.Session) error
	// GetByID retrieves a session by its unique id.
	GetByID(id string) (*models.Session, error)
	// Update replaces an existing session document.
	Update(session *models.Session) error
	// ListByCompany returns all sessions scoped to one tenant.
	ListByCompany(companyID string) ([]models.Session, error)
	// ListAll returns every session across tenants (global scope only).
	ListAll() ([]models.Session, error)
	// ListByStatus returns all sessions currently in the given state.
	ListByStatus(status models.SessionStatus) ([]models.Session, error)
	// HasConflict reports whether a non-Cancelled session other than
	// excludeSessionID exists for the same employee and date whose
	// [start, end) interval overlaps the given one.
	HasConflict(employeeID, date, startTime, endTime, excludeSessionID string) (bool, error)
}

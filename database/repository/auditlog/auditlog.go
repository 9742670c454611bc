package auditlogRepo

import "opsledger/models"

// AuditLogRepository is the append-only store behind the audit trail.
// There is deliberately no update or delete method.
type AuditLogRepository interface {
	// Append persists one immutable entry.
	Append(entry *models.AuditLogEntry) error
	// ListBySession returns a session's entries oldest first, for timeline
	// display.
	ListBySession(sessionID string) ([]models.AuditLogEntry, error)
	// ListAll returns the full feed newest first.
	ListAll() ([]models.AuditLogEntry, error)
}

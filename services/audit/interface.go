package audit

import (
	auditlogRepo "opsledger/database/repository/auditlog"
	"opsledger/models"
)

// EventParams carries everything needed to record one lifecycle event.
// ID and timestamp are assigned at append time.
type EventParams struct {
	SessionID   string
	Action      models.AuditAction
	Description string
	PerformedBy string
	Metadata    map[string]any
}

// AuditService is the write-once view over the platform's audit trail,
// plus the derived per-actor performance metrics.
type AuditService interface {
	// LogEvent appends one immutable entry and returns it.
	LogEvent(params EventParams) (*models.AuditLogEntry, error)
	// TrailForSession returns one session's entries, oldest first.
	TrailForSession(sessionID string) ([]models.AuditLogEntry, error)
	// AllEntries returns the global feed, newest first.
	AllEntries() ([]models.AuditLogEntry, error)
	// PerformanceMetrics folds the full feed into per-actor counters.
	PerformanceMetrics() (map[string]models.PerformanceMetric, error)
}

// DefaultAuditService implements AuditService.
type DefaultAuditService struct {
	Repo auditlogRepo.AuditLogRepository
}

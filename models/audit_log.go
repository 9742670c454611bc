package models

import "time"

// AuditAction enumerates the lifecycle events the audit trail records.
// The wire values are load-bearing; downstream log consumers key on them.
type AuditAction string

const (
	ActionCreated       AuditAction = "CREATED"
	ActionStatusChanged AuditAction = "STATUS_CHANGED"
	ActionNotesAdded    AuditAction = "NOTES_ADDED"
	ActionCompleted     AuditAction = "COMPLETED"
	ActionStaffAssigned AuditAction = "EMPLOYEE_ASSIGNED"
)

// AuditLogEntry is an immutable fact about something that happened to a
// session. Entries are only ever appended; there is no update or delete
// path anywhere in the system.
type AuditLogEntry struct {
	ID          string         `bson:"id" json:"id"`
	SessionID   string         `bson:"session_id" json:"session_id"`
	Action      AuditAction    `bson:"action" json:"action"`
	PerformedBy string         `bson:"performed_by" json:"performed_by"`
	Timestamp   time.Time      `bson:"timestamp" json:"timestamp"`
	Description string         `bson:"description" json:"description"`
	Metadata    map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// PerformanceMetric holds the per-actor counters derived from the audit
// feed. It is never stored; it is recomputed from the log on demand.
type PerformanceMetric struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// EfficiencyIndex is the UI-facing completion ratio in percent, rounded and
// clamped to [0, 100].
func (m PerformanceMetric) EfficiencyIndex() int {
	if m.Total <= 0 {
		return 0
	}
	idx := int(float64(m.Completed)/float64(m.Total)*100 + 0.5)
	if idx > 100 {
		idx = 100
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

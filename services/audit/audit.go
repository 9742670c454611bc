package audit

import (
	"fmt"
	"time"

	"opsledger/models"

	"github.com/google/uuid"
)

// LogEvent assigns identity and timestamp, then appends the entry. The
// trail is append-only; a failed append is surfaced unchanged and never
// retried here.
func (svc *DefaultAuditService) LogEvent(params EventParams) (*models.AuditLogEntry, error) {
	entry := &models.AuditLogEntry{
		ID:          uuid.New().String(),
		SessionID:   params.SessionID,
		Action:      params.Action,
		PerformedBy: params.PerformedBy,
		Timestamp:   time.Now(),
		Description: params.Description,
		Metadata:    params.Metadata,
	}
	if err := svc.Repo.Append(entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return entry, nil
}

// TrailForSession returns the session timeline in creation order.
func (svc *DefaultAuditService) TrailForSession(sessionID string) ([]models.AuditLogEntry, error) {
	return svc.Repo.ListBySession(sessionID)
}

// AllEntries returns the global feed, most recent first.
func (svc *DefaultAuditService) AllEntries() ([]models.AuditLogEntry, error) {
	return svc.Repo.ListAll()
}

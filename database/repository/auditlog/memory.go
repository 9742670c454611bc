package auditlogRepo

import (
	"sync"

	"opsledger/models"
)

// MemoryAuditLogRepo is an in-memory AuditLogRepository. Entries are held
// in append order; the newest-first feed is produced on read.
type MemoryAuditLogRepo struct {
	mu      sync.RWMutex
	entries []models.AuditLogEntry
}

// NewMemoryAuditLogRepo constructs an empty in-memory audit log.
func NewMemoryAuditLogRepo() *MemoryAuditLogRepo {
	return &MemoryAuditLogRepo{}
}

func (repo *MemoryAuditLogRepo) Append(entry *models.AuditLogEntry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.entries = append(repo.entries, *entry)
	return nil
}

func (repo *MemoryAuditLogRepo) ListBySession(sessionID string) ([]models.AuditLogEntry, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.AuditLogEntry
	for _, e := range repo.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (repo *MemoryAuditLogRepo) ListAll() ([]models.AuditLogEntry, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]models.AuditLogEntry, 0, len(repo.entries))
	for i := len(repo.entries) - 1; i >= 0; i-- {
		out = append(out, repo.entries[i])
	}
	return out, nil
}

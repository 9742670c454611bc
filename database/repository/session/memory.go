package sessionRepo

import (
	"sync"

	"opsledger/models"
)

// MemorySessionRepo is an in-memory SessionRepository. It backs tests and
// deployments that do not need durable storage.
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemorySessionRepo constructs an empty in-memory session store.
func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{sessions: make(map[string]models.Session)}
}

func (repo *MemorySessionRepo) Create(session *models.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.sessions[session.ID] = *session
	return nil
}

func (repo *MemorySessionRepo) GetByID(id string) (*models.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	s, ok := repo.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (repo *MemorySessionRepo) Update(session *models.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.sessions[session.ID]; !ok {
		return ErrNotFound
	}
	repo.sessions[session.ID] = *session
	return nil
}

func (repo *MemorySessionRepo) ListByCompany(companyID string) ([]models.Session, error) {
	return repo.filter(func(s models.Session) bool { return s.CompanyID == companyID }), nil
}

func (repo *MemorySessionRepo) ListAll() ([]models.Session, error) {
	return repo.filter(func(models.Session) bool { return true }), nil
}

func (repo *MemorySessionRepo) ListByStatus(status models.SessionStatus) ([]models.Session, error) {
	return repo.filter(func(s models.Session) bool { return s.Status == status }), nil
}

func (repo *MemorySessionRepo) HasConflict(employeeID, date, startTime, endTime, excludeSessionID string) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, s := range repo.sessions {
		if s.EmployeeID != employeeID || s.Date != date {
			continue
		}
		if s.ID == excludeSessionID || s.Status == models.StatusCancelled {
			continue
		}
		if models.Overlaps(startTime, endTime, s.StartTime, s.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (repo *MemorySessionRepo) filter(keep func(models.Session) bool) []models.Session {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.Session
	for _, s := range repo.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

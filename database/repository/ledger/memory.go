package ledgerRepo

import (
	"sort"
	"sync"

	"opsledger/models"
)

// MemoryLedgerRepo is an in-memory LedgerRepository.
type MemoryLedgerRepo struct {
	mu      sync.RWMutex
	records []models.FinancialRecord
}

// NewMemoryLedgerRepo constructs an empty in-memory ledger.
func NewMemoryLedgerRepo() *MemoryLedgerRepo {
	return &MemoryLedgerRepo{}
}

func (repo *MemoryLedgerRepo) Insert(record *models.FinancialRecord) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.records = append(repo.records, *record)
	return nil
}

func (repo *MemoryLedgerRepo) GetBySessionID(sessionID string) (*models.FinancialRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, r := range repo.records {
		if r.SessionID == sessionID {
			copied := r
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *MemoryLedgerRepo) ListByCompany(companyID string) ([]models.FinancialRecord, error) {
	return repo.filter(func(r models.FinancialRecord) bool { return r.CompanyID == companyID }), nil
}

func (repo *MemoryLedgerRepo) ListAll() ([]models.FinancialRecord, error) {
	return repo.filter(func(models.FinancialRecord) bool { return true }), nil
}

func (repo *MemoryLedgerRepo) filter(keep func(models.FinancialRecord) bool) []models.FinancialRecord {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.FinancialRecord
	for _, r := range repo.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

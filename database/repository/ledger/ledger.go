package ledgerRepo

import (
	"errors"

	"opsledger/models"
)

// ErrNotFound is returned when no ledger record matches the query.
var ErrNotFound = errors.New("financial record not found")

// LedgerRepository stores internal ledger postings. Records are written
// once and never mutated.
type LedgerRepository interface {
	// Insert persists one posting. The storage layer additionally enforces
	// at most one record per non-empty session id.
	Insert(record *models.FinancialRecord) error
	// GetBySessionID returns the posting reconciled from one session.
	GetBySessionID(sessionID string) (*models.FinancialRecord, error)
	// ListByCompany returns one tenant's postings, newest first.
	ListByCompany(companyID string) ([]models.FinancialRecord, error)
	// ListAll returns every posting across tenants, newest first.
	ListAll() ([]models.FinancialRecord, error)
}

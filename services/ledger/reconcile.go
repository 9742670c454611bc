package ledger

import (
	"errors"
	"fmt"
	"time"

	ledgerRepo "opsledger/database/repository/ledger"
	"opsledger/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reconcile posts exactly one ledger entry for a completed session.
// Idempotence is first-writer-wins: a repeat call returns the record the
// first call created. Free sessions produce nothing, which is a valid
// outcome, not an error.
func (svc *DefaultLedgerService) Reconcile(session *models.Session) (*models.FinancialRecord, error) {
	if session.Price <= 0 {
		return nil, nil
	}

	existing, err := svc.Repo.GetBySessionID(session.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ledgerRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing record for session %s: %w", session.ID, err)
	}

	income := decimal.NewFromFloat(session.Price)
	record := &models.FinancialRecord{
		ID:          uuid.New().String(),
		SessionID:   session.ID,
		CompanyID:   session.CompanyID,
		Income:      income.InexactFloat64(),
		Expenses:    0,
		NetProfit:   income.InexactFloat64(),
		Description: fmt.Sprintf("Automated income: session fulfilled - %s", session.Title),
		CreatedAt:   time.Now(),
	}
	if err := svc.Repo.Insert(record); err != nil {
		return nil, fmt.Errorf("failed to insert financial record for session %s: %w", session.ID, err)
	}
	return record, nil
}

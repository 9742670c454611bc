package ledger

import (
	ledgerRepo "opsledger/database/repository/ledger"
	sessionRepo "opsledger/database/repository/session"
	"opsledger/models"
)

// LedgerService posts and reports internal financial records. The only
// write path is reconciliation: one posting per completed priced session,
// with zero manual input.
type LedgerService interface {
	// Reconcile posts the ledger entry for a completed session. It returns
	// (nil, nil) for free sessions and the existing record, unchanged, if
	// the session was already reconciled.
	Reconcile(session *models.Session) (*models.FinancialRecord, error)
	// Summary aggregates in-scope postings. Scope is a company id, or
	// models.GlobalScope for the whole platform.
	Summary(scope string) (*models.FinancialSummary, error)
	// Records returns in-scope postings, newest first.
	Records(scope string) ([]models.FinancialRecord, error)
	// SweepOnce backfills postings for completed sessions that are missing
	// one, and returns how many it created.
	SweepOnce() (int, error)
}

// DefaultLedgerService implements LedgerService.
type DefaultLedgerService struct {
	Repo     ledgerRepo.LedgerRepository
	Sessions sessionRepo.SessionRepository
}

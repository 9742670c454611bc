package ledger

import (
	"errors"
	"fmt"

	ledgerRepo "opsledger/database/repository/ledger"
	"opsledger/models"
)

// SweepOnce scans for fulfilled priced sessions that have no ledger posting
// and backfills them. A crash between a status commit and its
// reconciliation leaves exactly this gap; the sweep closes it. Archived
// sessions are scanned too: archival does not erase the fulfilled work, and
// a gap opened while the ledger was down can outlive the Completed state.
// Safe to run at any time because Reconcile is idempotent.
func (svc *DefaultLedgerService) SweepOnce() (int, error) {
	candidates, err := svc.Sessions.ListByStatus(models.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("sweep: failed to list completed sessions: %w", err)
	}
	archived, err := svc.Sessions.ListByStatus(models.StatusArchived)
	if err != nil {
		return 0, fmt.Errorf("sweep: failed to list archived sessions: %w", err)
	}
	candidates = append(candidates, archived...)

	created := 0
	for i := range candidates {
		session := &candidates[i]
		if session.Price <= 0 || session.CompletedAt == nil {
			continue
		}
		_, err := svc.Repo.GetBySessionID(session.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ledgerRepo.ErrNotFound) {
			return created, fmt.Errorf("sweep: ledger lookup failed for session %s: %w", session.ID, err)
		}
		if _, err := svc.Reconcile(session); err != nil {
			return created, fmt.Errorf("sweep: backfill failed for session %s: %w", session.ID, err)
		}
		created++
	}
	return created, nil
}

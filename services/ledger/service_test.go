package ledger

import (
	"testing"
	"time"

	ledgerRepo "opsledger/database/repository/ledger"
	sessionRepo "opsledger/database/repository/session"
	"opsledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*DefaultLedgerService, *ledgerRepo.MemoryLedgerRepo, *sessionRepo.MemorySessionRepo) {
	postings := ledgerRepo.NewMemoryLedgerRepo()
	sessions := sessionRepo.NewMemorySessionRepo()
	return &DefaultLedgerService{Repo: postings, Sessions: sessions}, postings, sessions
}

func completedSession(id, companyID string, price float64) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:          id,
		Title:       "Weekly grooming",
		CompanyID:   companyID,
		Date:        "2024-05-01",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      models.StatusCompleted,
		Price:       price,
		CreatedAt:   now,
		CompletedAt: &now,
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	svc, postings, _ := newService()
	session := completedSession("s-1", "acme", 500)

	first, err := svc.Reconcile(session)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "s-1", first.SessionID)
	assert.Equal(t, 500.0, first.Income)
	assert.Equal(t, 0.0, first.Expenses)
	assert.Equal(t, 500.0, first.NetProfit)
	assert.Contains(t, first.Description, "Weekly grooming")

	second, err := svc.Reconcile(session)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := postings.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReconcileSkipsFreeSessions(t *testing.T) {
	svc, postings, _ := newService()

	for _, price := range []float64{0, -10} {
		record, err := svc.Reconcile(completedSession("s-free", "acme", price))
		require.NoError(t, err)
		assert.Nil(t, record)
	}

	all, err := postings.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSummaryScopingAndMargin(t *testing.T) {
	svc, postings, _ := newService()

	seed := []models.FinancialRecord{
		{ID: "r-1", SessionID: "s-1", CompanyID: "acme", Income: 100.10, NetProfit: 100.10, CreatedAt: time.Now()},
		{ID: "r-2", SessionID: "s-2", CompanyID: "acme", Income: 200.20, Expenses: 50.05, NetProfit: 150.15, CreatedAt: time.Now()},
		{ID: "r-3", SessionID: "s-3", CompanyID: "globex", Income: 1000, NetProfit: 1000, CreatedAt: time.Now()},
	}
	for i := range seed {
		require.NoError(t, postings.Insert(&seed[i]))
	}

	acme, err := svc.Summary("acme")
	require.NoError(t, err)
	assert.Equal(t, 2, acme.RecordCount)
	assert.Equal(t, "300.3", acme.Revenue.String())
	assert.Equal(t, "50.05", acme.Expenses.String())
	assert.Equal(t, "250.25", acme.Profit.String())
	assert.Equal(t, "83.33%", acme.Margin)

	global, err := svc.Summary(models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, 3, global.RecordCount)
	assert.Equal(t, "1300.3", global.Revenue.String())

	empty, err := svc.Summary("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.RecordCount)
	assert.True(t, empty.Revenue.IsZero())
	assert.Equal(t, "0%", empty.Margin)
}

func TestRecordsScoping(t *testing.T) {
	svc, postings, _ := newService()

	require.NoError(t, postings.Insert(&models.FinancialRecord{ID: "r-1", SessionID: "s-1", CompanyID: "acme", Income: 10, CreatedAt: time.Now()}))
	require.NoError(t, postings.Insert(&models.FinancialRecord{ID: "r-2", SessionID: "s-2", CompanyID: "globex", Income: 20, CreatedAt: time.Now()}))

	acme, err := svc.Records("acme")
	require.NoError(t, err)
	require.Len(t, acme, 1)
	assert.Equal(t, "r-1", acme[0].ID)

	global, err := svc.Records(models.GlobalScope)
	require.NoError(t, err)
	assert.Len(t, global, 2)
}

func TestSweepOnceBackfillsOnlyGaps(t *testing.T) {
	svc, postings, sessions := newService()

	reconciled := completedSession("s-1", "acme", 100)
	missing := completedSession("s-2", "acme", 250)
	free := completedSession("s-3", "acme", 0)
	pending := completedSession("s-4", "acme", 400)
	pending.Status = models.StatusScheduled

	for _, s := range []*models.Session{reconciled, missing, free, pending} {
		require.NoError(t, sessions.Create(s))
	}
	_, err := svc.Reconcile(reconciled)
	require.NoError(t, err)

	created, err := svc.SweepOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record, err := postings.GetBySessionID("s-2")
	require.NoError(t, err)
	assert.Equal(t, 250.0, record.Income)

	all, err := postings.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A second sweep finds nothing left to repair.
	created, err = svc.SweepOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestSweepOnceCoversArchivedSessions(t *testing.T) {
	svc, postings, sessions := newService()

	// Archived after fulfilment, posting still missing.
	archived := completedSession("s-1", "acme", 300)
	archived.Status = models.StatusArchived
	require.NoError(t, sessions.Create(archived))

	// Archived without ever completing (no fulfilment, nothing owed).
	never := completedSession("s-2", "acme", 300)
	never.Status = models.StatusArchived
	never.CompletedAt = nil
	require.NoError(t, sessions.Create(never))

	created, err := svc.SweepOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record, err := postings.GetBySessionID("s-1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, record.Income)

	_, err = postings.GetBySessionID("s-2")
	assert.ErrorIs(t, err, ledgerRepo.ErrNotFound)
}

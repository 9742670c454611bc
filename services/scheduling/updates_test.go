package scheduling

import (
	"errors"
	"testing"

	"opsledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestUpdateScheduleRevalidatesConflicts(t *testing.T) {
	f := newFixture()

	a, err := f.svc.Create(createInput("A", "09:00", "10:00"), acmeAdmin)
	require.NoError(t, err)
	b, err := f.svc.Create(createInput("B", "11:00", "12:00"), acmeAdmin)
	require.NoError(t, err)

	// Moving B onto A's window must be rejected.
	_, err = f.svc.UpdateSchedule(b.ID, SchedulePatch{StartTime: strPtr("09:30"), EndTime: strPtr("10:30")}, acmeAdmin)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	unchanged, err := f.sessions.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "11:00", unchanged.StartTime)

	// A boundary touch is fine.
	moved, err := f.svc.UpdateSchedule(b.ID, SchedulePatch{StartTime: strPtr("10:00"), EndTime: strPtr("11:00")}, acmeAdmin)
	require.NoError(t, err)
	assert.Equal(t, "10:00", moved.StartTime)

	// Re-saving a session's own window must not conflict with itself.
	same, err := f.svc.UpdateSchedule(a.ID, SchedulePatch{StartTime: strPtr("09:00"), EndTime: strPtr("10:00"), Title: strPtr("A renamed")}, acmeAdmin)
	require.NoError(t, err)
	assert.Equal(t, "A renamed", same.Title)
}

func TestUpdateScheduleReassignment(t *testing.T) {
	f := newFixture()

	s, err := f.svc.Create(createInput("A", "09:00", "10:00"), acmeAdmin)
	require.NoError(t, err)

	// Staff cannot hand sessions to someone else.
	_, err = f.svc.UpdateSchedule(s.ID, SchedulePatch{EmployeeID: strPtr("emp-2")}, acmeStaff)
	var forbiddenErr *ForbiddenError
	require.ErrorAs(t, err, &forbiddenErr)

	moved, err := f.svc.UpdateSchedule(s.ID, SchedulePatch{EmployeeID: strPtr("emp-2")}, acmeAdmin)
	require.NoError(t, err)
	assert.Equal(t, "emp-2", moved.EmployeeID)
	assert.Equal(t, "Sara Abdullah", moved.EmployeeName)

	trail, err := f.trail.ListBySession(s.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, models.ActionStaffAssigned, trail[1].Action)
	assert.Equal(t, []string{"employee"}, toStringSlice(trail[1].Metadata["changed"]))
}

func TestUpdateSchedulePlainEdit(t *testing.T) {
	f := newFixture()

	s, err := f.svc.Create(createInput("A", "09:00", "10:00"), acmeAdmin)
	require.NoError(t, err)

	edited, err := f.svc.UpdateSchedule(s.ID, SchedulePatch{Title: strPtr("Deep clean"), Price: floatPtr(750)}, acmeAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Deep clean", edited.Title)
	assert.Equal(t, 750.0, edited.Price)

	trail, err := f.trail.ListBySession(s.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, models.ActionStatusChanged, trail[1].Action)

	// No-op patches leave the trail alone.
	_, err = f.svc.UpdateSchedule(s.ID, SchedulePatch{Title: strPtr("Deep clean")}, acmeAdmin)
	require.NoError(t, err)
	trail, err = f.trail.ListBySession(s.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 2)
}

func TestAddNote(t *testing.T) {
	f := newFixture()

	s, err := f.svc.Create(createInput("A", "09:00", "10:00"), acmeAdmin)
	require.NoError(t, err)

	note, err := f.svc.AddNote(s.ID, "client prefers morning slots", acmeStaff)
	require.NoError(t, err)
	assert.Equal(t, acmeStaff.ID, note.AuthorID)
	assert.NotEmpty(t, note.ID)

	stored, err := f.sessions.GetByID(s.ID)
	require.NoError(t, err)
	require.Len(t, stored.Notes, 1)
	assert.Equal(t, "client prefers morning slots", stored.Notes[0].Content)

	trail, err := f.trail.ListBySession(s.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, models.ActionNotesAdded, trail[1].Action)

	_, err = f.svc.AddNote(s.ID, "", acmeStaff)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	var forbiddenErr *ForbiddenError
	_, err = f.svc.AddNote(s.ID, "sneaky", otherAdmin)
	assert.ErrorAs(t, err, &forbiddenErr)
}

// failingLedger refuses every posting, standing in for a ledger backend
// outage at completion time.
type failingLedger struct{}

func (failingLedger) Reconcile(*models.Session) (*models.FinancialRecord, error) {
	return nil, errors.New("ledger store unavailable")
}
func (failingLedger) Summary(string) (*models.FinancialSummary, error) { return nil, nil }
func (failingLedger) Records(string) ([]models.FinancialRecord, error) { return nil, nil }
func (failingLedger) SweepOnce() (int, error)                          { return 0, nil }

func TestCompletionSurvivesReconciliationFailure(t *testing.T) {
	f := newFixture()
	f.svc.Ledger = failingLedger{}

	s, err := f.svc.Create(createInput("A", "09:00", "10:00"), acmeAdmin)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(s.ID, models.StatusInProgress, acmeStaff)
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(s.ID, models.StatusCompleted, acmeStaff)
	var reconErr *ReconciliationError
	require.ErrorAs(t, err, &reconErr)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// The status commit sticks even though the posting did not.
	stored, err := f.sessions.GetByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	trail, err := f.trail.ListBySession(s.ID)
	require.NoError(t, err)
	require.Len(t, trail, 3)
	assert.Equal(t, models.ActionStatusChanged, trail[2].Action)

	// The sweep repairs the gap once the ledger is reachable again.
	f.svc.Ledger = f.ledger
	created, err := f.ledger.SweepOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record, err := f.postings.GetBySessionID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, record.Income)
}

func TestSweepRepairsArchivedSession(t *testing.T) {
	f := newFixture()
	f.svc.Ledger = failingLedger{}

	s, err := f.svc.Create(createInput("A", "09:00", "10:00"), acmeAdmin)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(s.ID, models.StatusInProgress, acmeStaff)
	require.NoError(t, err)

	var reconErr *ReconciliationError
	_, err = f.svc.UpdateStatus(s.ID, models.StatusCompleted, acmeStaff)
	require.ErrorAs(t, err, &reconErr)

	// Archiving while the posting is still missing must not strand it.
	f.svc.Ledger = f.ledger
	_, err = f.svc.UpdateStatus(s.ID, models.StatusArchived, acmeAdmin)
	require.NoError(t, err)

	created, err := f.ledger.SweepOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	record, err := f.postings.GetBySessionID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, record.Income)
	assert.Equal(t, 500.0, record.NetProfit)
}

func toStringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, _ := item.(string)
			out = append(out, s)
		}
		return out
	}
	return nil
}

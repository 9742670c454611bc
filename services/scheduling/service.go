package scheduling

import (
	"errors"
	"fmt"
	"time"

	sessionRepo "opsledger/database/repository/session"
	"opsledger/models"
	"opsledger/services/audit"
	"opsledger/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates, conflict-checks and persists a new session, then
// records the creation in the audit trail.
func (svc *DefaultSessionService) Create(input CreateSessionInput, actor models.Actor) (*models.Session, error) {
	if err := models.ValidateTimeRange(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	if input.Price < 0 {
		return nil, &ValidationError{Msg: "price must not be negative"}
	}

	switch actor.Role {
	case models.RoleClient:
		if input.ClientID != actor.ID {
			return nil, &ForbiddenError{Reason: "clients may only book sessions for themselves"}
		}
	case models.RoleEmployee:
		if input.EmployeeID != actor.ID {
			return nil, &ForbiddenError{Reason: "staff may only schedule sessions assigned to themselves"}
		}
	}

	// Sessions always belong to a concrete tenant; the global sentinel is
	// an actor capability, never a session scope.
	companyID := actor.CompanyID
	if actor.IsGlobal() {
		if input.CompanyID == "" || input.CompanyID == models.GlobalScope {
			return nil, &ValidationError{Msg: "a platform actor must name the tenant the session belongs to"}
		}
		companyID = input.CompanyID
	}

	session := &models.Session{
		ID:           uuid.New().String(),
		Title:        input.Title,
		CompanyID:    companyID,
		ClientID:     input.ClientID,
		ClientName:   svc.resolveName(input.ClientID, "Client"),
		EmployeeID:   input.EmployeeID,
		EmployeeName: svc.resolveName(input.EmployeeID, "Specialist"),
		Date:         input.Date,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Status:       models.StatusScheduled,
		Price:        input.Price,
		CreatedAt:    time.Now(),
	}
	if session.Title == "" {
		session.Title = "New Session"
	}

	unlock := svc.locks.lock(session.EmployeeID)
	defer unlock()

	conflict, err := svc.Sessions.HasConflict(session.EmployeeID, session.Date, session.StartTime, session.EndTime, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, &ConflictError{
			EmployeeID: session.EmployeeID,
			Date:       session.Date,
			StartTime:  session.StartTime,
			EndTime:    session.EndTime,
		}
	}
	if err := svc.Sessions.Create(session); err != nil {
		return nil, err
	}

	if _, err := svc.Audit.LogEvent(audit.EventParams{
		SessionID:   session.ID,
		Action:      models.ActionCreated,
		Description: fmt.Sprintf("New session '%s' initialized by %s", session.Title, actor.Name),
		PerformedBy: actor.Name,
		Metadata:    map[string]any{"employee_id": session.EmployeeID},
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads one session, enforcing tenant scope and role visibility.
func (svc *DefaultSessionService) Get(sessionID string, actor models.Actor) (*models.Session, error) {
	session, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := svc.authorizeRead(session, actor); err != nil {
		return nil, err
	}
	return session, nil
}

// List returns the sessions visible to the actor: everything for a global
// actor, the tenant's sessions for an admin, and only the actor's own
// sessions for staff and clients.
func (svc *DefaultSessionService) List(actor models.Actor) ([]models.Session, error) {
	var sessions []models.Session
	var err error
	if actor.IsGlobal() {
		sessions, err = svc.Sessions.ListAll()
	} else {
		sessions, err = svc.Sessions.ListByCompany(actor.CompanyID)
	}
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleEmployee:
		sessions = filterSessions(sessions, func(s models.Session) bool { return s.EmployeeID == actor.ID })
	case models.RoleClient:
		sessions = filterSessions(sessions, func(s models.Session) bool { return s.ClientID == actor.ID })
	}
	return sessions, nil
}

// UpdateStatus drives the lifecycle state machine. The persisted status
// change and its StatusChanged entry commit together; a reconciliation
// failure after that point is surfaced as a ReconciliationError alongside
// the updated session, never rolled back.
func (svc *DefaultSessionService) UpdateStatus(sessionID string, newStatus models.SessionStatus, actor models.Actor) (*models.Session, error) {
	first, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}

	unlock := svc.locks.lock(first.EmployeeID)
	defer unlock()

	// Reload inside the critical section so a concurrent writer's change
	// is never overwritten from a stale snapshot.
	session, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}

	if !actor.SameOrGlobalScope(session.CompanyID) {
		return nil, &ForbiddenError{Reason: "session belongs to another tenant"}
	}
	if !CanTransition(session.Status, newStatus) {
		return nil, &InvalidTransitionError{From: session.Status, To: newStatus}
	}
	if err := authorizeTransition(actor, session, newStatus); err != nil {
		return nil, err
	}

	oldStatus := session.Status
	session.Status = newStatus
	if newStatus == models.StatusCompleted && session.CompletedAt == nil {
		now := time.Now()
		session.CompletedAt = &now
	}
	if err := svc.Sessions.Update(session); err != nil {
		return nil, err
	}

	if _, err := svc.Audit.LogEvent(audit.EventParams{
		SessionID:   session.ID,
		Action:      models.ActionStatusChanged,
		Description: fmt.Sprintf("Status changed from %s to %s by %s", oldStatus, newStatus, actor.Name),
		PerformedBy: actor.Name,
		Metadata:    map[string]any{"from": string(oldStatus), "to": string(newStatus)},
	}); err != nil {
		return nil, err
	}

	if newStatus == models.StatusCompleted {
		if err := svc.completeSession(session, actor); err != nil {
			return session, err
		}
	}
	return session, nil
}

// completeSession runs the reconciliation step and its Completed audit
// entry. Called with the status change already committed.
func (svc *DefaultSessionService) completeSession(session *models.Session, actor models.Actor) error {
	record, err := svc.Ledger.Reconcile(session)
	if err != nil {
		utils.GetLogger().Warn("reconciliation failed, ledger will be repaired by sweep",
			zap.String("session_id", session.ID), zap.Error(err))
		return &ReconciliationError{SessionID: session.ID, Err: err}
	}

	description := fmt.Sprintf("Session fulfilled by %s; no ledger entry (free session)", actor.Name)
	metadata := map[string]any{"reconciled": false}
	if record != nil {
		description = fmt.Sprintf("Session fulfilled by %s; revenue reconciled automatically", actor.Name)
		metadata = map[string]any{"reconciled": true, "financial_record_id": record.ID}
	}
	if _, err := svc.Audit.LogEvent(audit.EventParams{
		SessionID:   session.ID,
		Action:      models.ActionCompleted,
		Description: description,
		PerformedBy: actor.Name,
		Metadata:    metadata,
	}); err != nil {
		return &ReconciliationError{SessionID: session.ID, Err: err}
	}
	return nil
}

// Trail returns one session's audit timeline, oldest first, under the same
// tenant and role visibility rules as Get. The trail reveals everything the
// session does, so it is never looser than the session itself.
func (svc *DefaultSessionService) Trail(sessionID string, actor models.Actor) ([]models.AuditLogEntry, error) {
	session, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := svc.authorizeRead(session, actor); err != nil {
		return nil, err
	}
	return svc.Audit.TrailForSession(sessionID)
}

func (svc *DefaultSessionService) load(sessionID string) (*models.Session, error) {
	session, err := svc.Sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (svc *DefaultSessionService) authorizeRead(session *models.Session, actor models.Actor) error {
	if !actor.SameOrGlobalScope(session.CompanyID) {
		return &ForbiddenError{Reason: "session belongs to another tenant"}
	}
	switch actor.Role {
	case models.RoleEmployee:
		if session.EmployeeID != actor.ID {
			return &ForbiddenError{Reason: "staff may only view their own assigned sessions"}
		}
	case models.RoleClient:
		if session.ClientID != actor.ID {
			return &ForbiddenError{Reason: "clients may only view their own sessions"}
		}
	}
	return nil
}

func (svc *DefaultSessionService) resolveName(id, fallback string) string {
	if svc.Directory == nil {
		return fallback
	}
	entry, err := svc.Directory.Lookup(id)
	if err != nil || entry.Name == "" {
		return fallback
	}
	return entry.Name
}

func filterSessions(sessions []models.Session, keep func(models.Session) bool) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

package scheduling

import (
	"fmt"
	"time"

	"opsledger/models"
	"opsledger/services/audit"

	"github.com/google/uuid"
)

// UpdateSchedule applies a partial edit to a session's scheduling fields.
// Any change to the employee, date or time window re-runs conflict
// detection against all other sessions, excluding this one. Tenant scope
// and status are never patchable.
func (svc *DefaultSessionService) UpdateSchedule(sessionID string, patch SchedulePatch, actor models.Actor) (*models.Session, error) {
	first, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}
	if !actor.SameOrGlobalScope(first.CompanyID) {
		return nil, &ForbiddenError{Reason: "session belongs to another tenant"}
	}

	switch actor.Role {
	case models.RoleEmployee:
		if first.EmployeeID != actor.ID {
			return nil, &ForbiddenError{Reason: "staff may only edit their own assigned sessions"}
		}
	case models.RoleClient:
		if first.ClientID != actor.ID {
			return nil, &ForbiddenError{Reason: "clients may only edit their own sessions"}
		}
	}
	if patch.EmployeeID != nil && !(actor.IsGlobal() || actor.Role == models.RoleAdmin) {
		return nil, &ForbiddenError{Reason: "reassigning staff requires a tenant administrator"}
	}

	newEmployee := first.EmployeeID
	if patch.EmployeeID != nil {
		newEmployee = *patch.EmployeeID
	}

	unlock := svc.locks.lockPair(first.EmployeeID, newEmployee)
	defer unlock()

	session, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}

	date, start, end := session.Date, session.StartTime, session.EndTime
	if patch.Date != nil {
		date = *patch.Date
	}
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	if patch.EndTime != nil {
		end = *patch.EndTime
	}
	if err := models.ValidateTimeRange(date, start, end); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, &ValidationError{Msg: "price must not be negative"}
	}

	reassigned := newEmployee != session.EmployeeID
	windowChanged := date != session.Date || start != session.StartTime || end != session.EndTime
	if reassigned || windowChanged {
		conflict, err := svc.Sessions.HasConflict(newEmployee, date, start, end, session.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, &ConflictError{EmployeeID: newEmployee, Date: date, StartTime: start, EndTime: end}
		}
	}

	var changed []string
	if patch.Title != nil && *patch.Title != session.Title {
		session.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Price != nil && *patch.Price != session.Price {
		session.Price = *patch.Price
		changed = append(changed, "price")
	}
	if windowChanged {
		session.Date, session.StartTime, session.EndTime = date, start, end
		changed = append(changed, "schedule")
	}
	if reassigned {
		session.EmployeeID = newEmployee
		session.EmployeeName = svc.resolveName(newEmployee, "Specialist")
		changed = append(changed, "employee")
	}
	if len(changed) == 0 {
		return session, nil
	}

	if err := svc.Sessions.Update(session); err != nil {
		return nil, err
	}

	action := models.ActionStatusChanged
	description := fmt.Sprintf("Session details updated by %s", actor.Name)
	if reassigned {
		action = models.ActionStaffAssigned
		description = fmt.Sprintf("Session reassigned to %s by %s", session.EmployeeName, actor.Name)
	}
	if _, err := svc.Audit.LogEvent(audit.EventParams{
		SessionID:   session.ID,
		Action:      action,
		Description: description,
		PerformedBy: actor.Name,
		Metadata:    map[string]any{"changed": changed},
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// AddNote appends an internal note to a session and records it in the
// audit trail.
func (svc *DefaultSessionService) AddNote(sessionID, content string, actor models.Actor) (*models.SessionNote, error) {
	if content == "" {
		return nil, &ValidationError{Msg: "note content must not be empty"}
	}

	first, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}

	unlock := svc.locks.lock(first.EmployeeID)
	defer unlock()

	session, err := svc.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := svc.authorizeRead(session, actor); err != nil {
		return nil, err
	}

	note := models.SessionNote{
		ID:         uuid.New().String(),
		SessionID:  session.ID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	session.Notes = append(session.Notes, note)
	if err := svc.Sessions.Update(session); err != nil {
		return nil, err
	}

	if _, err := svc.Audit.LogEvent(audit.EventParams{
		SessionID:   session.ID,
		Action:      models.ActionNotesAdded,
		Description: fmt.Sprintf("Internal note added by %s", actor.Name),
		PerformedBy: actor.Name,
	}); err != nil {
		return nil, err
	}
	return &note, nil
}

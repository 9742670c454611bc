package scheduling

import "opsledger/models"

// transitions is the full lifecycle table. Cancelled and Archived are
// terminal; anything not listed is an invalid transition.
var transitions = map[models.SessionStatus][]models.SessionStatus{
	models.StatusScheduled:  {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted},
	models.StatusCompleted:  {models.StatusArchived},
}

// CanTransition reports whether the lifecycle table defines from -> to.
func CanTransition(from, to models.SessionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// authorizeTransition applies the role table to a legal transition. Tenant
// scope has already been verified by the caller.
//
//	global actor          any transition
//	tenant admin          any transition within their tenant
//	assigned employee     Scheduled -> InProgress, InProgress -> Completed
//	session's client      Scheduled -> Cancelled only
func authorizeTransition(actor models.Actor, session *models.Session, to models.SessionStatus) error {
	if actor.IsGlobal() || actor.Role == models.RoleAdmin {
		return nil
	}

	from := session.Status
	if actor.ID == session.EmployeeID {
		if (from == models.StatusScheduled && to == models.StatusInProgress) ||
			(from == models.StatusInProgress && to == models.StatusCompleted) {
			return nil
		}
		return &ForbiddenError{Reason: "assigned staff may only start or complete their own sessions"}
	}
	if actor.ID == session.ClientID {
		if from == models.StatusScheduled && to == models.StatusCancelled {
			return nil
		}
		return &ForbiddenError{Reason: "clients may only cancel sessions that are still scheduled"}
	}
	return &ForbiddenError{Reason: "status changes require the assigned staff member or a tenant administrator"}
}

package scheduling

import (
	directoryRepo "opsledger/database/repository/directory"
	sessionRepo "opsledger/database/repository/session"
	"opsledger/models"
	"opsledger/services/audit"
	"opsledger/services/ledger"
)

// CreateSessionInput is the caller-supplied part of a new session. Tenant
// scope comes from the actor unless the actor is global.
type CreateSessionInput struct {
	Title      string  `json:"title"`
	CompanyID  string  `json:"company_id,omitempty"`
	ClientID   string  `json:"client_id" binding:"required"`
	EmployeeID string  `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	Price      float64 `json:"price"`
}

// SchedulePatch is a partial update of a session's scheduling fields. Nil
// fields are left unchanged; company and status are not patchable here.
type SchedulePatch struct {
	Title      *string  `json:"title,omitempty"`
	EmployeeID *string  `json:"employee_id,omitempty"`
	Date       *string  `json:"date,omitempty"`
	StartTime  *string  `json:"start_time,omitempty"`
	EndTime    *string  `json:"end_time,omitempty"`
	Price      *float64 `json:"price,omitempty"`
}

// SessionService is the lifecycle controller: the single entry point that
// sequences conflict checking, persistence, audit logging and
// reconciliation as one logical operation.
type SessionService interface {
	Create(input CreateSessionInput, actor models.Actor) (*models.Session, error)
	Get(sessionID string, actor models.Actor) (*models.Session, error)
	List(actor models.Actor) ([]models.Session, error)
	UpdateStatus(sessionID string, newStatus models.SessionStatus, actor models.Actor) (*models.Session, error)
	UpdateSchedule(sessionID string, patch SchedulePatch, actor models.Actor) (*models.Session, error)
	AddNote(sessionID, content string, actor models.Actor) (*models.SessionNote, error)
	Trail(sessionID string, actor models.Actor) ([]models.AuditLogEntry, error)
}

// DefaultSessionService implements SessionService. It is the only writer
// of sessions, audit entries and ledger postings, and always touches them
// in that order.
type DefaultSessionService struct {
	Sessions  sessionRepo.SessionRepository
	Directory directoryRepo.DirectoryRepository
	Audit     audit.AuditService
	Ledger    ledger.LedgerService

	locks *employeeLocks
}

// NewSessionService wires a lifecycle controller over the given backends.
func NewSessionService(
	sessions sessionRepo.SessionRepository,
	directory directoryRepo.DirectoryRepository,
	auditSvc audit.AuditService,
	ledgerSvc ledger.LedgerService,
) *DefaultSessionService {
	return &DefaultSessionService{
		Sessions:  sessions,
		Directory: directory,
		Audit:     auditSvc,
		Ledger:    ledgerSvc,
		locks:     newEmployeeLocks(),
	}
}

package handlers

import (
	"errors"
	"net/http"

	"opsledger/middleware"
	"opsledger/models"
	"opsledger/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the lifecycle controller over HTTP.
type SessionHandler struct {
	Service scheduling.SessionService
	Logger  *zap.Logger
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(svc scheduling.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Service: svc, Logger: logger}
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	var input scheduling.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.Create(input, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListSessions handles GET /api/sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	sessions, err := h.Service.List(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession handles GET /api/sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	session, err := h.Service.Get(c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateSessionStatus handles PATCH /api/sessions/:id/status. A completed
// session whose reconciliation failed still returns the committed session,
// flagged with a warning; the sweep repairs the ledger.
func (h *SessionHandler) UpdateSessionStatus(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	var input struct {
		Status models.SessionStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.UpdateStatus(c.Param("id"), input.Status, actor)
	if err != nil {
		var reconErr *scheduling.ReconciliationError
		if errors.As(err, &reconErr) && session != nil {
			h.Logger.Warn("status committed but reconciliation failed",
				zap.String("session_id", reconErr.SessionID), zap.Error(reconErr))
			c.JSON(http.StatusOK, gin.H{
				"session": session,
				"warning": "status committed; ledger entry pending, will be backfilled automatically",
			})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateSessionSchedule handles PATCH /api/sessions/:id.
func (h *SessionHandler) UpdateSessionSchedule(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	var patch scheduling.SchedulePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.UpdateSchedule(c.Param("id"), patch, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSessionTrail handles GET /api/sessions/:id/trail. Visibility follows
// the session itself: tenant scope plus role narrowing. Entries come back
// oldest first for timeline display.
func (h *SessionHandler) GetSessionTrail(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	entries, err := h.Service.Trail(c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []models.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// AddSessionNote handles POST /api/sessions/:id/notes.
func (h *SessionHandler) AddSessionNote(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	note, err := h.Service.AddNote(c.Param("id"), input.Content, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

package handlers

import (
	"net/http"

	"opsledger/models"
	"opsledger/services/audit"

	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the audit trail and the derived performance
// metrics. All endpoints are read-only.
type AuditHandler struct {
	Service audit.AuditService
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(svc audit.AuditService) *AuditHandler {
	return &AuditHandler{Service: svc}
}

// GetAllAuditEntries handles GET /api/audit. Platform scope only; the
// route guards with RequireGlobalScope.
func (h *AuditHandler) GetAllAuditEntries(c *gin.Context) {
	entries, err := h.Service.AllEntries()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []models.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GetPerformanceMetrics handles GET /api/audit/performance.
func (h *AuditHandler) GetPerformanceMetrics(c *gin.Context) {
	metrics, err := h.Service.PerformanceMetrics()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	type actorMetrics struct {
		Total           int `json:"total"`
		Completed       int `json:"completed"`
		EfficiencyIndex int `json:"efficiency_index"`
	}
	out := make(map[string]actorMetrics, len(metrics))
	for name, m := range metrics {
		out[name] = actorMetrics{Total: m.Total, Completed: m.Completed, EfficiencyIndex: m.EfficiencyIndex()}
	}
	c.JSON(http.StatusOK, out)
}

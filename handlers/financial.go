package handlers

import (
	"net/http"

	"opsledger/middleware"
	"opsledger/models"
	"opsledger/services/ledger"

	"github.com/gin-gonic/gin"
)

// FinancialHandler exposes ledger reporting. Non-global actors are pinned
// to their own tenant regardless of what they ask for.
type FinancialHandler struct {
	Service ledger.LedgerService
}

// NewFinancialHandler constructs a FinancialHandler.
func NewFinancialHandler(svc ledger.LedgerService) *FinancialHandler {
	return &FinancialHandler{Service: svc}
}

// scopeFor resolves the reporting scope: a global actor may pick any
// tenant via ?company_id, or omit it for the platform-wide view.
func scopeFor(c *gin.Context, actor models.Actor) string {
	if !actor.IsGlobal() {
		return actor.CompanyID
	}
	if companyID := c.Query("company_id"); companyID != "" {
		return companyID
	}
	return models.GlobalScope
}

// GetFinancialSummary handles GET /api/finance/summary.
func (h *FinancialHandler) GetFinancialSummary(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	summary, err := h.Service.Summary(scopeFor(c, actor))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetFinancialRecords handles GET /api/finance/records.
func (h *FinancialHandler) GetFinancialRecords(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authenticated actor"})
		return
	}

	records, err := h.Service.Records(scopeFor(c, actor))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if records == nil {
		records = []models.FinancialRecord{}
	}
	c.JSON(http.StatusOK, records)
}

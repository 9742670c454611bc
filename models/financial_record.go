package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRecord is an internal ledger posting. Records produced by the
// reconciliation engine carry the originating session id; at most one such
// record may exist per session.
type FinancialRecord struct {
	ID          string    `bson:"id" json:"id"`
	SessionID   string    `bson:"session_id,omitempty" json:"session_id,omitempty"`
	CompanyID   string    `bson:"company_id" json:"company_id"`
	Income      float64   `bson:"income" json:"income"`
	Expenses    float64   `bson:"expenses" json:"expenses"`
	NetProfit   float64   `bson:"net_profit" json:"net_profit"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// FinancialSummary aggregates in-scope ledger postings. Totals are summed
// with decimal arithmetic so repeated small postings do not drift.
type FinancialSummary struct {
	Scope       string          `json:"scope"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	Profit      decimal.Decimal `json:"profit"`
	Margin      string          `json:"margin"`
	RecordCount int             `json:"record_count"`
	GeneratedAt time.Time       `json:"generated_at"`
}

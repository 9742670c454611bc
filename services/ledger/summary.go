package ledger

import (
	"time"

	"opsledger/models"

	"github.com/shopspring/decimal"
)

// Records returns the in-scope postings, newest first.
func (svc *DefaultLedgerService) Records(scope string) ([]models.FinancialRecord, error) {
	if scope == models.GlobalScope {
		return svc.Repo.ListAll()
	}
	return svc.Repo.ListByCompany(scope)
}

// Summary sums the in-scope postings into revenue, expenses and profit.
// Decimal arithmetic keeps repeated small postings from drifting.
func (svc *DefaultLedgerService) Summary(scope string) (*models.FinancialSummary, error) {
	records, err := svc.Records(scope)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	expenses := decimal.Zero
	for _, r := range records {
		revenue = revenue.Add(decimal.NewFromFloat(r.Income))
		expenses = expenses.Add(decimal.NewFromFloat(r.Expenses))
	}
	profit := revenue.Sub(expenses)

	margin := "0%"
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	}

	return &models.FinancialSummary{
		Scope:       scope,
		Revenue:     revenue,
		Expenses:    expenses,
		Profit:      profit,
		Margin:      margin,
		RecordCount: len(records),
		GeneratedAt: time.Now(),
	}, nil
}

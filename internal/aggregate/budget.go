package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
)

// Status classifies how much of a budget has been used.
type Status string

// Budget statuses.
const (
	StatusSafe     Status = "safe"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// warningThreshold is the utilisation percentage above which a budget is in warning.
var warningThreshold = decimal.NewFromInt(80)

// BudgetUsage is the utilisation of one budget.
//
// Percentage is clamped to [0, 100] for progress bars; Status and ExceededBy
// are computed from the unclamped ratio.
type BudgetUsage struct {
	Budget     models.Budget   `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	ExceededBy decimal.Decimal `json:"exceededBy"`
	Status     Status          `json:"status"`
}

// BudgetStatus evaluates b against every expense of the same category. The
// period of the budget is nominal: all matching expenses count.
func BudgetStatus(b models.Budget, expenses []models.Expense) BudgetUsage {
	spent := Total(FilterByCategory(expenses, b.Category))
	return usage(b, spent)
}

func usage(b models.Budget, spent decimal.Decimal) BudgetUsage {
	raw := percentOf(spent, b.Amount)

	status := StatusSafe
	switch {
	case spent.GreaterThan(b.Amount):
		status = StatusExceeded
	case raw.GreaterThan(warningThreshold):
		status = StatusWarning
	}

	return BudgetUsage{
		Budget:     b,
		Spent:      Round(spent),
		Remaining:  Round(decimal.Max(decimal.Zero, b.Amount.Sub(spent))),
		Percentage: Round(clamp(raw, decimal.Zero, hundred)),
		ExceededBy: Round(decimal.Max(decimal.Zero, spent.Sub(b.Amount))),
		Status:     status,
	}
}

// BudgetStatuses evaluates every budget, preserving input order.
func BudgetStatuses(budgets []models.Budget, expenses []models.Expense) []BudgetUsage {
	out := make([]BudgetUsage, 0, len(budgets))
	for i := range budgets {
		out = append(out, BudgetStatus(budgets[i], expenses))
	}
	return out
}

// BudgetSummary rolls up every budget of a user.
type BudgetSummary struct {
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	Remaining       decimal.Decimal `json:"remaining"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"`
	ExceededCount   int             `json:"exceededCount"`
	OnTrackCount    int             `json:"onTrackCount"`
}

// AggregateBudgetSummary totals budgets and the spending in budgeted
// categories only. Spending in categories without a budget is ignored.
// UtilizationRate is a percentage rounded to one decimal place.
func AggregateBudgetSummary(budgets []models.Budget, expenses []models.Expense) BudgetSummary {
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero
	var exceeded, onTrack int

	for i := range budgets {
		spent := Total(FilterByCategory(expenses, budgets[i].Category))
		totalBudget = totalBudget.Add(budgets[i].Amount)
		totalSpent = totalSpent.Add(spent)
		if spent.GreaterThan(budgets[i].Amount) {
			exceeded++
		} else {
			onTrack++
		}
	}

	return BudgetSummary{
		TotalBudget:     Round(totalBudget),
		TotalSpent:      Round(totalSpent),
		Remaining:       Round(decimal.Max(decimal.Zero, totalBudget.Sub(totalSpent))),
		UtilizationRate: percentOf(totalSpent, totalBudget).Round(1),
		ExceededCount:   exceeded,
		OnTrackCount:    onTrack,
	}
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(hi, decimal.Max(lo, v))
}

// Package aggregate derives totals, breakdowns, trends and budget utilisation
// from a snapshot of expense and budget records.
//
// Every function is pure: the only notion of "now" is the reference instant
// passed by the caller, so identical inputs always give identical results.
// Sums are accumulated in full precision and rounded once, at the end, to
// two decimal places for display.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
)

// displayPlaces is the number of decimal places of every monetary output.
const displayPlaces = 2

var hundred = decimal.NewFromInt(100)

// Round rounds a monetary value for display.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(displayPlaces)
}

// MonthKey returns the zero-padded "YYYY-MM" bucket of t.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Total sums the amount of every expense. An empty input yields zero.
func Total(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total
}

// TotalForMonth sums expenses whose occurrence date falls in year/month.
func TotalForMonth(expenses []models.Expense, year int, month time.Month) decimal.Decimal {
	key := fmt.Sprintf("%04d-%02d", year, int(month))
	total := decimal.Zero
	for i := range expenses {
		if MonthKey(expenses[i].OccurredAt()) == key {
			total = total.Add(expenses[i].Amount)
		}
	}
	return total
}

// TotalForDay sums expenses that occurred on the calendar date of day. The
// time of day of both sides is ignored.
func TotalForDay(expenses []models.Expense, day time.Time) decimal.Decimal {
	target := models.NewDate(day)
	total := decimal.Zero
	for i := range expenses {
		if models.NewDate(expenses[i].OccurredAt()).Equal(target) {
			total = total.Add(expenses[i].Amount)
		}
	}
	return total
}

// TotalForRange sums expenses whose occurrence date lies within [from, to],
// both ends inclusive. A zero bound leaves that side open.
func TotalForRange(expenses []models.Expense, from, to models.Date) decimal.Decimal {
	return Total(FilterByRange(expenses, from, to))
}

// FilterByRange keeps expenses whose occurrence date lies within [from, to].
func FilterByRange(expenses []models.Expense, from, to models.Date) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for i := range expenses {
		d := models.NewDate(expenses[i].OccurredAt())
		if !from.IsZero() && d.Before(from.Time) {
			continue
		}
		if !to.IsZero() && d.After(to.Time) {
			continue
		}
		out = append(out, expenses[i])
	}
	return out
}

// FilterByMonth keeps expenses in the "YYYY-MM" bucket key. An empty key
// returns the input unchanged.
func FilterByMonth(expenses []models.Expense, key string) []models.Expense {
	if key == "" {
		return expenses
	}
	out := make([]models.Expense, 0, len(expenses))
	for i := range expenses {
		if MonthKey(expenses[i].OccurredAt()) == key {
			out = append(out, expenses[i])
		}
	}
	return out
}

// FilterByCategory keeps expenses whose category equals category exactly.
func FilterByCategory(expenses []models.Expense, category string) []models.Expense {
	out := make([]models.Expense, 0)
	for i := range expenses {
		if expenses[i].Category == category {
			out = append(out, expenses[i])
		}
	}
	return out
}

// Search keeps expenses whose category or note contains term, ignoring case.
// An empty term returns the input unchanged.
func Search(expenses []models.Expense, term string) []models.Expense {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return expenses
	}
	out := make([]models.Expense, 0)
	for i := range expenses {
		if strings.Contains(strings.ToLower(expenses[i].Category), term) ||
			strings.Contains(strings.ToLower(expenses[i].Note), term) {
			out = append(out, expenses[i])
		}
	}
	return out
}

// Dashboard holds the headline figures of the dashboard view.
type Dashboard struct {
	Total      decimal.Decimal `json:"total"`
	MonthTotal decimal.Decimal `json:"monthTotal"`
	TodayTotal decimal.Decimal `json:"todayTotal"`
	Count      int             `json:"count"`
}

// DashboardTotals computes all-time, this-month and today totals relative to now.
func DashboardTotals(expenses []models.Expense, now time.Time) Dashboard {
	return Dashboard{
		Total:      Round(Total(expenses)),
		MonthTotal: Round(TotalForMonth(expenses, now.Year(), now.Month())),
		TodayTotal: Round(TotalForDay(expenses, now)),
		Count:      len(expenses),
	}
}

// Summary holds descriptive statistics of a set of expenses.
type Summary struct {
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Max     decimal.Decimal `json:"max"`
	Min     decimal.Decimal `json:"min"`
	Count   int             `json:"count"`
}

// SummaryStats computes total, average, max, min and count. Every monetary
// value is zero for an empty input.
func SummaryStats(expenses []models.Expense) Summary {
	if len(expenses) == 0 {
		return Summary{Total: decimal.Zero, Average: decimal.Zero, Max: decimal.Zero, Min: decimal.Zero}
	}

	total := decimal.Zero
	highest := expenses[0].Amount
	lowest := expenses[0].Amount
	for i := range expenses {
		amount := expenses[i].Amount
		total = total.Add(amount)
		if amount.GreaterThan(highest) {
			highest = amount
		}
		if amount.LessThan(lowest) {
			lowest = amount
		}
	}
	count := decimal.NewFromInt(int64(len(expenses)))

	return Summary{
		Total:   Round(total),
		Average: Round(total.Div(count)),
		Max:     Round(highest),
		Min:     Round(lowest),
		Count:   len(expenses),
	}
}

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

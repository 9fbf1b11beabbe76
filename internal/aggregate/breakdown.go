package aggregate

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
)

// OtherPaymentMode labels expenses that carry no payment mode.
const OtherPaymentMode = "Other"

// Entry is one group of a breakdown.
type Entry struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

type bucket struct {
	sum   decimal.Decimal
	count int
}

// CategoryBreakdown groups expenses by category. Grouping is exact: "Food",
// "food" and "Food " are three different groups.
func CategoryBreakdown(expenses []models.Expense) []Entry {
	return breakdown(expenses, func(e models.Expense) string {
		return e.Category
	})
}

// PaymentModeBreakdown groups expenses by payment mode, labelling an empty
// mode as OtherPaymentMode.
func PaymentModeBreakdown(expenses []models.Expense) []Entry {
	return breakdown(expenses, func(e models.Expense) string {
		if e.PaymentMode == "" {
			return OtherPaymentMode
		}
		return string(e.PaymentMode)
	})
}

// breakdown sums by key and sorts by descending full-precision amount, then
// ascending name.
func breakdown(expenses []models.Expense, key func(models.Expense) string) []Entry {
	buckets := make(map[string]*bucket)
	total := decimal.Zero
	for i := range expenses {
		k := key(expenses[i])
		b, ok := buckets[k]
		if !ok {
			b = &bucket{sum: decimal.Zero}
			buckets[k] = b
		}
		b.sum = b.sum.Add(expenses[i].Amount)
		b.count++
		total = total.Add(expenses[i].Amount)
	}

	type keyed struct {
		name string
		*bucket
	}
	sorted := make([]keyed, 0, len(buckets))
	for name, b := range buckets {
		sorted = append(sorted, keyed{name: name, bucket: b})
	}
	slices.SortFunc(sorted, func(a, b keyed) int {
		if c := b.sum.Cmp(a.sum); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	entries := make([]Entry, 0, len(sorted))
	for _, k := range sorted {
		entries = append(entries, Entry{
			Name:       k.name,
			Amount:     Round(k.sum),
			Count:      k.count,
			Percentage: Round(percentOf(k.sum, total)),
		})
	}
	return entries
}

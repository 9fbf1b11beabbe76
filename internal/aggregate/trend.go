package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
)

// MaxTrendMonths is the number of most recent months kept by MonthlyTrend.
const MaxTrendMonths = 12

// MonthPoint is the total of one calendar month.
type MonthPoint struct {
	Month string          `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// DayPoint is the total of one day of a month.
type DayPoint struct {
	Day   int             `json:"day"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyTrend totals expenses per month, oldest first, keeping only the
// last MaxTrendMonths months that have at least one expense. Months without
// expenses are not synthesised.
func MonthlyTrend(expenses []models.Expense) []MonthPoint {
	sums := make(map[string]decimal.Decimal)
	for i := range expenses {
		key := MonthKey(expenses[i].OccurredAt())
		sums[key] = sums[key].Add(expenses[i].Amount)
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if len(keys) > MaxTrendMonths {
		keys = keys[len(keys)-MaxTrendMonths:]
	}

	points := make([]MonthPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, MonthPoint{
			Month: k,
			Label: monthLabel(k),
			Total: Round(sums[k]),
		})
	}
	return points
}

// DailyTrend totals expenses per day of the calendar month containing now,
// in ascending day order. Days without expenses are omitted.
func DailyTrend(expenses []models.Expense, now time.Time) []DayPoint {
	current := MonthKey(now)
	sums := make(map[int]decimal.Decimal)
	for i := range expenses {
		at := expenses[i].OccurredAt()
		if MonthKey(at) != current {
			continue
		}
		sums[at.Day()] = sums[at.Day()].Add(expenses[i].Amount)
	}

	points := make([]DayPoint, 0, len(sums))
	for day, sum := range sums {
		points = append(points, DayPoint{
			Day:   day,
			Label: fmt.Sprintf("Day %d", day),
			Total: Round(sum),
		})
	}
	slices.SortFunc(points, func(a, b DayPoint) int {
		return cmp.Compare(a.Day, b.Day)
	})
	return points
}

func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

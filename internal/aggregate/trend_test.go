package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spendwise/expense-api/internal/models"
)

func TestMonthlyTrend(t *testing.T) {
	t.Parallel()

	t.Run("groups and sorts months ascending", func(t *testing.T) {
		t.Parallel()
		points := MonthlyTrend([]models.Expense{
			expense("5", "Food", "2024-04-02"),
			expense("10", "Food", "2024-03-01"),
			expense("15", "Food", "2024-03-20"),
			expense("1", "Food", "2023-12-31"),
		})

		require.Len(t, points, 3)
		require.Equal(t, "2023-12", points[0].Month)
		require.Equal(t, "Dec 2023", points[0].Label)
		require.Equal(t, "2024-03", points[1].Month)
		require.True(t, decEqual("25", points[1].Total))
		require.Equal(t, "2024-04", points[2].Month)
	})

	t.Run("does not synthesise empty months", func(t *testing.T) {
		t.Parallel()
		points := MonthlyTrend([]models.Expense{
			expense("1", "Food", "2024-01-01"),
			expense("1", "Food", "2024-06-01"),
		})
		require.Len(t, points, 2)
	})

	t.Run("keeps the most recent twelve months", func(t *testing.T) {
		t.Parallel()
		var expenses []models.Expense
		for i := range 15 {
			d := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
			expenses = append(expenses, expense(fmt.Sprint(i+1), "Food", d.Format(models.DateLayout)))
		}

		points := MonthlyTrend(expenses)
		require.Len(t, points, MaxTrendMonths)
		require.Equal(t, "2023-04", points[0].Month)
		require.Equal(t, "2024-03", points[len(points)-1].Month)
	})
}

func TestDailyTrend(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	points := DailyTrend([]models.Expense{
		expense("3", "Food", "2024-03-15"),
		expense("2", "Food", "2024-03-01"),
		expense("4", "Food", "2024-03-15"),
		expense("100", "Food", "2024-02-15"),
		expense("100", "Food", "2023-03-15"),
	}, now)

	require.Len(t, points, 2)
	require.Equal(t, 1, points[0].Day)
	require.Equal(t, "Day 1", points[0].Label)
	require.Equal(t, 15, points[1].Day)
	require.True(t, decEqual("7", points[1].Total))
}

package report

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/expense-api/internal/aggregate"
	"github.com/spendwise/expense-api/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPieChart(t *testing.T) {
	t.Parallel()

	t.Run("renders a png", func(t *testing.T) {
		t.Parallel()
		entries := []aggregate.Entry{
			{Name: "Food", Amount: decimal.RequireFromString("120.50")},
			{Name: "Transport", Amount: decimal.RequireFromString("30")},
		}
		png, err := PieChart(entries, ChartTitle("Spending by Category", "2024-03"))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(png, pngMagic))
	})

	t.Run("empty breakdown has no data", func(t *testing.T) {
		t.Parallel()
		_, err := PieChart(nil, "empty")
		require.ErrorIs(t, err, ErrNoData)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("zero slices are skipped", func(t *testing.T) {
		t.Parallel()
		_, err := PieChart([]aggregate.Entry{{Name: "Food", Amount: decimal.Zero}}, "zeros")
		require.ErrorIs(t, err, ErrNoData)
	})
}

func TestChartTitle(t *testing.T) {
	t.Parallel()
	require.Equal(t, "Payments - All Time", ChartTitle("Payments", ""))
	require.Equal(t, "Payments - 2024-03", ChartTitle("Payments", "2024-03"))
}

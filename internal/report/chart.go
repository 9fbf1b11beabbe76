package report

import (
	"fmt"

	"github.com/go-analyze/charts"

	"github.com/spendwise/expense-api/internal/aggregate"
	"github.com/spendwise/expense-api/internal/models"
)

// ErrNoData is returned when a chart would have no slices.
var ErrNoData = fmt.Errorf("no expenses to chart: %w", models.ErrNotFound)

// PieChart renders a breakdown as a PNG pie chart titled title. Slices follow
// the order of entries.
func PieChart(entries []aggregate.Entry, title string) ([]byte, error) {
	values := make([]float64, 0, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Amount.IsPositive() {
			continue
		}
		values = append(values, e.Amount.InexactFloat64())
		names = append(names, e.Name)
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

// ChartTitle labels a chart for month, or for all time when month is empty.
func ChartTitle(subject, month string) string {
	if month == "" {
		return fmt.Sprintf("%s - All Time", subject)
	}
	return fmt.Sprintf("%s - %s", subject, month)
}

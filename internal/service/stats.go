package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/spendwise/expense-api/internal/aggregate"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/repository"
)

// Overview is the statistics view over a set of expenses.
type Overview struct {
	Month        string                 `json:"month,omitempty"`
	Summary      aggregate.Summary      `json:"summary"`
	Categories   []aggregate.Entry      `json:"categories"`
	PaymentModes []aggregate.Entry      `json:"paymentModes"`
	MonthlyTrend []aggregate.MonthPoint `json:"monthlyTrend"`
	DailyTrend   []aggregate.DayPoint   `json:"dailyTrend"`
}

// Stats computes dashboard and statistics views relative to a clock in a
// fixed location.
type Stats struct {
	expenses repository.ExpenseStore
	now      Clock
	loc      *time.Location
}

// NewStats creates a Stats service. A nil now uses time.Now and a nil loc UTC.
func NewStats(expenses repository.ExpenseStore, now Clock, loc *time.Location) *Stats {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Stats{expenses: expenses, now: now, loc: loc}
}

// Now returns the reference instant in the configured location.
func (s *Stats) Now() time.Time {
	return s.now().In(s.loc)
}

// Dashboard returns all-time, this-month and today totals.
func (s *Stats) Dashboard(ctx context.Context, userID string) (*aggregate.Dashboard, error) {
	expenses, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	d := aggregate.DashboardTotals(expenses, s.Now())
	return &d, nil
}

// Overview returns summary, breakdowns and trends. A non-empty month
// ("YYYY-MM") restricts every figure to that month; the daily trend then
// follows that month instead of the current one.
func (s *Stats) Overview(ctx context.Context, userID, month string) (*Overview, error) {
	ctx, span := tracer.Start(ctx, "stats.overview")
	defer span.End()

	expenses, err := s.Expenses(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("expenses.count", len(expenses)))

	ref := s.Now()
	if month != "" {
		ref, _ = time.ParseInLocation("2006-01", month, s.loc)
	}

	return &Overview{
		Month:        month,
		Summary:      aggregate.SummaryStats(expenses),
		Categories:   aggregate.CategoryBreakdown(expenses),
		PaymentModes: aggregate.PaymentModeBreakdown(expenses),
		MonthlyTrend: aggregate.MonthlyTrend(expenses),
		DailyTrend:   aggregate.DailyTrend(expenses, ref),
	}, nil
}

// Expenses returns the owner's expenses, newest first, restricted to month
// when it is non-empty.
func (s *Stats) Expenses(ctx context.Context, userID, month string) ([]models.Expense, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}
	expenses, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregate.FilterByMonth(expenses, month), nil
}

func (s *Stats) load(ctx context.Context, userID string) ([]models.Expense, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// validateMonth accepts "" or a "YYYY-MM" key.
func validateMonth(month string) error {
	if month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return models.NewValidationError("month", "must be formatted as YYYY-MM")
	}
	return nil
}

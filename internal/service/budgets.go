package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/aggregate"
	"github.com/spendwise/expense-api/internal/logger"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/repository"
)

// NewBudget is the input of Budgets.Create.
type NewBudget struct {
	Category string
	Amount   *decimal.Decimal
	Period   models.BudgetPeriod
}

// BudgetReport is the utilisation of every budget plus the roll-up.
type BudgetReport struct {
	Budgets []aggregate.BudgetUsage `json:"budgets"`
	Summary aggregate.BudgetSummary `json:"summary"`
}

// Budgets is the owner-scoped budget store.
type Budgets struct {
	store    repository.BudgetStore
	expenses repository.ExpenseStore
	log      zerolog.Logger
}

// NewBudgets creates a Budgets service. expenses is read when computing
// utilisation.
func NewBudgets(store repository.BudgetStore, expenses repository.ExpenseStore) *Budgets {
	return &Budgets{store: store, expenses: expenses, log: logger.Component("budgets")}
}

// Create stores a new budget. The amount must be strictly positive and only
// one budget may exist per category.
func (s *Budgets) Create(ctx context.Context, userID string, in NewBudget) (*models.Budget, error) {
	amount, err := requireAmount("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, models.NewValidationError("amount", "must be greater than zero")
	}
	if amount, err = normalizeAmount(amount); err != nil {
		return nil, err
	}
	if err := validateCategory(in.Category); err != nil {
		return nil, err
	}
	period := in.Period
	if period == "" {
		period = models.PeriodMonthly
	}
	if !period.Valid() {
		return nil, models.NewValidationError("period", "must be one of monthly, quarterly, yearly")
	}

	b := &models.Budget{UserID: userID, Category: in.Category, Amount: amount, Period: period}
	err = s.store.Create(ctx, b)
	recordMutation(ctx, "budget", "create", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.log.Debug().
		Str("user", logger.HashUserID(userID)).
		Str("budget_id", b.ID).
		Str("category", logger.SanitizeText(b.Category)).
		Msg("Budget created")
	return b, nil
}

// List returns the owner's budgets.
func (s *Budgets) List(ctx context.Context, userID string) ([]models.Budget, error) {
	budgets, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// Update changes the amount and/or period of one of the owner's budgets.
func (s *Budgets) Update(ctx context.Context, userID, id string, patch models.BudgetPatch) (*models.Budget, error) {
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, models.NewValidationError("amount", "must be greater than zero")
		}
		amount, err := normalizeAmount(*patch.Amount)
		if err != nil {
			return nil, err
		}
		patch.Amount = &amount
	}
	if patch.Period != nil && !patch.Period.Valid() {
		return nil, models.NewValidationError("period", "must be one of monthly, quarterly, yearly")
	}
	b, err := s.store.Update(ctx, userID, id, patch)
	recordMutation(ctx, "budget", "update", err)
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return b, nil
}

// Delete removes one of the owner's budgets.
func (s *Budgets) Delete(ctx context.Context, userID, id string) error {
	err := s.store.Delete(ctx, userID, id)
	recordMutation(ctx, "budget", "delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

// Status computes utilisation of every budget against all of the owner's
// expenses. Periods are nominal; spending is never reset per period.
func (s *Budgets) Status(ctx context.Context, userID string) (*BudgetReport, error) {
	ctx, span := tracer.Start(ctx, "budgets.status")
	defer span.End()

	budgets, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &BudgetReport{
		Budgets: aggregate.BudgetStatuses(budgets, expenses),
		Summary: aggregate.AggregateBudgetSummary(budgets, expenses),
	}, nil
}

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

// NewExpense is the input of Expenses.Create. Amount is a pointer so a
// missing value can be told apart from zero.
type NewExpense struct {
	Amount      *decimal.Decimal
	Category    string
	Date        models.Date
	Note        string
	PaymentMode models.PaymentMode
}

// ListFilter narrows Expenses.List. Zero values disable each filter.
type ListFilter struct {
	Month  string
	Search string
}

// Expenses is the owner-scoped expense store.
type Expenses struct {
	store repository.ExpenseStore
	log   zerolog.Logger
}

// NewExpenses creates an Expenses service over store.
func NewExpenses(store repository.ExpenseStore) *Expenses {
	return &Expenses{store: store, log: logger.Component("expenses")}
}

// Create validates in and stores a new expense owned by userID.
func (s *Expenses) Create(ctx context.Context, userID string, in NewExpense) (*models.Expense, error) {
	amount, err := requireAmount("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, models.NewValidationError("amount", "must not be negative")
	}
	if amount, err = normalizeAmount(amount); err != nil {
		return nil, err
	}
	if err := validateCategory(in.Category); err != nil {
		return nil, err
	}
	if err := validateNote(in.Note); err != nil {
		return nil, err
	}
	mode := in.PaymentMode
	if mode == "" {
		mode = models.PaymentCash
	}
	if !mode.Valid() {
		return nil, models.NewValidationError("paymentMode", "must be one of Cash, Card, UPI")
	}

	e := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    in.Category,
		Date:        in.Date,
		Note:        in.Note,
		PaymentMode: mode,
	}
	err = s.store.Create(ctx, e)
	recordMutation(ctx, "expense", "create", err)
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	s.log.Debug().
		Str("user", logger.HashUserID(userID)).
		Str("expense_id", e.ID).
		Str("category", logger.SanitizeText(e.Category)).
		Msg("Expense created")
	return e, nil
}

// List returns the owner's expenses newest first, optionally narrowed by f.
func (s *Expenses) List(ctx context.Context, userID string, f ListFilter) ([]models.Expense, error) {
	if f.Month != "" {
		if err := validateMonth(f.Month); err != nil {
			return nil, err
		}
	}
	expenses, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	expenses = aggregate.FilterByMonth(expenses, f.Month)
	return aggregate.Search(expenses, f.Search), nil
}

// Get returns one of the owner's expenses.
func (s *Expenses) Get(ctx context.Context, userID, id string) (*models.Expense, error) {
	e, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// Update applies patch to one of the owner's expenses. Fields left nil keep
// their stored values.
func (s *Expenses) Update(ctx context.Context, userID, id string, patch models.ExpensePatch) (*models.Expense, error) {
	if err := validateExpensePatch(&patch); err != nil {
		return nil, err
	}
	e, err := s.store.Update(ctx, userID, id, patch)
	recordMutation(ctx, "expense", "update", err)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	s.log.Debug().Str("user", logger.HashUserID(userID)).Str("expense_id", id).Msg("Expense updated")
	return e, nil
}

// Delete removes one of the owner's expenses. Deleting twice fails with
// models.ErrNotFound.
func (s *Expenses) Delete(ctx context.Context, userID, id string) error {
	err := s.store.Delete(ctx, userID, id)
	recordMutation(ctx, "expense", "delete", err)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.log.Debug().Str("user", logger.HashUserID(userID)).Str("expense_id", id).Msg("Expense deleted")
	return nil
}

// validateExpensePatch checks p and normalizes its amount in place.
func validateExpensePatch(p *models.ExpensePatch) error {
	if p.Amount != nil {
		if p.Amount.IsNegative() {
			return models.NewValidationError("amount", "must not be negative")
		}
		amount, err := normalizeAmount(*p.Amount)
		if err != nil {
			return err
		}
		p.Amount = &amount
	}
	if p.Category != nil {
		if err := validateCategory(*p.Category); err != nil {
			return err
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		return models.NewValidationError("date", "must be a valid date")
	}
	if p.Note != nil {
		if err := validateNote(*p.Note); err != nil {
			return err
		}
	}
	if p.PaymentMode != nil && !p.PaymentMode.Valid() {
		return models.NewValidationError("paymentMode", "must be one of Cash, Card, UPI")
	}
	return nil
}

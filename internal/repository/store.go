// Package repository holds the persistence layer: the store contracts used by
// the service layer and their PostgreSQL implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spendwise/expense-api/internal/models"
)

// UserStore persists accounts.
type UserStore interface {
	// Create stores u, assigning ID and CreatedAt. A duplicate email yields
	// models.ErrConflict.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ExpenseStore persists expenses. Every read and write is scoped to one
// owner; records of other users behave as if they did not exist.
type ExpenseStore interface {
	// Create stores e, assigning ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, e *models.Expense) error
	// ListByUser returns the owner's expenses, newest occurrence first with
	// ties broken by most recent creation.
	ListByUser(ctx context.Context, userID string) ([]models.Expense, error)
	GetByID(ctx context.Context, userID, id string) (*models.Expense, error)
	Update(ctx context.Context, userID, id string, patch models.ExpensePatch) (*models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}

// BudgetStore persists budgets. At most one budget exists per owner and
// category; a second one yields models.ErrConflict.
type BudgetStore interface {
	Create(ctx context.Context, b *models.Budget) error
	// ListByUser returns the owner's budgets, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]models.Budget, error)
	Update(ctx context.Context, userID, id string, patch models.BudgetPatch) (*models.Budget, error)
	Delete(ctx context.Context, userID, id string) error
}

var (
	_ UserStore    = (*UserRepository)(nil)
	_ ExpenseStore = (*ExpenseRepository)(nil)
	_ BudgetStore  = (*BudgetRepository)(nil)
)

const (
	uniqueViolation   = "23505"
	checkViolation    = "23514"
	numericOutOfRange = "22003"
)

// translateError maps driver errors onto the model sentinels.
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return models.ErrConflict
		case checkViolation, numericOutOfRange:
			return fmt.Errorf("%w: %s", models.ErrValidation, pgErr.Message)
		}
	}
	return err
}

// validID reports whether id can name a stored record. Malformed ids can
// never match and are reported as not found without a round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

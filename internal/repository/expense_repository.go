package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spendwise/expense-api/internal/database"
	"github.com/spendwise/expense-api/internal/models"
)

const expenseColumns = `id, user_id, amount, category, occurred_on, note, payment_mode, created_at, updated_at`

// ExpenseRepository handles expense database operations.
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create adds a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.PaymentMode == "" {
		expense.PaymentMode = models.PaymentCash
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (id, user_id, amount, category, occurred_on, note, payment_mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, expense.ID, expense.UserID, expense.Amount, expense.Category,
		dateArg(expense.Date), expense.Note, string(expense.PaymentMode),
	).Scan(&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", translateError(err))
	}
	return nil
}

// GetByID retrieves one of the owner's expenses.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id string) (*models.Expense, error) {
	if !validID(id) || !validID(userID) {
		return nil, fmt.Errorf("failed to get expense: %w", models.ErrNotFound)
	}
	exp, err := scanExpense(r.db.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses WHERE id = $1 AND user_id = $2
	`, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", translateError(err))
	}
	return exp, nil
}

// ListByUser retrieves all expenses for a user, newest occurrence first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	if !validID(userID) {
		return []models.Expense{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE user_id = $1
		ORDER BY COALESCE(occurred_on, (created_at AT TIME ZONE 'UTC')::date) DESC, created_at DESC, seq DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenses(rows)
}

// Update applies patch to one of the owner's expenses and returns the stored
// result. Fields left nil in the patch keep their stored values.
func (r *ExpenseRepository) Update(
	ctx context.Context,
	userID, id string,
	patch models.ExpensePatch,
) (*models.Expense, error) {
	if !validID(id) || !validID(userID) {
		return nil, fmt.Errorf("failed to update expense: %w", models.ErrNotFound)
	}

	var occurredOn *time.Time
	if patch.Date != nil {
		occurredOn = dateArg(*patch.Date)
	}
	var paymentMode *string
	if patch.PaymentMode != nil {
		s := string(*patch.PaymentMode)
		paymentMode = &s
	}

	exp, err := scanExpense(r.db.QueryRow(ctx, `
		UPDATE expenses SET
			amount = COALESCE($3, amount),
			category = COALESCE($4, category),
			occurred_on = COALESCE($5::date, occurred_on),
			note = COALESCE($6, note),
			payment_mode = COALESCE($7, payment_mode),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+expenseColumns+`
	`, id, userID, patch.Amount, patch.Category, occurredOn, patch.Note, paymentMode))
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", translateError(err))
	}
	return exp, nil
}

// Delete removes one of the owner's expenses.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) || !validID(userID) {
		return fmt.Errorf("failed to delete expense: %w", models.ErrNotFound)
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM expenses WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete expense: %w", models.ErrNotFound)
	}
	return nil
}

func dateArg(d models.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var exp models.Expense
	var occurredOn *time.Time
	var paymentMode string
	if err := row.Scan(
		&exp.ID, &exp.UserID, &exp.Amount, &exp.Category, &occurredOn,
		&exp.Note, &paymentMode, &exp.CreatedAt, &exp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if occurredOn != nil {
		exp.Date = models.NewDate(*occurredOn)
	}
	exp.PaymentMode = models.PaymentMode(paymentMode)
	return &exp, nil
}

func scanExpenses(rows pgx.Rows) ([]models.Expense, error) {
	expenses := []models.Expense{}
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

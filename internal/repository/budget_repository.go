package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spendwise/expense-api/internal/database"
	"github.com/spendwise/expense-api/internal/models"
)

const budgetColumns = `id, user_id, category, amount, period, created_at, updated_at`

// BudgetRepository handles budget database operations.
type BudgetRepository struct {
	db database.PGXDB
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db database.PGXDB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create adds a new budget. A second budget for the same owner and category
// returns models.ErrConflict.
func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	if budget.Period == "" {
		budget.Period = models.PeriodMonthly
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO budgets (id, user_id, category, amount, period)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, budget.ID, budget.UserID, budget.Category, budget.Amount, string(budget.Period),
	).Scan(&budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", translateError(err))
	}
	return nil
}

// ListByUser retrieves all budgets for a user, most recently created first.
func (r *BudgetRepository) ListByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	if !validID(userID) {
		return []models.Budget{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at DESC, category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}
	return budgets, nil
}

// Update changes the amount and/or period of one of the owner's budgets.
func (r *BudgetRepository) Update(
	ctx context.Context,
	userID, id string,
	patch models.BudgetPatch,
) (*models.Budget, error) {
	if !validID(id) || !validID(userID) {
		return nil, fmt.Errorf("failed to update budget: %w", models.ErrNotFound)
	}
	var period *string
	if patch.Period != nil {
		s := string(*patch.Period)
		period = &s
	}
	b, err := scanBudget(r.db.QueryRow(ctx, `
		UPDATE budgets SET
			amount = COALESCE($3, amount),
			period = COALESCE($4, period),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+budgetColumns+`
	`, id, userID, patch.Amount, period))
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", translateError(err))
	}
	return b, nil
}

// Delete removes one of the owner's budgets.
func (r *BudgetRepository) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) || !validID(userID) {
		return fmt.Errorf("failed to delete budget: %w", models.ErrNotFound)
	}
	tag, err := r.db.Exec(ctx, `
		DELETE FROM budgets WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete budget: %w", models.ErrNotFound)
	}
	return nil
}

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	var period string
	if err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &period, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Period = models.BudgetPeriod(period)
	return &b, nil
}

package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/spendwise/expense-api/internal/database"
	"github.com/spendwise/expense-api/internal/models"
)

type testRepos struct {
	users    *UserRepository
	expenses *ExpenseRepository
	budgets  *BudgetRepository
}

// setupRepos opens a rolled-back transaction and builds repositories on it.
func setupRepos(t *testing.T) (testRepos, context.Context) {
	t.Helper()
	tx := database.TestTx(t)
	return testRepos{
		users:    NewUserRepository(tx),
		expenses: NewExpenseRepository(tx),
		budgets:  NewBudgetRepository(tx),
	}, context.Background()
}

func createUser(t *testing.T, ctx context.Context, users *UserRepository, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Test User", Email: email, PasswordHash: []byte("hash")}
	require.NoError(t, users.Create(ctx, u))
	return u
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

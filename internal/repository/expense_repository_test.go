package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/spendwise/expense-api/internal/models"
)

func TestExpenseRepository_Create(t *testing.T) {
	repos, ctx := setupRepos(t)
	user := createUser(t, ctx, repos.users, "exp-create@example.com")

	t.Run("stores all fields", func(t *testing.T) {
		e := &models.Expense{
			UserID:      user.ID,
			Amount:      dec("12.50"),
			Category:    "Food",
			Date:        models.MustDate("2024-03-05"),
			Note:        "lunch",
			PaymentMode: models.PaymentCard,
		}
		require.NoError(t, repos.expenses.Create(ctx, e))
		require.NotEmpty(t, e.ID)
		require.False(t, e.CreatedAt.IsZero())

		got, err := repos.expenses.GetByID(ctx, user.ID, e.ID)
		require.NoError(t, err)
		require.True(t, got.Amount.Equal(dec("12.50")))
		require.Equal(t, "Food", got.Category)
		require.Equal(t, "2024-03-05", got.Date.String())
		require.Equal(t, "lunch", got.Note)
		require.Equal(t, models.PaymentCard, got.PaymentMode)
	})

	t.Run("defaults payment mode to cash", func(t *testing.T) {
		e := &models.Expense{UserID: user.ID, Amount: dec("1"), Category: "Other"}
		require.NoError(t, repos.expenses.Create(ctx, e))

		got, err := repos.expenses.GetByID(ctx, user.ID, e.ID)
		require.NoError(t, err)
		require.Equal(t, models.PaymentCash, got.PaymentMode)
		require.True(t, got.Date.IsZero())
	})
}

func TestExpenseRepository_CreateOverflow(t *testing.T) {
	repos, ctx := setupRepos(t)
	user := createUser(t, ctx, repos.users, "exp-overflow@example.com")

	e := &models.Expense{UserID: user.ID, Amount: dec("10000000000"), Category: "Food"}
	err := repos.expenses.Create(ctx, e)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestExpenseRepository_ListByUser(t *testing.T) {
	repos, ctx := setupRepos(t)
	alice := createUser(t, ctx, repos.users, "list-alice@example.com")
	bob := createUser(t, ctx, repos.users, "list-bob@example.com")

	mk := func(userID, date, amount string) *models.Expense {
		e := &models.Expense{UserID: userID, Amount: dec(amount), Category: "Food", Date: models.MustDate(date)}
		require.NoError(t, repos.expenses.Create(ctx, e))
		return e
	}

	older := mk(alice.ID, "2024-01-10", "1")
	first := mk(alice.ID, "2024-02-01", "2")
	second := mk(alice.ID, "2024-02-01", "3")
	mk(bob.ID, "2024-03-01", "4")

	t.Run("orders by date then creation", func(t *testing.T) {
		list, err := repos.expenses.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)
		require.Equal(t, older.ID, list[2].ID)
	})

	t.Run("excludes other owners", func(t *testing.T) {
		list, err := repos.expenses.ListByUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, bob.ID, list[0].UserID)
	})

	t.Run("empty for unknown user", func(t *testing.T) {
		list, err := repos.expenses.ListByUser(ctx, uuid.NewString())
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestExpenseRepository_Update(t *testing.T) {
	repos, ctx := setupRepos(t)
	alice := createUser(t, ctx, repos.users, "upd-alice@example.com")
	bob := createUser(t, ctx, repos.users, "upd-bob@example.com")

	e := &models.Expense{
		UserID:   alice.ID,
		Amount:   dec("10"),
		Category: "Food",
		Date:     models.MustDate("2024-01-01"),
		Note:     "original",
	}
	require.NoError(t, repos.expenses.Create(ctx, e))

	t.Run("changes only patched fields", func(t *testing.T) {
		amount := dec("42.10")
		updated, err := repos.expenses.Update(ctx, alice.ID, e.ID, models.ExpensePatch{Amount: &amount})
		require.NoError(t, err)
		require.True(t, updated.Amount.Equal(amount))
		require.Equal(t, "Food", updated.Category)
		require.Equal(t, "original", updated.Note)
		require.Equal(t, "2024-01-01", updated.Date.String())
	})

	t.Run("changes date and payment mode", func(t *testing.T) {
		d := models.MustDate("2024-06-30")
		mode := models.PaymentUPI
		updated, err := repos.expenses.Update(ctx, alice.ID, e.ID, models.ExpensePatch{Date: &d, PaymentMode: &mode})
		require.NoError(t, err)
		require.Equal(t, "2024-06-30", updated.Date.String())
		require.Equal(t, models.PaymentUPI, updated.PaymentMode)
	})

	t.Run("other owner gets not found and record is unchanged", func(t *testing.T) {
		cat := "Bills"
		_, err := repos.expenses.Update(ctx, bob.ID, e.ID, models.ExpensePatch{Category: &cat})
		require.ErrorIs(t, err, models.ErrNotFound)

		got, err := repos.expenses.GetByID(ctx, alice.ID, e.ID)
		require.NoError(t, err)
		require.Equal(t, "Food", got.Category)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		_, err := repos.expenses.Update(ctx, alice.ID, "42", models.ExpensePatch{})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestExpenseRepository_Delete(t *testing.T) {
	repos, ctx := setupRepos(t)
	alice := createUser(t, ctx, repos.users, "del-alice@example.com")
	bob := createUser(t, ctx, repos.users, "del-bob@example.com")

	e := &models.Expense{UserID: alice.ID, Amount: dec("5"), Category: "Food"}
	require.NoError(t, repos.expenses.Create(ctx, e))

	t.Run("other owner cannot delete", func(t *testing.T) {
		err := repos.expenses.Delete(ctx, bob.ID, e.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("owner deletes once", func(t *testing.T) {
		require.NoError(t, repos.expenses.Delete(ctx, alice.ID, e.ID))

		err := repos.expenses.Delete(ctx, alice.ID, e.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spendwise/expense-api/internal/models"
)

var refNow = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

func TestExpenses_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores a valid expense with defaults", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)

		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{
			Amount:   amount("12.34"),
			Category: "Food",
			Date:     models.MustDate("2024-03-01"),
		})
		require.NoError(t, err)
		require.NotEmpty(t, e.ID)
		require.Equal(t, "alice", e.UserID)
		require.Equal(t, models.PaymentCash, e.PaymentMode)
		require.False(t, e.CreatedAt.IsZero())
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		_, err := f.expenseSvc.Create(ctx, "alice", NewExpense{Amount: amount("0"), Category: "Food"})
		require.NoError(t, err)
	})

	tests := []struct {
		name  string
		in    NewExpense
		field string
	}{
		{"missing amount", NewExpense{Category: "Food"}, "amount"},
		{"negative amount", NewExpense{Amount: amount("-0.01"), Category: "Food"}, "amount"},
		{"sub-cent amount", NewExpense{Amount: amount("10.005"), Category: "Food"}, "amount"},
		{"oversized amount", NewExpense{Amount: amount("1e10"), Category: "Food"}, "amount"},
		{"empty category", NewExpense{Amount: amount("1"), Category: ""}, "category"},
		{"blank category", NewExpense{Amount: amount("1"), Category: "   "}, "category"},
		{"long category", NewExpense{Amount: amount("1"), Category: strings.Repeat("x", models.MaxCategoryLength+1)}, "category"},
		{"long note", NewExpense{Amount: amount("1"), Category: "Food", Note: strings.Repeat("n", models.MaxNoteLength+1)}, "note"},
		{"unknown payment mode", NewExpense{Amount: amount("1"), Category: "Food", PaymentMode: "Cheque"}, "paymentMode"},
	}
	for _, tc := range tests {
		t.Run(tc.name+" is rejected", func(t *testing.T) {
			t.Parallel()
			f := newFixture(refNow)

			_, err := f.expenseSvc.Create(ctx, "alice", tc.in)
			require.ErrorIs(t, err, models.ErrValidation)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)

			list, err := f.expenseSvc.List(ctx, "alice", ListFilter{})
			require.NoError(t, err)
			require.Empty(t, list)
		})
	}

	t.Run("trailing zeros beyond cents are accepted", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{Amount: amount("9999999999.990"), Category: "Food"})
		require.NoError(t, err)
		require.True(t, e.Amount.Equal(*amount("9999999999.99")))
	})

	t.Run("categories are stored verbatim", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{Amount: amount("1"), Category: " food "})
		require.NoError(t, err)
		require.Equal(t, " food ", e.Category)
	})
}

func TestExpenses_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(refNow)

	add := func(user, category, date, note string) {
		_, err := f.expenseSvc.Create(ctx, user, NewExpense{
			Amount:   amount("5"),
			Category: category,
			Date:     models.MustDate(date),
			Note:     note,
		})
		require.NoError(t, err)
	}
	add("alice", "Food", "2024-02-10", "groceries")
	add("alice", "Transport", "2024-03-02", "bus pass")
	add("alice", "Food", "2024-03-05", "Pizza night")
	add("bob", "Food", "2024-03-06", "")

	t.Run("newest first and owner scoped", func(t *testing.T) {
		list, err := f.expenseSvc.List(ctx, "alice", ListFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		require.Equal(t, "2024-03-05", list[0].Date.String())
		require.Equal(t, "2024-02-10", list[2].Date.String())
	})

	t.Run("month filter", func(t *testing.T) {
		list, err := f.expenseSvc.List(ctx, "alice", ListFilter{Month: "2024-03"})
		require.NoError(t, err)
		require.Len(t, list, 2)
	})

	t.Run("search ignores case", func(t *testing.T) {
		list, err := f.expenseSvc.List(ctx, "alice", ListFilter{Search: "PIZZA"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Pizza night", list[0].Note)
	})

	t.Run("malformed month is rejected", func(t *testing.T) {
		_, err := f.expenseSvc.List(ctx, "alice", ListFilter{Month: "March"})
		require.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestExpenses_UpdateDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{
			Amount: amount("10"), Category: "Food", Date: models.MustDate("2024-03-01"), Note: "n",
		})
		require.NoError(t, err)

		got, err := f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{Category: ptr("Bills")})
		require.NoError(t, err)
		require.Equal(t, "Bills", got.Category)
		require.True(t, got.Amount.Equal(*amount("10")))
		require.Equal(t, "n", got.Note)
		require.Equal(t, "2024-03-01", got.Date.String())
	})

	t.Run("update by another user is not found and leaves record unchanged", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{Amount: amount("10"), Category: "Food"})
		require.NoError(t, err)

		_, err = f.expenseSvc.Update(ctx, "mallory", e.ID, models.ExpensePatch{Amount: amount("999")})
		require.ErrorIs(t, err, models.ErrNotFound)

		got, err := f.expenseSvc.Get(ctx, "alice", e.ID)
		require.NoError(t, err)
		require.True(t, got.Amount.Equal(*amount("10")))
	})

	t.Run("invalid patch is rejected before the store", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{Amount: amount("10"), Category: "Food"})
		require.NoError(t, err)

		_, err = f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{Amount: amount("-1")})
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{Amount: amount("0.001")})
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{Amount: amount("1e30")})
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{Category: ptr("")})
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{Date: &models.Date{}})
		require.ErrorIs(t, err, models.ErrValidation)
		_, err = f.expenseSvc.Update(ctx, "alice", e.ID, models.ExpensePatch{PaymentMode: ptr(models.PaymentMode("Gold"))})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(refNow)
		e, err := f.expenseSvc.Create(ctx, "alice", NewExpense{Amount: amount("10"), Category: "Food"})
		require.NoError(t, err)

		require.ErrorIs(t, f.expenseSvc.Delete(ctx, "bob", e.ID), models.ErrNotFound)
		require.NoError(t, f.expenseSvc.Delete(ctx, "alice", e.ID))
		require.ErrorIs(t, f.expenseSvc.Delete(ctx, "alice", e.ID), models.ErrNotFound)
	})
}

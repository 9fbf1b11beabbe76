package repository

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/spendwise/expense-api/internal/models"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	t.Run("no rows becomes not found", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, translateError(pgx.ErrNoRows), models.ErrNotFound)
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
		require.ErrorIs(t, translateError(err), models.ErrConflict)
	})

	t.Run("numeric overflow becomes validation", func(t *testing.T) {
		t.Parallel()
		err := translateError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})
		require.ErrorIs(t, err, models.ErrValidation)
		require.Contains(t, err.Error(), "numeric field overflow")
	})

	t.Run("check violation becomes validation", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, translateError(&pgconn.PgError{Code: "23514"}), models.ErrValidation)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()
		orig := &pgconn.PgError{Code: "23503"}
		require.Equal(t, error(orig), translateError(orig))
	})
}

func TestValidID(t *testing.T) {
	t.Parallel()

	require.True(t, validID("6f1c1a8e-3c5b-4a8e-9a47-0d6b2f3e1c11"))
	require.False(t, validID(""))
	require.False(t, validID("abc"))
}

// Package service implements the expense, budget and account operations on top
// of the repository stores: input validation, ownership scoping and the
// error taxonomy callers rely on.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/spendwise/expense-api/internal/logger"
	"github.com/spendwise/expense-api/internal/models"
)

const instrumentationName = "github.com/spendwise/expense-api/internal/service"

var (
	meter  = otel.Meter(instrumentationName)
	tracer = otel.Tracer(instrumentationName)
)

// mutationCounter counts create/update/delete calls by entity, operation and
// outcome. The global meter delegates to whatever provider main installs.
var mutationCounter = newCounter("expense_api.mutations", "Store mutations by entity, operation and result")

var loginCounter = newCounter("expense_api.logins", "Login attempts by result")

func newCounter(name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		logger.Log.Warn().Err(err).Str("instrument", name).Msg("Failed to create counter")
	}
	return c
}

func recordMutation(ctx context.Context, entity, op string, err error) {
	if mutationCounter == nil {
		return
	}
	mutationCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("op", op),
		attribute.String("result", resultOf(err)),
	))
}

func resultOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Clock returns the current instant. Services take one so tests can pin "now".
type Clock func() time.Time

func requireAmount(field string, amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Zero, models.NewValidationError(field, "is required")
	}
	return *amount, nil
}

// normalizeAmount rejects amounts the stores cannot hold exactly and returns
// the rest with at most AmountScale decimal places. Digit counts are checked
// before any comparison so extreme exponents never get rescaled.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	exp := int(amount.Exponent())
	if amount.NumDigits()+exp > models.MaxAmountDigits {
		return decimal.Zero, models.NewValidationError("amount", "is too large")
	}
	if exp < -models.AmountScale {
		if -exp-models.AmountScale > amount.NumDigits() || !amount.Equal(amount.Truncate(models.AmountScale)) {
			return decimal.Zero, models.NewValidationError("amount", fmt.Sprintf("must have at most %d decimal places", models.AmountScale))
		}
		return amount.Truncate(models.AmountScale), nil
	}
	return amount, nil
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return models.NewValidationError("category", "is required")
	}
	if len([]rune(category)) > models.MaxCategoryLength {
		return models.NewValidationError("category", "is too long")
	}
	return nil
}

func validateNote(note string) error {
	if len([]rune(note)) > models.MaxNoteLength {
		return models.NewValidationError("note", "is too long")
	}
	return nil
}

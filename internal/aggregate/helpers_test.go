package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(amount, category, date string) models.Expense {
	return models.Expense{
		Amount:      dec(amount),
		Category:    category,
		Date:        models.MustDate(date),
		PaymentMode: models.PaymentCash,
		CreatedAt:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func budget(category, amount string) models.Budget {
	return models.Budget{Category: category, Amount: dec(amount), Period: models.PeriodMonthly}
}

// decEqual compares decimals by value, not representation.
func decEqual(want string, got decimal.Decimal) bool {
	return dec(want).Equal(got)
}

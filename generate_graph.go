//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/spendwise/expense-api/internal/aggregate"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/report"
)

func main() {
	expenses := []models.Expense{
		{Amount: decimal.NewFromFloat(150.50), Category: "Food", PaymentMode: models.PaymentCard},
		{Amount: decimal.NewFromFloat(130.50), Category: "Shopping", PaymentMode: models.PaymentUPI},
		{Amount: decimal.NewFromFloat(60.00), Category: "Transport", PaymentMode: models.PaymentCash},
		{Amount: decimal.NewFromFloat(25.00), Category: "Entertainment", PaymentMode: models.PaymentCard},
		{Amount: decimal.NewFromFloat(120.00), Category: "Bills", PaymentMode: models.PaymentUPI},
	}

	charts := map[string][]aggregate.Entry{
		"categories.png":    aggregate.CategoryBreakdown(expenses),
		"payment-modes.png": aggregate.PaymentModeBreakdown(expenses),
	}
	for name, entries := range charts {
		png, err := report.PieChart(entries, report.ChartTitle(name, "2026-01"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(name, png, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Created %s\n", name)
	}
}

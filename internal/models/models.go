// Package models defines the domain entities for the expense tracker.
package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// MaxCategoryLength is the maximum allowed length for category names.
const MaxCategoryLength = 50

// MaxNoteLength is the maximum allowed length for an expense note.
const MaxNoteLength = 500

// Amounts are stored as DECIMAL(12, 2): at most AmountScale decimal places
// and MaxAmountDigits digits before the point.
const (
	AmountScale     = 2
	MaxAmountDigits = 10
)

// DefaultCategories is the category vocabulary offered by clients. Categories
// outside this list are stored as given.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Entertainment",
	"Shopping",
	"Bills",
	"Health",
	"Education",
	"Other",
}

// IsDefaultCategory reports whether name is one of DefaultCategories.
// Matching is exact; no case or whitespace folding is applied.
func IsDefaultCategory(name string) bool {
	return slices.Contains(DefaultCategories, name)
}

// PaymentMode is how an expense was paid.
type PaymentMode string

// Supported payment modes.
const (
	PaymentCash PaymentMode = "Cash"
	PaymentCard PaymentMode = "Card"
	PaymentUPI  PaymentMode = "UPI"
)

// PaymentModes lists the accepted payment modes in display order.
var PaymentModes = []PaymentMode{PaymentCash, PaymentCard, PaymentUPI}

// Valid reports whether m is a supported payment mode.
func (m PaymentMode) Valid() bool {
	return slices.Contains(PaymentModes, m)
}

// BudgetPeriod is the nominal renewal cadence of a budget.
type BudgetPeriod string

// Supported budget periods.
const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// Valid reports whether p is a supported period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// User is an account holder.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Expense represents a single expense entry owned by one user.
type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        Date            `json:"date"`
	Note        string          `json:"note,omitempty"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OccurredAt returns the occurrence date, falling back to the creation
// timestamp for records that carry no date.
func (e Expense) OccurredAt() time.Time {
	if !e.Date.IsZero() {
		return e.Date.Time
	}
	return e.CreatedAt
}

// ExpensePatch carries the fields of a partial expense update. A nil field
// keeps the stored value.
type ExpensePatch struct {
	Amount      *decimal.Decimal
	Category    *string
	Date        *Date
	Note        *string
	PaymentMode *PaymentMode
}

// Apply overwrites the fields of e that are set in p.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.PaymentMode != nil {
		e.PaymentMode = *p.PaymentMode
	}
}

// Budget is a spending limit for one category of one user.
type Budget struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    BudgetPeriod    `json:"period"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BudgetPatch carries the editable budget fields. Category is fixed after
// creation and therefore absent.
type BudgetPatch struct {
	Amount *decimal.Decimal
	Period *BudgetPeriod
}

// Apply overwrites the fields of b that are set in p.
func (p BudgetPatch) Apply(b *Budget) {
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
}

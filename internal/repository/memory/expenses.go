package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/expense-api/internal/models"
)

type expenseEntry struct {
	expense models.Expense
	seq     uint64
}

// ExpenseStore keeps expenses in memory.
type ExpenseStore struct {
	mu       sync.RWMutex
	expenses map[string]*expenseEntry
	seq      uint64
	now      func() time.Time
}

// NewExpenseStore creates an empty ExpenseStore.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{
		expenses: make(map[string]*expenseEntry),
		now:      time.Now,
	}
}

// Create stores e, assigning ID and timestamps.
func (s *ExpenseStore) Create(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, exists := s.expenses[e.ID]; exists {
		return fmt.Errorf("failed to create expense: %w", models.ErrConflict)
	}
	if e.PaymentMode == "" {
		e.PaymentMode = models.PaymentCash
	}
	now := s.now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.seq++
	s.expenses[e.ID] = &expenseEntry{expense: *e, seq: s.seq}
	return nil
}

// GetByID retrieves one of the owner's expenses.
func (s *ExpenseStore) GetByID(_ context.Context, userID, id string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.expenses[id]
	if !ok || entry.expense.UserID != userID {
		return nil, fmt.Errorf("failed to get expense: %w", models.ErrNotFound)
	}
	out := entry.expense
	return &out, nil
}

// ListByUser returns the owner's expenses, newest occurrence first.
func (s *ExpenseStore) ListByUser(_ context.Context, userID string) ([]models.Expense, error) {
	s.mu.RLock()
	entries := make([]*expenseEntry, 0)
	for _, entry := range s.expenses {
		if entry.expense.UserID == userID {
			entries = append(entries, entry)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *expenseEntry) int {
		da := models.NewDate(a.expense.OccurredAt().UTC())
		db := models.NewDate(b.expense.OccurredAt().UTC())
		if c := db.Compare(da.Time); c != 0 {
			return c
		}
		if c := b.expense.CreatedAt.Compare(a.expense.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	out := make([]models.Expense, len(entries))
	for i, entry := range entries {
		out[i] = entry.expense
	}
	return out, nil
}

// Update applies patch to one of the owner's expenses.
func (s *ExpenseStore) Update(
	_ context.Context,
	userID, id string,
	patch models.ExpensePatch,
) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.expenses[id]
	if !ok || entry.expense.UserID != userID {
		return nil, fmt.Errorf("failed to update expense: %w", models.ErrNotFound)
	}
	patch.Apply(&entry.expense)
	entry.expense.UpdatedAt = s.now().UTC()

	out := entry.expense
	return &out, nil
}

// Delete removes one of the owner's expenses.
func (s *ExpenseStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.expenses[id]
	if !ok || entry.expense.UserID != userID {
		return fmt.Errorf("failed to delete expense: %w", models.ErrNotFound)
	}
	delete(s.expenses, id)
	return nil
}

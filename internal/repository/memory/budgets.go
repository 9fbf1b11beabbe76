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

type budgetKey struct {
	userID   string
	category string
}

type budgetEntry struct {
	budget models.Budget
	seq    uint64
}

// BudgetStore keeps budgets in memory.
type BudgetStore struct {
	mu         sync.RWMutex
	budgets    map[string]*budgetEntry
	byCategory map[budgetKey]string
	seq        uint64
	now        func() time.Time
}

// NewBudgetStore creates an empty BudgetStore.
func NewBudgetStore() *BudgetStore {
	return &BudgetStore{
		budgets:    make(map[string]*budgetEntry),
		byCategory: make(map[budgetKey]string),
		now:        time.Now,
	}
}

// Create stores b. A second budget for the same owner and category returns
// models.ErrConflict.
func (s *BudgetStore) Create(_ context.Context, b *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := budgetKey{userID: b.UserID, category: b.Category}
	if _, exists := s.byCategory[key]; exists {
		return fmt.Errorf("failed to create budget: %w", models.ErrConflict)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Period == "" {
		b.Period = models.PeriodMonthly
	}
	now := s.now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	s.seq++
	s.budgets[b.ID] = &budgetEntry{budget: *b, seq: s.seq}
	s.byCategory[key] = b.ID
	return nil
}

// ListByUser returns the owner's budgets, most recently created first.
func (s *BudgetStore) ListByUser(_ context.Context, userID string) ([]models.Budget, error) {
	s.mu.RLock()
	entries := make([]*budgetEntry, 0)
	for _, entry := range s.budgets {
		if entry.budget.UserID == userID {
			entries = append(entries, entry)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b *budgetEntry) int {
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})

	out := make([]models.Budget, len(entries))
	for i, entry := range entries {
		out[i] = entry.budget
	}
	return out, nil
}

// Update changes the amount and/or period of one of the owner's budgets.
func (s *BudgetStore) Update(
	_ context.Context,
	userID, id string,
	patch models.BudgetPatch,
) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.budgets[id]
	if !ok || entry.budget.UserID != userID {
		return nil, fmt.Errorf("failed to update budget: %w", models.ErrNotFound)
	}
	patch.Apply(&entry.budget)
	entry.budget.UpdatedAt = s.now().UTC()

	out := entry.budget
	return &out, nil
}

// Delete removes one of the owner's budgets.
func (s *BudgetStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.budgets[id]
	if !ok || entry.budget.UserID != userID {
		return fmt.Errorf("failed to delete budget: %w", models.ErrNotFound)
	}
	delete(s.byCategory, budgetKey{userID: userID, category: entry.budget.Category})
	delete(s.budgets, id)
	return nil
}

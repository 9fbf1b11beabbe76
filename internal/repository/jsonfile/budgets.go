// Package jsonfile implements a budget store persisted as a single JSON
// document on disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/expense-api/internal/logger"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/repository"
)

var _ repository.BudgetStore = (*BudgetStore)(nil)

// BudgetStore keeps all budgets in one JSON array at path. The file is read
// on every call and rewritten atomically on every change. A missing, empty or
// unreadable document is treated as an empty collection.
type BudgetStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewBudgetStore creates a store backed by the file at path. The file is
// created on first write.
func NewBudgetStore(path string) *BudgetStore {
	return &BudgetStore{path: path, now: time.Now}
}

// Create appends b. A second budget for the same owner and category returns
// models.ErrConflict.
func (s *BudgetStore) Create(_ context.Context, b *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := s.load()
	for _, existing := range budgets {
		if existing.UserID == b.UserID && existing.Category == b.Category {
			return fmt.Errorf("failed to create budget: %w", models.ErrConflict)
		}
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

	if err := s.save(append(budgets, *b)); err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListByUser returns the owner's budgets, most recently created first.
func (s *BudgetStore) ListByUser(_ context.Context, userID string) ([]models.Budget, error) {
	s.mu.Lock()
	budgets := s.load()
	s.mu.Unlock()

	out := make([]models.Budget, 0, len(budgets))
	for _, b := range slices.Backward(budgets) {
		if b.UserID == userID {
			out = append(out, b)
		}
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

	budgets := s.load()
	i := indexOf(budgets, userID, id)
	if i < 0 {
		return nil, fmt.Errorf("failed to update budget: %w", models.ErrNotFound)
	}
	patch.Apply(&budgets[i])
	budgets[i].UpdatedAt = s.now().UTC()

	if err := s.save(budgets); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	out := budgets[i]
	return &out, nil
}

// Delete removes one of the owner's budgets.
func (s *BudgetStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := s.load()
	i := indexOf(budgets, userID, id)
	if i < 0 {
		return fmt.Errorf("failed to delete budget: %w", models.ErrNotFound)
	}
	if err := s.save(slices.Delete(budgets, i, i+1)); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func indexOf(budgets []models.Budget, userID, id string) int {
	return slices.IndexFunc(budgets, func(b models.Budget) bool {
		return b.ID == id && b.UserID == userID
	})
}

// load reads the document. Any failure degrades to an empty collection and
// the next write replaces the file.
func (s *BudgetStore) load() []models.Budget {
	log := logger.Component("jsonfile")

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path).Msg("Failed to read budget file, starting empty")
		}
		return []models.Budget{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Budget{}
	}

	var budgets []models.Budget
	if err := json.Unmarshal(data, &budgets); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Budget file is not valid JSON, starting empty")
		return []models.Budget{}
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets
}

// save writes budgets to a temporary file in the same directory and renames
// it over the document.
func (s *BudgetStore) save(budgets []models.Budget) error {
	data, err := json.MarshalIndent(budgets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode budgets: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create budget directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".budgets-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write budgets: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync budgets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace budget file: %w", err)
	}
	return nil
}

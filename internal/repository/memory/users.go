// Package memory provides in-process implementations of the repository
// stores. Data lives for the lifetime of the process; it backs tests and the
// STORE_BACKEND=memory mode.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/repository"
)

var (
	_ repository.UserStore    = (*UserStore)(nil)
	_ repository.ExpenseStore = (*ExpenseStore)(nil)
	_ repository.BudgetStore  = (*BudgetStore)(nil)
)

// UserStore keeps accounts in memory.
type UserStore struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	now     func() time.Time
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

// Create stores u. Email is stored lowercased and must be unique.
func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := s.byEmail[u.Email]; exists {
		return fmt.Errorf("failed to create user: %w", models.ErrConflict)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = s.now().UTC()

	s.users[u.ID] = cloneUser(*u)
	s.byEmail[u.Email] = u.ID
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("failed to get user: %w", models.ErrNotFound)
	}
	out := cloneUser(u)
	return &out, nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("failed to get user by email: %w", models.ErrNotFound)
	}
	return s.GetByID(ctx, id)
}

func cloneUser(u models.User) models.User {
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return u
}

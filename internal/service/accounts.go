package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/spendwise/expense-api/internal/auth"
	"github.com/spendwise/expense-api/internal/logger"
	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/repository"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password. Both cases share it so callers cannot probe for accounts.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)

// Signup is the input of Accounts.Signup.
type Signup struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Session is the result of a successful login.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Accounts registers users and exchanges credentials for bearer tokens.
type Accounts struct {
	users  repository.UserStore
	tokens *auth.Tokens
	log    zerolog.Logger
}

// NewAccounts creates an Accounts service.
func NewAccounts(users repository.UserStore, tokens *auth.Tokens) *Accounts {
	return &Accounts{users: users, tokens: tokens, log: logger.Component("accounts")}
}

// Signup creates an account. A taken email returns models.ErrConflict.
func (s *Accounts) Signup(ctx context.Context, in Signup) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case name == "":
		return nil, models.NewValidationError("name", "is required")
	case email == "":
		return nil, models.NewValidationError("email", "is required")
	case !strings.Contains(email, "@"):
		return nil, models.NewValidationError("email", "is not a valid address")
	case len(in.Password) < auth.MinPasswordLength:
		return nil, models.NewValidationError("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	case len(in.Password) > auth.MaxPasswordBytes:
		return nil, models.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes))
	case in.ConfirmPassword != in.Password:
		return nil, models.NewValidationError("confirmPassword", "does not match password")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	s.log.Info().Str("user", logger.HashUserID(u.ID)).Msg("User signed up")
	return u, nil
}

// Login verifies credentials and issues a bearer token.
func (s *Accounts) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.countLogin(ctx, "unknown_email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		s.countLogin(ctx, "bad_password")
		s.log.Info().Str("user", logger.HashUserID(u.ID)).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	s.countLogin(ctx, "ok")
	return &Session{Token: token, User: u}, nil
}

// Authenticate resolves a bearer token to its claims.
func (s *Accounts) Authenticate(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// Me returns the account identified by userID.
func (s *Accounts) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return u, nil
}

func (s *Accounts) countLogin(ctx context.Context, result string) {
	if loginCounter == nil {
		return
	}
	loginCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

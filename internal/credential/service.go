// Package credential implements the user credential model: field validation,
// salted password hashing, password verification, email uniqueness and the
// public (redacted) view of a user.
package credential

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // Input trimming

	"github.com/sirupsen/logrus" // Logging library

	"tube_places/internal/domain" // Domain models and errors
	"tube_places/internal/store"  // Storage contracts
)

// Candidate is the input for a new account.
type Candidate struct {
	Name     string
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// ProfileUpdate changes non-secret fields. Nil fields are left as they are.
type ProfileUpdate struct {
	Name     *string
	Username *string
	Email    *string
}

// Service creates and updates users through a store.UserStore.
type Service struct {
	users     store.UserStore
	validator *Validator
	hasher    Hasher
}

// NewService returns a Service applying policy and hashing with hasher.
func NewService(users store.UserStore, policy Policy, hasher Hasher) *Service {
	return &Service{
		users:     users,
		validator: NewValidator(policy),
		hasher:    hasher,
	}
}

// ValidateFields checks u against the service policy.
func (s *Service) ValidateFields(u *domain.User) error {
	return s.validator.ValidateFields(u)
}

// CreateUser validates and persists a new user, hashing its password.
func (s *Service) CreateUser(ctx context.Context, c Candidate) (*domain.User, error) {
	u := &domain.User{
		Name:     c.Name,
		Username: c.Username,
		Email:    strings.TrimSpace(c.Email),
		IsAdmin:  c.IsAdmin,
	}
	u.SetPassword(c.Password) // Hashed by Save
	if err := s.Save(ctx, u); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  u.ID,
		"is_admin": u.IsAdmin,
	}).Debug("User created")
	return u, nil
}

// UpdateUserPassword sets a new password and saves, hashing it exactly once.
func (s *Service) UpdateUserPassword(ctx context.Context, id, password string) (*domain.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.SetPassword(password)
	if err := s.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes name, username or email without touching the
// stored password hash.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.User, error) {
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = strings.TrimSpace(*upd.Email)
	}
	if err := s.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Save is the single persist path: validate, check email uniqueness, hash a
// modified password, then insert (no ID yet) or update. The password of a
// new record always counts as modified.
func (s *Service) Save(ctx context.Context, u *domain.User) error {
	if u.ID == "" && !u.PasswordModified() {
		u.SetPassword(u.Password) // New records never hold a hash yet
	}
	if err := s.validator.ValidateFields(u); err != nil {
		return err
	}
	if err := s.ensureEmailFree(ctx, u); err != nil {
		return err
	}
	if err := s.hasher.maybeHashPassword(u); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if u.ID == "" {
		return s.users.CreateUser(ctx, u) // Insert
	}
	return s.users.UpdateUser(ctx, u) // Update
}

// ensureEmailFree rejects an email held by another user. The stores enforce
// the same rule with a unique index, which covers concurrent creates.
func (s *Service) ensureEmailFree(ctx context.Context, u *domain.User) error {
	existing, err := s.users.FindUserByEmail(ctx, u.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != u.ID:
		return &domain.UniquenessError{Field: "email", Value: u.Email}
	}
	return nil
}

// Authenticate returns the user owning email when password matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials // Same answer as a wrong password
	}
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(u, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kleinsmk/Pode/internal/store"
)

// LocalValidator checks credentials against the local user database.
type LocalValidator struct {
	store *store.Store
}

// NewLocalValidator creates a database-backed credential validator.
func NewLocalValidator(s *store.Store) *LocalValidator {
	return &LocalValidator{store: s}
}

// Validate verifies credentials against the local database. Unknown
// users and wrong passwords come back as failure Results; only the
// database breaking is an error.
func (p *LocalValidator) Validate(
	ctx context.Context,
	username, password string,
) (*Result, error) {
	user, err := p.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return &Result{Message: "Invalid credentials supplied"}, nil
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(password),
	); err != nil {
		return &Result{Message: "Invalid credentials supplied"}, nil
	}

	return &Result{User: user.Public()}, nil
}

// Name returns the validator name for logging.
func (p *LocalValidator) Name() string {
	return "local"
}

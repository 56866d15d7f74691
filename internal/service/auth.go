// Package service provides the business logic for authentication and
// counter transactions, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/merchco/counterpos/internal/models"
)

// ErrBadCredentials is returned for an unknown account or a password
// mismatch. The two cases are deliberately indistinguishable.
var ErrBadCredentials = errors.New("帳號或密碼錯誤")

// StaffRepository defines the persistence operations required by the
// authentication service.
type StaffRepository interface {
	// GetAll returns the full account → staff mapping.
	GetAll(ctx context.Context) (map[string]models.Staff, error)
}

// AuthService validates staff logins against the staff repository. The
// repository is consulted fresh on every attempt.
type AuthService struct {
	repo StaffRepository
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo StaffRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Login checks account/password against the staff list and returns the
// session identity on an exact match. Returns ErrBadCredentials for any
// mismatch.
func (s *AuthService) Login(ctx context.Context, account, password string) (models.Session, error) {
	staff, err := s.repo.GetAll(ctx)
	if err != nil {
		return models.Session{}, err
	}
	entry, ok := staff[account]
	if !ok || entry.Password != password {
		return models.Session{}, ErrBadCredentials
	}
	return models.Session{Account: account, Name: entry.Name}, nil
}

package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pawan-gold/goldcrest/internal/shared"
)

// User is the authenticated operator identity. The password is never part of
// it and never persisted.
type User struct {
	Name  string
	Email string
}

// Service validates logins against the single configured credential pair.
// There is exactly one account; every failure collapses into the same
// generic invalid-credentials error so the response never reveals whether
// the email or the password was wrong.
type Service struct {
	user         User
	passwordHash []byte
}

// NewService hashes the configured password once up front; per-attempt
// comparison then runs through bcrypt's constant-time path.
func NewService(name, email, password string) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash credential: %w", err)
	}
	return &Service{
		user:         User{Name: name, Email: email},
		passwordHash: hash,
	}, nil
}

// Authenticate checks the submitted pair against the configured credential.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.user.Email)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || passwordErr != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	return s.user, nil
}

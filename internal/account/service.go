package account

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/passgate/passgate/internal/security"
	"github.com/passgate/passgate/internal/session"
)

// ErrInvalidCredentials is returned when a login attempt does not match the
// stored credential.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service manages the account lifecycle around the recovery core: creation,
// login and logout. The rotation workflow only reads what this service writes.
type Service struct {
	repo     Repository
	hasher   security.Hasher
	sessions session.Registry
}

// NewService creates a new account service.
func NewService(repo Repository, hasher security.Hasher, sessions session.Registry) *Service {
	return &Service{repo: repo, hasher: hasher, sessions: sessions}
}

// Register creates an account with a hashed credential and an optional,
// syntactically valid mail address.
func (s *Service) Register(ctx context.Context, name, password, email string) (Account, error) {
	if name == "" {
		return Account{}, errors.New("name is required")
	}
	if len(password) < 6 {
		return Account{}, errors.New("password must be at least 6 characters")
	}
	if email != "" {
		if _, err := netmail.ParseAddress(email); err != nil {
			return Account{}, fmt.Errorf("invalid mail address: %w", err)
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}

	return acct, nil
}

// Login verifies the credential and marks the account active in the session
// registry.
func (s *Service) Login(ctx context.Context, name, password string) (Account, error) {
	acct, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return Account{}, err
	}

	if err := s.hasher.Verify(acct.PasswordHash, password); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	if err := s.sessions.Login(ctx, acct.ID); err != nil {
		return Account{}, err
	}

	return acct, nil
}

// Logout clears the account's active session.
func (s *Service) Logout(ctx context.Context, name string) error {
	acct, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	return s.sessions.Logout(ctx, acct.ID)
}

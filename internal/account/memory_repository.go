package account

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryRepository builds an in-memory account store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, acct Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[acct.Name]; exists {
		return errors.New("account exists")
	}
	r.accounts[acct.Name] = acct
	return nil
}

func (r *memoryRepository) FindByName(_ context.Context, name string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[name]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *memoryRepository) UpdatePasswordHash(_ context.Context, id string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, acct := range r.accounts {
		if acct.ID == id {
			acct.PasswordHash = hash
			r.accounts[name] = acct
			return nil
		}
	}
	return ErrNotFound
}

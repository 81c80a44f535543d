package session

import (
	"context"
	"sync"
)

type memoryRegistry struct {
	mu       sync.Mutex
	active   map[string]bool
	inFlight map[string]bool
}

// NewMemoryRegistry builds an in-memory session registry for testing.
func NewMemoryRegistry() Registry {
	return &memoryRegistry{active: make(map[string]bool), inFlight: make(map[string]bool)}
}

func (r *memoryRegistry) Login(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[accountID] = true
	return nil
}

func (r *memoryRegistry) Logout(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, accountID)
	return nil
}

func (r *memoryRegistry) IsActive(_ context.Context, accountID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[accountID], nil
}

func (r *memoryRegistry) BeginRecovery(_ context.Context, accountID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight[accountID] {
		return false, nil
	}
	r.inFlight[accountID] = true
	return true, nil
}

func (r *memoryRegistry) EndRecovery(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, accountID)
	return nil
}

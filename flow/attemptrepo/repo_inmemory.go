package attemptrepo

import (
	"errors"
	"sync"
)

// ErrNoAttempt is returned by Load when no attempt is pending. Callers must
// treat this as a restart-the-flow condition, not a retryable failure.
var ErrNoAttempt = errors.New("no pending authorization attempt")

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. Its lifetime is the process, which matches the protocol: an
// authorization attempt is meant to complete within one session.
type InMemoryRepo struct {
	mu      sync.RWMutex
	pending *Attempt
}

// NewInMemoryRepo creates a new in-memory attempt repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

// Save stores an attempt, replacing any pending one
func (r *InMemoryRepo) Save(attempt *Attempt) error {
	if attempt == nil {
		return errors.New("attempt cannot be nil")
	}
	if attempt.Verifier == "" {
		return errors.New("attempt verifier cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to prevent external modifications
	copied := *attempt
	r.pending = &copied

	return nil
}

// Load retrieves the pending attempt
func (r *InMemoryRepo) Load() (*Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.pending == nil {
		return nil, ErrNoAttempt
	}

	// Return a copy to prevent external modifications
	copied := *r.pending
	return &copied, nil
}

// Clear removes the pending attempt
func (r *InMemoryRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = nil
	return nil
}

// Package memory holds process-local stores. Nothing here survives a restart.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
)

// VerificationRepo keeps pending verification attempts keyed by request token.
//
// Each method is individually atomic. A caller that reads an attempt, talks to
// remote services, then deletes it is not: the sweeper may remove the entry in
// between, in which case the later Delete is a no-op.
type VerificationRepo struct {
	mu       sync.Mutex
	attempts map[string]domain.VerificationAttempt
}

func NewVerificationRepo() *VerificationRepo {
	return &VerificationRepo{attempts: make(map[string]domain.VerificationAttempt)}
}

// Put inserts or overwrites the attempt stored under a.RequestToken.
func (r *VerificationRepo) Put(a *domain.VerificationAttempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[a.RequestToken] = *a
}

// Get returns a copy of the attempt for token, or an error wrapping domain.ErrNotFound.
func (r *VerificationRepo) Get(token string) (*domain.VerificationAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attempts[token]
	if !ok {
		return nil, fmt.Errorf("verification attempt not found: %w", domain.ErrNotFound)
	}
	return &a, nil
}

func (r *VerificationRepo) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, token)
}

// Sweep removes every attempt older than maxAge as of now.
// An attempt exactly maxAge old is kept. It returns how many were removed.
func (r *VerificationRepo) Sweep(now time.Time, maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for tok, a := range r.attempts {
		if a.Age(now) > maxAge {
			delete(r.attempts, tok)
			removed++
		}
	}
	return removed
}

func (r *VerificationRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attempts)
}

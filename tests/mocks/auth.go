package mocks

import (
	"context"
	"sync"
	"time"

	authDomain "github.com/davicafu/hexacms/internal/auth/domain"
)

// InMemoryBlacklistRepo simula token_blacklist. Err fuerza un fallo en todas las operaciones.
type InMemoryBlacklistRepo struct {
	Tokens map[string]authDomain.RevokedToken
	Err    error
	mu     sync.Mutex
}

var _ authDomain.BlacklistRepository = (*InMemoryBlacklistRepo)(nil)

func NewInMemoryBlacklistRepo() *InMemoryBlacklistRepo {
	return &InMemoryBlacklistRepo{Tokens: make(map[string]authDomain.RevokedToken)}
}

func (r *InMemoryBlacklistRepo) Add(ctx context.Context, t authDomain.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.Tokens[t.JTI]; !ok {
		r.Tokens[t.JTI] = t
	}
	return nil
}

func (r *InMemoryBlacklistRepo) Exists(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.Tokens[jti]
	return ok, nil
}

func (r *InMemoryBlacklistRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for jti, t := range r.Tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(r.Tokens, jti)
			n++
		}
	}
	return n, nil
}

// Has indica si el jti está revocado, sin pasar por Err.
func (r *InMemoryBlacklistRepo) Has(jti string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Tokens[jti]
	return ok
}

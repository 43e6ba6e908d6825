package cryptox

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Hasher runs password hashing and verification on a bounded number of
// concurrent slots. PBKDF2 is CPU-bound; without a bound a burst of login
// requests would occupy every core.
type Hasher struct {
	params Params
	slots  *semaphore.Weighted
}

// NewHasher returns a Hasher allowing at most workers concurrent derivations.
// A non-positive workers value defaults to GOMAXPROCS.
func NewHasher(params Params, workers int) *Hasher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Hasher{params: params, slots: semaphore.NewWeighted(int64(workers))}
}

// Hash hashes password once a slot is free. It fails only if ctx is done
// before a slot frees up or the system random source fails.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.slots.Release(1)

	return h.params.Hash(password)
}

// Verify reports whether password matches hash. A cancelled ctx counts as a
// failed match.
func (h *Hasher) Verify(ctx context.Context, password, hash string) bool {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.slots.Release(1)

	return h.params.Verify(password, hash)
}

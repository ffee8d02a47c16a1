package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// maxSecretBytes is bcrypt's input limit.
const maxSecretBytes = 72

// Hasher hashes and verifies passwords with bcrypt. At most maxConcurrent
// hash or verify operations run at once; additional callers wait for a slot
// or give up when their context ends.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher creates a Hasher. Cost is clamped to bcrypt's supported range
// and maxConcurrent below 1 is treated as 1.
func NewHasher(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Cost returns the bcrypt cost factor used for new hashes.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of secret. Every call uses a fresh salt.
func (h *Hasher) Hash(ctx context.Context, secret string) (string, error) {
	if len(secret) > maxSecretBytes {
		return "", ErrSecretTooLong
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Check compares secret with a bcrypt hash. It returns ErrInvalidSecret on
// mismatch and other errors for malformed hashes or an expired context.
func (h *Hasher) Check(ctx context.Context, secret, hashed string) error {
	if len(secret) > maxSecretBytes {
		return ErrInvalidSecret
	}
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidSecret
		}
		return err
	}
	return nil
}

// Verify reports whether secret matches hashed.
func (h *Hasher) Verify(ctx context.Context, secret, hashed string) bool {
	return h.Check(ctx, secret, hashed) == nil
}

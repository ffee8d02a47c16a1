package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost, 4)
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	secrets := []string{"", "a", "MyAmazingPassw0rd", "with:colon", "ünïcödé", strings.Repeat("x", 72)}
	for _, s := range secrets {
		hash, err := h.Hash(ctx, s)
		require.NoError(t, err, s)
		assert.True(t, h.Verify(ctx, s, hash), s)
		assert.False(t, h.Verify(ctx, s+"!", hash), s)
	}
}

func TestHasher_FreshSaltPerHash(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	first, err := h.Hash(ctx, "MyAmazingPassw0rd")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "MyAmazingPassw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify(ctx, "MyAmazingPassw0rd", first))
	assert.True(t, h.Verify(ctx, "MyAmazingPassw0rd", second))
}

func TestHasher_CostIsEmbedded(t *testing.T) {
	h := NewHasher(5, 1)

	hash, err := h.Hash(context.Background(), "secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
	assert.Equal(t, 5, h.Cost())
}

func TestHasher_ClampsParameters(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewHasher(0, 0).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99, 1).Cost())
}

func TestHasher_SecretTooLong(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	_, err := h.Hash(ctx, strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrSecretTooLong)

	hash, err := h.Hash(ctx, strings.Repeat("a", 72))
	require.NoError(t, err)
	assert.False(t, h.Verify(ctx, strings.Repeat("a", 73), hash))
}

func TestHasher_Check(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	hash, err := h.Hash(ctx, "secret")
	require.NoError(t, err)

	assert.NoError(t, h.Check(ctx, "secret", hash))
	assert.ErrorIs(t, h.Check(ctx, "wrong", hash), ErrInvalidSecret)

	err = h.Check(ctx, "secret", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSecret)
}

func TestHasher_WaitsForSlot(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	// Hold the only slot so the next call has to wait.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "secret")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, h.Verify(ctx, "secret", "$2a$04$invalid"))

	h.sem.Release(1)
	_, err = h.Hash(context.Background(), "secret")
	assert.NoError(t, err)
}

func TestHasher_Concurrent(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(ctx, "secret")
			if err != nil {
				errs <- err
				return
			}
			if !h.Verify(ctx, "secret", hash) {
				errs <- ErrInvalidSecret
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/gatekeeper/internal/database"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB)
}

func TestRepository_Create(t *testing.T) {
	repo := setupTestDB(t)

	user, err := repo.Create(context.Background(), "bob@example.com", "$2a$04$hash")

	require.NoError(t, err)
	assert.Len(t, user.ID, 36)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "$2a$04$hash", user.HashedPassword)
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "bob@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "bob@example.com", "other")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRepository_FindByIdentifier(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "bob@example.com", "hash")
	require.NoError(t, err)

	user, err := repo.FindByIdentifier(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = repo.FindByIdentifier(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_GetByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, "bob@example.com", "hash")
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_LookupHonorsCancellation(t *testing.T) {
	repo := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByIdentifier(ctx, "bob@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

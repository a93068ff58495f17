package repositories

import (
	"context"
	"testing"
	"time"

	"bizadmin/internal/domain"
	"bizadmin/internal/models"
	"bizadmin/internal/resource"
	"bizadmin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRepositoryRoundTripSQLite(t *testing.T) {
	db := testutil.OpenSQLite(t)
	repo := ResourceRepository{DB: db}
	d := resource.Describe("users", models.User{})
	ctx := context.Background()

	id, err := repo.Insert(ctx, d, map[string]any{
		"name": "Ada", "username": "ada", "email": "ada@example.com", "password": "hash", "role": "admin",
	})
	require.NoError(t, err)

	rec, err := repo.FindByID(ctx, d, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec["name"])
	assert.NotContains(t, rec, "password", "hidden columns are never selected")
	assert.NotEmpty(t, rec["created_at"])

	_, err = repo.Insert(ctx, d, map[string]any{
		"name": "Other", "username": "ada", "email": "other@example.com", "password": "hash",
	})
	assert.True(t, domain.IsConflict(err), "duplicate username: %v", err)

	require.NoError(t, repo.Update(ctx, d, id, map[string]any{"name": "Ada L."}))
	rec, err = repo.FindByID(ctx, d, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", rec["name"])

	require.NoError(t, repo.Delete(ctx, d, id))
	_, err = repo.FindByID(ctx, d, id)
	assert.True(t, domain.IsNotFound(err))
}

func TestUserRepositoryLookups(t *testing.T) {
	db := testutil.OpenSQLite(t)
	id := testutil.Insert(t, db, "users", map[string]any{
		"name": "Grace", "username": "grace", "email": "grace@example.com", "password": "h4sh", "role": "staff",
	})
	repo := UserRepository{DB: db}
	ctx := context.Background()

	for _, login := range []string{"grace", "grace@example.com"} {
		u, hash, err := repo.FindByLogin(ctx, login)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "h4sh", hash)
		assert.True(t, u.Active)
	}

	_, _, err := repo.FindByLogin(ctx, "nobody")
	assert.True(t, domain.IsNotFound(err))

	u, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "staff", u.Role)
	assert.Equal(t, "", u.WhatsApp)
}

func TestTokenRepositoryRevocation(t *testing.T) {
	db := testutil.OpenSQLite(t)
	repo := TokenRepository{DB: db}
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Revoke(ctx, "old", now.Add(-time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "fresh", now.Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "fresh", now.Add(time.Hour)), "revoking twice is a no-op")

	revoked, err := repo.IsRevoked(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, revoked)

	n, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err = repo.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

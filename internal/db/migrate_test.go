package db_test

import (
	"testing"

	intconfig "bizadmin/internal/config"
	intdb "bizadmin/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUpDownSQLite(t *testing.T) {
	conn, err := intconfig.Open("sqlite", "file:migrate_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, intdb.Migrate(conn, "sqlite"))
	v, err := intdb.Version(conn, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	for _, table := range []string{"users", "products", "estimates", "revoked_tokens"} {
		assert.True(t, intdb.HasTable(conn, "sqlite", table), table)
	}

	// idempotent
	require.NoError(t, intdb.Migrate(conn, "sqlite"))

	require.NoError(t, intdb.Rollback(conn, "sqlite"))
	assert.False(t, intdb.HasTable(conn, "sqlite", "users"))
}

func TestMigrateUnknownDialect(t *testing.T) {
	assert.Error(t, intdb.Migrate(nil, "oracle"))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, intdb.IsDuplicateKey(nil))
	assert.True(t, intdb.IsDuplicateKey(errString("constraint failed: UNIQUE constraint failed: users.email (2067)")))
}

type errString string

func (e errString) Error() string { return string(e) }

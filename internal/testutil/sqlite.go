// Package testutil opens throwaway databases for tests.
package testutil

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	intconfig "bizadmin/internal/config"
	intdb "bizadmin/internal/db"

	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

// OpenSQLite returns a migrated in-memory database private to the test.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:bizadmin_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := intconfig.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, intdb.Migrate(db, "sqlite"))
	return db
}

// Insert writes one row and returns its id.
func Insert(t testing.TB, db *sql.DB, table string, values map[string]any) int64 {
	t.Helper()

	cols := make([]string, 0, len(values))
	for c := range values {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		marks[i] = "?"
		args[i] = values[c]
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	res, err := db.Exec(q, args...)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedProducts inserts n products named "Product 01".."Product n" with
// ascending prices; odd ids are active.
func SeedProducts(t testing.TB, db *sql.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		Insert(t, db, "products", map[string]any{
			"name":   fmt.Sprintf("Product %02d", i),
			"sku":    fmt.Sprintf("SKU-%03d", i),
			"price":  float64(i) * 10,
			"stock":  i,
			"active": i % 2,
		})
	}
}

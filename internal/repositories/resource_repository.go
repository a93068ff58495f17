package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	intconfig "bizadmin/internal/config"
	intdb "bizadmin/internal/db"
	"bizadmin/internal/domain"
	"bizadmin/internal/query"
	"bizadmin/internal/resource"
	"bizadmin/internal/utils"
)

// ResourceRepository runs generic reads and writes for any described entity.
type ResourceRepository struct {
	DB *sql.DB
}

func (r ResourceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Count returns the number of rows matching b's predicates.
func (r ResourceRepository) Count(ctx context.Context, b *query.Builder) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	q, args := b.CountSQL()
	var total int64
	if err := db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

// Fetch runs b's SELECT and returns generic records.
func (r ResourceRepository) Fetch(ctx context.Context, b *query.Builder) ([]domain.Record, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}
	q, args := b.SelectSQL()
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// FindByID loads one visible record.
func (r ResourceRepository) FindByID(ctx context.Context, d resource.Descriptor, id int64) (domain.Record, error) {
	b := query.NewBuilder(d.Table, d.Visible()...).WhereEq("id", id).Page(1, 1)
	recs, err := r.Fetch(ctx, b)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.NotFoundError{Resource: d.Name, ID: strconv.FormatInt(id, 10)}
	}
	return recs[0], nil
}

// Insert writes values (already whitelisted) and returns the new id.
func (r ResourceRepository) Insert(ctx context.Context, d resource.Descriptor, values map[string]any) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}

	now := utils.Timestamp()
	cols := sortedKeys(values)
	quoted := make([]string, 0, len(cols)+2)
	marks := make([]string, 0, len(cols)+2)
	args := make([]any, 0, len(cols)+2)
	for _, c := range cols {
		quoted = append(quoted, query.Quote(c))
		marks = append(marks, "?")
		args = append(args, values[c])
	}
	quoted = append(quoted, query.Quote("created_at"), query.Quote("updated_at"))
	marks = append(marks, "?", "?")
	args = append(args, now, now)

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", query.Quote(d.Table), strings.Join(quoted, ", "), strings.Join(marks, ", "))
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: d.Name, Msg: "duplicate value", Err: err}
		}
		return 0, fmt.Errorf("insert %s: %w", d.Table, err)
	}
	return res.LastInsertId()
}

// Update writes values onto an existing row.
func (r ResourceRepository) Update(ctx context.Context, d resource.Descriptor, id int64, values map[string]any) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	found, err := r.Exists(ctx, d.Table, "id", id)
	if err != nil {
		return err
	}
	if !found {
		return domain.NotFoundError{Resource: d.Name, ID: strconv.FormatInt(id, 10)}
	}

	cols := sortedKeys(values)
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for _, c := range cols {
		sets = append(sets, query.Quote(c)+" = ?")
		args = append(args, values[c])
	}
	sets = append(sets, query.Quote("updated_at")+" = ?")
	args = append(args, utils.Timestamp(), id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", query.Quote(d.Table), strings.Join(sets, ", "), query.Quote("id"))
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: d.Name, Msg: "duplicate value", Err: err}
		}
		return fmt.Errorf("update %s: %w", d.Table, err)
	}
	return nil
}

// Delete removes a row by id.
func (r ResourceRepository) Delete(ctx context.Context, d resource.Descriptor, id int64) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", query.Quote(d.Table), query.Quote("id"))
	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", d.Table, err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: d.Name, ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// Exists reports whether any row matches column = value.
func (r ResourceRepository) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	total, err := r.Count(ctx, query.NewBuilder(table).WhereEq(column, value))
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []domain.Record{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return out, fmt.Errorf("scan: %w", err)
		}
		rec := make(domain.Record, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				rec[c] = string(b)
				continue
			}
			rec[c] = vals[i]
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

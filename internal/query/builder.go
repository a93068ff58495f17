package query

import (
	"fmt"
	"strings"

	"bizadmin/internal/resource"
)

// Builder assembles a single-table SELECT. Identifiers passed to it come from
// entity declarations, never from request input.
type Builder struct {
	table   string
	columns []string
	wheres  []resource.Condition
	order   *Order
	limit   int
	offset  int
}

// Order is a single ORDER BY column.
type Order struct {
	Column    string
	Direction string
}

func NewBuilder(table string, columns ...string) *Builder {
	return &Builder{table: table, columns: append([]string(nil), columns...)}
}

// Where adds a raw predicate; all predicates are AND'ed.
func (b *Builder) Where(c resource.Condition) *Builder {
	if strings.TrimSpace(c.SQL) == "" {
		return b
	}
	b.wheres = append(b.wheres, c)
	return b
}

func (b *Builder) WhereEq(column string, value any) *Builder {
	return b.Where(Eq(column, value))
}

func (b *Builder) OrderBy(column, direction string) *Builder {
	b.order = &Order{Column: column, Direction: direction}
	return b
}

// Page sets LIMIT/OFFSET for a 1-based page.
func (b *Builder) Page(page, perPage int) *Builder {
	b.limit = perPage
	b.offset = (page - 1) * perPage
	return b
}

// CountSQL counts rows matching the predicates, ignoring order and paging.
func (b *Builder) CountSQL() (string, []any) {
	where, args := b.whereSQL()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", Quote(b.table), where), args
}

// SelectSQL renders the full SELECT.
func (b *Builder) SelectSQL() (string, []any) {
	cols := "*"
	if len(b.columns) > 0 {
		quoted := make([]string, len(b.columns))
		for i, c := range b.columns {
			quoted[i] = Quote(c)
		}
		cols = strings.Join(quoted, ", ")
	}

	where, args := b.whereSQL()
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", cols, Quote(b.table), where)
	if b.order != nil {
		fmt.Fprintf(&sb, " ORDER BY %s %s", Quote(b.order.Column), strings.ToUpper(b.order.Direction))
	}
	if b.limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, b.limit, b.offset)
	}
	return sb.String(), args
}

func (b *Builder) whereSQL() (string, []any) {
	if len(b.wheres) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(b.wheres))
	args := []any{}
	for _, w := range b.wheres {
		parts = append(parts, "("+w.SQL+")")
		args = append(args, w.Args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// Eq is column = value.
func Eq(column string, value any) resource.Condition {
	return resource.Condition{SQL: Quote(column) + " = ?", Args: []any{value}}
}

// In is column IN (values...).
func In(column string, values []string) resource.Condition {
	marks := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = v
	}
	return resource.Condition{SQL: Quote(column) + " IN (" + strings.Join(marks, ", ") + ")", Args: args}
}

// AnyLike is (c1 LIKE %term% OR c2 LIKE %term% ...).
func AnyLike(columns []string, term string) resource.Condition {
	if len(columns) == 0 {
		return resource.Condition{}
	}
	like := "%" + term + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		parts[i] = Quote(c) + " LIKE ?"
		args[i] = like
	}
	return resource.Condition{SQL: strings.Join(parts, " OR "), Args: args}
}

// Or joins conditions with OR.
func Or(conds ...resource.Condition) resource.Condition {
	parts := []string{}
	args := []any{}
	for _, c := range conds {
		if strings.TrimSpace(c.SQL) == "" {
			continue
		}
		parts = append(parts, "("+c.SQL+")")
		args = append(args, c.Args...)
	}
	return resource.Condition{SQL: strings.Join(parts, " OR "), Args: args}
}

// Quote wraps an identifier in backticks (understood by MySQL and SQLite).
func Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

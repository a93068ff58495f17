package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "bizadmin/internal/config"
)

// StatusTotal aggregates estimates sharing a status.
type StatusTotal struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Total  float64 `json:"total"`
}

// ReportRepository runs the aggregate queries behind dashboard reports.
type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EstimateTotals groups estimates by upper-cased status. Dates are
// YYYY-MM-DD; endBefore is exclusive. Empty bounds are open.
func (r ReportRepository) EstimateTotals(ctx context.Context, startDate, endBefore string) ([]StatusTotal, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	var (
		where []string
		args  []any
	)
	if startDate != "" {
		where = append(where, "issued_at >= ?")
		args = append(args, startDate)
	}
	if endBefore != "" {
		where = append(where, "issued_at < ?")
		args = append(args, endBefore)
	}

	q := `SELECT UPPER(status), COUNT(*), COALESCE(SUM(total), 0) FROM estimates`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " GROUP BY UPPER(status) ORDER BY UPPER(status)"

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("estimate totals: %w", err)
	}
	defer rows.Close()

	out := []StatusTotal{}
	for rows.Next() {
		var st StatusTotal
		if err := rows.Scan(&st.Status, &st.Count, &st.Total); err != nil {
			return nil, fmt.Errorf("scan estimate totals: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "bizadmin/internal/config"
)

// TokenRepository stores the jti of revoked tokens until they expire.
type TokenRepository struct {
	DB *sql.DB
}

func (r TokenRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	// a token revoked twice keeps its first row
	if revoked, err := r.IsRevoked(ctx, jti); err != nil || revoked {
		return err
	}
	_, err := db.ExecContext(ctx, `INSERT INTO revoked_tokens (jti, expires_at) VALUES (?, ?)`, jti, expiresAt.Unix())
	return err
}

func (r TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	db := r.db()
	if db == nil {
		return false, fmt.Errorf("database not connected")
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`, jti).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired drops rows whose token would be rejected anyway.
func (r TokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	intconfig "bizadmin/internal/config"
	"bizadmin/internal/domain"
	"bizadmin/internal/models"
)

// UserRepository covers the account lookups auth needs.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = "id, name, username, email, COALESCE(whatsapp, ''), role, active"

// FindByLogin matches login against email or username and also returns the
// password hash.
func (r UserRepository) FindByLogin(ctx context.Context, login string) (models.PublicUser, string, error) {
	db := r.db()
	if db == nil {
		return models.PublicUser{}, "", fmt.Errorf("database not connected")
	}

	var (
		u    models.PublicUser
		hash string
	)
	err := db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, password
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1`, login, login).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.WhatsApp, &u.Role, &u.Active, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PublicUser{}, "", domain.NotFoundError{Resource: "users", ID: login}
	}
	if err != nil {
		return models.PublicUser{}, "", fmt.Errorf("find user: %w", err)
	}
	return u, hash, nil
}

func (r UserRepository) FindByID(ctx context.Context, id int64) (models.PublicUser, error) {
	db := r.db()
	if db == nil {
		return models.PublicUser{}, fmt.Errorf("database not connected")
	}

	var u models.PublicUser
	err := db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.WhatsApp, &u.Role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PublicUser{}, domain.NotFoundError{Resource: "users", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"bizadmin/internal/domain"
	"bizadmin/internal/models"
	"bizadmin/internal/repositories"
	"bizadmin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newResourceService(t *testing.T) ResourceService {
	t.Helper()
	return ResourceService{
		Registry: models.NewRegistry(),
		Store:    repositories.ResourceRepository{DB: testutil.OpenSQLite(t)},
	}
}

func TestResourceServiceCreateShowUpdateDelete(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "products", map[string]any{
		"name":  "Anvil",
		"price": 99.5,
		"id":    1234,
		"owner": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anvil", rec["name"])
	assert.NotContains(t, rec, "owner")
	id := rec["id"].(int64)
	assert.NotEqual(t, int64(1234), id, "id is not mass-assignable")

	rec, err = svc.Update(ctx, "product", id, map[string]any{"stock": 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec["stock"])
	assert.Equal(t, "Anvil", rec["name"])

	shown, err := svc.Show(ctx, "Products", id)
	require.NoError(t, err)
	assert.Equal(t, rec["stock"], shown["stock"])

	require.NoError(t, svc.Delete(ctx, "products", id))
	_, err = svc.Show(ctx, "products", id)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(svc.Delete(ctx, "products", id)))
}

func TestResourceServiceRequiredFields(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "estimates", map[string]any{"title": "Fit-out", "customer_name": " "})
	var verr domain.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, map[string]string{"number": "is required", "customer_name": "is required"}, verr.Fields)

	rec, err := svc.Create(ctx, "estimates", map[string]any{
		"number": "EST-1", "title": "Fit-out", "customer_name": "Acme",
		"items": []any{map[string]any{"description": "Desk", "quantity": 1, "unit_price": 10}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"description":"Desk","quantity":1,"unit_price":10}]`, rec["items"].(string))

	_, err = svc.Update(ctx, "estimates", rec["id"].(int64), map[string]any{"title": ""})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"title": "must not be empty"}, verr.Fields)

	_, err = svc.Update(ctx, "estimates", rec["id"].(int64), map[string]any{"unknown": 1})
	assert.True(t, domain.IsValidation(err))
}

func TestResourceServiceDuplicateIsConflict(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()

	payload := map[string]any{"number": "EST-9", "title": "A", "customer_name": "B"}
	_, err := svc.Create(ctx, "estimates", payload)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "estimates", payload)
	assert.True(t, domain.IsConflict(err))
}

func TestResourceServiceHashesUserPassword(t *testing.T) {
	svc := newResourceService(t)
	ctx := context.Background()
	repo := svc.Store.(repositories.ResourceRepository)

	rec, err := svc.Create(ctx, "users", map[string]any{
		"name": "Ada", "username": "ada", "email": "ada@example.com", "password": "s3cret pass",
	})
	require.NoError(t, err)
	assert.NotContains(t, rec, "password")
	id := rec["id"].(int64)

	users := repositories.UserRepository{DB: repo.DB}
	_, hash, err := users.FindByLogin(ctx, "ada")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret pass")))

	// blank password on update keeps the stored hash
	_, err = svc.Update(ctx, "users", id, map[string]any{"password": "", "name": "Ada L."})
	require.NoError(t, err)
	_, again, err := users.FindByLogin(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, hash, again)
}

func TestResourceServiceUnknownResource(t *testing.T) {
	svc := newResourceService(t)
	_, err := svc.Create(context.Background(), "invoices", map[string]any{"a": 1})
	assert.True(t, domain.IsNotFound(err))
}

package models

import (
	"fmt"
	"strings"

	"bizadmin/internal/resource"

	"golang.org/x/crypto/bcrypt"
)

// User is an admin panel account. Password is stored as a bcrypt hash and
// never selected for output.
type User struct{}

func (User) Table() string { return "users" }

func (User) Fillable() []string {
	return []string{"name", "username", "email", "whatsapp", "role", "password", "active"}
}

func (User) HiddenFields() []string { return []string{"password"} }

func (User) RequiredFields() []string { return []string{"name", "username", "email", "password"} }

func (User) Columns() []resource.Column {
	return []resource.Column{
		{Name: "name", Label: "Name", Type: "string", Sortable: true},
		{Name: "username", Label: "Username", Type: "string", Sortable: true},
		{Name: "email", Label: "Email", Type: "email", Sortable: true},
		{Name: "whatsapp", Label: "WhatsApp", Type: "phone", Sortable: true},
		{Name: "role", Label: "Role", Type: "enum", Sortable: true},
		{Name: "active", Label: "Active", Type: "boolean"},
	}
}

func (User) FilterableFields() []resource.FilterField {
	return []resource.FilterField{
		{Name: "role", Values: []string{"admin", "staff", "user"}},
		{Name: "active", Values: []string{"0", "1"}},
	}
}

// BeforeSave hashes a plain password. An empty password on update keeps the
// stored hash.
func (User) BeforeSave(values map[string]any) error {
	raw, ok := values["password"]
	if !ok {
		return nil
	}
	plain := fmt.Sprint(raw)
	if raw == nil || strings.TrimSpace(plain) == "" {
		delete(values, "password")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	values["password"] = string(hash)
	return nil
}

// PublicUser is the authenticated user payload.
type PublicUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct{}

func (account) Table() string { return "accounts" }
func (account) Fillable() []string {
	return []string{"name", "email", "password", "plan", "active"}
}
func (account) HiddenFields() []string { return []string{"password"} }
func (account) FilterableFields() []FilterField {
	return []FilterField{{Name: "plan", Values: []string{"free", "pro"}}, {Name: "active"}}
}
func (account) FilterScopes() map[string]ScopeFunc {
	return map[string]ScopeFunc{
		"plan": func(v string) Condition { return Condition{SQL: "`plan` = ?", Args: []any{v}} },
		"nil":  nil,
	}
}
func (account) Columns() []Column {
	return []Column{
		{Name: "name", Sortable: true},
		{Name: "email", Sortable: true},
		{Name: "plan"},
		{Name: "id", Sortable: true},
	}
}

type ledger struct{}

func (ledger) Table() string              { return "ledgers" }
func (ledger) Fillable() []string         { return []string{"title", "amount"} }
func (ledger) SearchableFields() []string { return []string{} }

func TestDescribeCapabilities(t *testing.T) {
	d := Describe("accounts", account{})

	assert.Equal(t, "accounts", d.Table)
	assert.Equal(t, []string{"name", "email"}, d.Searchable, "derived from field names")
	assert.Equal(t, []string{"id", "created_at", "updated_at", "name", "email"}, d.Sortable)
	assert.Equal(t, []string{"plan", "active"}, d.FilterNames())
	assert.True(t, d.HasFilters())
	assert.True(t, d.CanSort("email"))
	assert.False(t, d.CanSort("password"))
	assert.False(t, d.CanSort("plan"))

	_, ok := d.Scope("plan")
	assert.True(t, ok)
	_, ok = d.Scope("nil")
	assert.False(t, ok, "nil scopes are dropped")

	f, ok := d.Filter("plan")
	require.True(t, ok)
	assert.True(t, f.Allows("pro"))
	assert.False(t, f.Allows("enterprise"))

	open, ok := d.Filter("active")
	require.True(t, ok)
	assert.True(t, open.Allows("anything"), "no declared values accepts any value")

	assert.False(t, f.Allows("PRO"))
	folded := FilterField{Name: "status", Values: []string{"DRAFT", "SENT"}, IgnoreCase: true}
	assert.True(t, folded.Allows("draft"))
	assert.True(t, folded.Allows("Sent"))
	assert.False(t, folded.Allows("lost"))
}

func TestDescribeVisibleColumns(t *testing.T) {
	d := Describe("accounts", account{})
	assert.Equal(t, []string{"id", "name", "email", "plan", "active", "created_at", "updated_at"}, d.Visible())
	assert.True(t, d.HasField("password"))
	assert.False(t, d.HasField("id"))
}

func TestDescribeDeclaredEmptySearch(t *testing.T) {
	d := Describe("ledgers", ledger{})
	assert.Empty(t, d.Searchable, "explicit empty declaration wins over derivation")
	assert.False(t, d.HasFilters())
	assert.Equal(t, []string{"id", "created_at", "updated_at"}, d.Sortable)
}

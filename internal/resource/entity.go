// Package resource holds the entity capability contracts and the registry
// that resolves route names into entity types.
package resource

import "strings"

// Entity is the only capability every resource must provide.
type Entity interface {
	// Table is the backing table and the canonical route name.
	Table() string
	// Fillable lists mass-assignable columns.
	Fillable() []string
}

// Searchable entities declare their free-text search columns explicitly.
type Searchable interface {
	SearchableFields() []string
}

// Filterable entities declare the fields clients may filter on.
type Filterable interface {
	FilterableFields() []FilterField
}

// ColumnDeclarer entities describe their columns for list and form UIs.
type ColumnDeclarer interface {
	Columns() []Column
}

// Scoped entities register predicate builders per filter field. A field
// with a scope is filtered through it instead of plain equality.
type Scoped interface {
	FilterScopes() map[string]ScopeFunc
}

// Hidden entities keep some columns out of every response.
type Hidden interface {
	HiddenFields() []string
}

// Required entities reject creates missing any of these fields.
type Required interface {
	RequiredFields() []string
}

// Saver entities rewrite values before they are written.
type Saver interface {
	BeforeSave(values map[string]any) error
}

// FilterField is one declared filter. Empty Values accepts any value.
// IgnoreCase matches Values case-insensitively, for fields whose scope
// normalizes case.
type FilterField struct {
	Name       string   `json:"name"`
	Values     []string `json:"values,omitempty"`
	IgnoreCase bool     `json:"ignore_case,omitempty"`
}

// Allows reports whether v is acceptable for this field.
func (f FilterField) Allows(v string) bool {
	if len(f.Values) == 0 {
		return true
	}
	for _, allowed := range f.Values {
		if allowed == v || (f.IgnoreCase && strings.EqualFold(allowed, v)) {
			return true
		}
	}
	return false
}

// Column is a declared column.
type Column struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Sortable bool   `json:"sortable"`
}

// Condition is a SQL predicate fragment with its positional arguments.
type Condition struct {
	SQL  string
	Args []any
}

// ScopeFunc builds the predicate for one filter value.
type ScopeFunc func(value string) Condition

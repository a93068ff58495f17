package resource

import (
	"strings"
)

// Base sortable columns every table carries.
var baseSortable = []string{"id", "created_at", "updated_at"}

// searchHints drives auto-derived search columns for entities that do not
// declare any.
var searchHints = []string{"name", "title", "description", "email", "username", "slug"}

// Descriptor is the capability metadata of one entity type.
type Descriptor struct {
	Name       string
	Table      string
	Fillable   []string
	Hidden     []string
	Searchable []string
	Filters    []FilterField
	Sortable   []string
	Columns    []Column
	Scopes     map[string]ScopeFunc
}

// Describe introspects e. The result depends only on static declarations.
func Describe(name string, e Entity) Descriptor {
	d := Descriptor{
		Name:     name,
		Table:    e.Table(),
		Fillable: copyStrings(e.Fillable()),
		Scopes:   map[string]ScopeFunc{},
	}

	if h, ok := e.(Hidden); ok {
		d.Hidden = copyStrings(h.HiddenFields())
	}

	if s, ok := e.(Searchable); ok {
		d.Searchable = copyStrings(s.SearchableFields())
	} else {
		d.Searchable = deriveSearchable(d.Fillable)
	}

	if f, ok := e.(Filterable); ok {
		for _, ff := range f.FilterableFields() {
			d.Filters = append(d.Filters, FilterField{Name: ff.Name, Values: copyStrings(ff.Values), IgnoreCase: ff.IgnoreCase})
		}
	}

	if cd, ok := e.(ColumnDeclarer); ok {
		d.Columns = append(d.Columns, cd.Columns()...)
	}
	d.Sortable = sortableColumns(d.Columns)

	if sc, ok := e.(Scoped); ok {
		for field, fn := range sc.FilterScopes() {
			if fn != nil {
				d.Scopes[field] = fn
			}
		}
	}

	return d
}

// HasFilters reports whether the entity declared any filter field.
func (d Descriptor) HasFilters() bool {
	return len(d.Filters) > 0
}

// Filter looks up a declared filter field.
func (d Descriptor) Filter(name string) (FilterField, bool) {
	for _, f := range d.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return FilterField{}, false
}

// FilterNames returns declared filter fields in declaration order.
func (d Descriptor) FilterNames() []string {
	out := make([]string, 0, len(d.Filters))
	for _, f := range d.Filters {
		out = append(out, f.Name)
	}
	return out
}

// HasField reports whether name is mass-assignable.
func (d Descriptor) HasField(name string) bool {
	return contains(d.Fillable, name)
}

// CanSort reports whether name is a sortable column.
func (d Descriptor) CanSort(name string) bool {
	return contains(d.Sortable, name)
}

// Scope returns the registered predicate builder for field, if any.
func (d Descriptor) Scope(field string) (ScopeFunc, bool) {
	fn, ok := d.Scopes[field]
	return fn, ok
}

// Visible returns the columns selected for output: id, fillable minus
// hidden, then timestamps.
func (d Descriptor) Visible() []string {
	out := []string{"id"}
	for _, f := range d.Fillable {
		if f == "id" || f == "created_at" || f == "updated_at" || contains(d.Hidden, f) {
			continue
		}
		out = append(out, f)
	}
	return append(out, "created_at", "updated_at")
}

func deriveSearchable(fillable []string) []string {
	out := []string{}
	for _, field := range fillable {
		lower := strings.ToLower(field)
		for _, hint := range searchHints {
			if strings.Contains(lower, hint) {
				out = append(out, field)
				break
			}
		}
	}
	return out
}

func sortableColumns(cols []Column) []string {
	out := copyStrings(baseSortable)
	for _, c := range cols {
		if c.Sortable && !contains(out, c.Name) {
			out = append(out, c.Name)
		}
	}
	return out
}

func contains(arr []string, v string) bool {
	for _, s := range arr {
		if s == v {
			return true
		}
	}
	return false
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

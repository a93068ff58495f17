package query

import (
	"net/url"
	"strings"

	"bizadmin/internal/resource"
)

// widget declares filters with a scope on color.
type widget struct{}

func (widget) Table() string              { return "widgets" }
func (widget) Fillable() []string         { return []string{"name", "status", "color", "active"} }
func (widget) SearchableFields() []string { return []string{"name", "color"} }
func (widget) FilterableFields() []resource.FilterField {
	return []resource.FilterField{
		{Name: "status", Values: []string{"open", "closed"}},
		{Name: "color"},
	}
}
func (widget) FilterScopes() map[string]resource.ScopeFunc {
	return map[string]resource.ScopeFunc{
		"color": func(v string) resource.Condition {
			return resource.Condition{SQL: "LOWER(`color`) = ?", Args: []any{strings.ToLower(v)}}
		},
	}
}
func (widget) Columns() []resource.Column {
	return []resource.Column{{Name: "name", Sortable: true}, {Name: "status"}}
}

// gadget declares no filters but has an active column.
type gadget struct{}

func (gadget) Table() string      { return "gadgets" }
func (gadget) Fillable() []string { return []string{"title", "active"} }

// note declares nothing and has no active column.
type note struct{}

func (note) Table() string              { return "notes" }
func (note) Fillable() []string         { return []string{"body"} }
func (note) SearchableFields() []string { return nil }

func describe(e resource.Entity) resource.Descriptor {
	return resource.Describe(e.Table(), e)
}

func req(raw string) Request {
	q, err := url.ParseQuery(raw)
	if err != nil {
		panic(err)
	}
	return ParseRequest(q)
}

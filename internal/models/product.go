package models

import "bizadmin/internal/resource"

// Product declares no filters, so it only accepts the implicit active
// filter, and its search columns are derived from field names.
type Product struct{}

func (Product) Table() string { return "products" }

func (Product) Fillable() []string {
	return []string{"name", "slug", "description", "sku", "price", "stock", "active"}
}

func (Product) RequiredFields() []string { return []string{"name", "price"} }

func (Product) Columns() []resource.Column {
	return []resource.Column{
		{Name: "name", Label: "Name", Type: "string", Sortable: true},
		{Name: "slug", Label: "Slug", Type: "string"},
		{Name: "sku", Label: "SKU", Type: "string"},
		{Name: "price", Label: "Price", Type: "money", Sortable: true},
		{Name: "stock", Label: "Stock", Type: "integer", Sortable: true},
		{Name: "active", Label: "Active", Type: "boolean"},
	}
}

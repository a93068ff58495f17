package models

import (
	"strings"

	"bizadmin/internal/resource"
)

// Estimate statuses.
const (
	EstimateDraft    = "DRAFT"
	EstimateSent     = "SENT"
	EstimateAccepted = "ACCEPTED"
	EstimateRejected = "REJECTED"
	EstimateExpired  = "EXPIRED"
)

var EstimateStatuses = []string{EstimateDraft, EstimateSent, EstimateAccepted, EstimateRejected, EstimateExpired}

// Estimate is a priced quotation; items holds the JSON encoded line items.
type Estimate struct{}

func (Estimate) Table() string { return "estimates" }

func (Estimate) Fillable() []string {
	return []string{
		"number", "title", "customer_name", "customer_email", "status", "currency",
		"items", "subtotal", "tax", "total", "issued_at", "valid_until", "notes",
	}
}

func (Estimate) RequiredFields() []string { return []string{"number", "title", "customer_name"} }

func (Estimate) SearchableFields() []string {
	return []string{"number", "title", "customer_name", "customer_email"}
}

func (Estimate) FilterableFields() []resource.FilterField {
	return []resource.FilterField{
		{Name: "status", Values: EstimateStatuses, IgnoreCase: true},
		{Name: "customer_email"},
		{Name: "currency"},
	}
}

func (Estimate) FilterScopes() map[string]resource.ScopeFunc {
	return map[string]resource.ScopeFunc{
		"status": func(v string) resource.Condition {
			return resource.Condition{SQL: "UPPER(`status`) = ?", Args: []any{strings.ToUpper(strings.TrimSpace(v))}}
		},
	}
}

func (Estimate) Columns() []resource.Column {
	return []resource.Column{
		{Name: "number", Label: "Number", Type: "string", Sortable: true},
		{Name: "title", Label: "Title", Type: "string", Sortable: true},
		{Name: "customer_name", Label: "Customer", Type: "string"},
		{Name: "customer_email", Label: "Customer email", Type: "email"},
		{Name: "status", Label: "Status", Type: "enum", Sortable: true},
		{Name: "total", Label: "Total", Type: "money", Sortable: true},
		{Name: "issued_at", Label: "Issued", Type: "date", Sortable: true},
		{Name: "valid_until", Label: "Valid until", Type: "date"},
	}
}

// EstimateItem is one line of an estimate's items column.
type EstimateItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Amount is quantity times unit price.
func (i EstimateItem) Amount() float64 {
	return i.Quantity * i.UnitPrice
}

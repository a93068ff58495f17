package handlers

import (
	"net/http"

	"bizadmin/internal/resource"

	"github.com/gin-gonic/gin"
)

type filterSchema struct {
	Field         string   `json:"field"`
	AllowedValues []string `json:"allowed_values"`
}

type resourceSchema struct {
	Name       string            `json:"name"`
	Table      string            `json:"table"`
	Fillable   []string          `json:"fillable"`
	Searchable []string          `json:"searchable"`
	Filters    []filterSchema    `json:"filters"`
	Sortable   []string          `json:"sortable"`
	Columns    []resource.Column `json:"columns"`
}

// ListSchemas handles GET /api/schema.
func (h *API) ListSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.Registry.Names()})
}

// ShowSchema describes one resource so generic list and form screens can
// render themselves.
func (h *API) ShowSchema(c *gin.Context) {
	d, err := h.Registry.Descriptor(c.Param("resource"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := resourceSchema{
		Name:       d.Name,
		Table:      d.Table,
		Fillable:   visibleFillable(d),
		Searchable: nonNil(d.Searchable),
		Filters:    []filterSchema{},
		Sortable:   nonNil(d.Sortable),
		Columns:    d.Columns,
	}
	for _, f := range d.Filters {
		out.Filters = append(out.Filters, filterSchema{Field: f.Name, AllowedValues: nonNil(f.Values)})
	}
	if out.Columns == nil {
		out.Columns = []resource.Column{}
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func visibleFillable(d resource.Descriptor) []string {
	hidden := map[string]bool{}
	for _, h := range d.Hidden {
		hidden[h] = true
	}
	out := []string{}
	for _, f := range d.Fillable {
		if !hidden[f] {
			out = append(out, f)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

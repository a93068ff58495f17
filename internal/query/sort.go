package query

import (
	"strings"

	"bizadmin/internal/domain"
	"bizadmin/internal/resource"
)

// ApplySort validates sort/dir. Without sort the natural order is kept and
// dir is ignored.
func ApplySort(req Request, d resource.Descriptor) (Delta, error) {
	column := strings.TrimSpace(req.Sort())
	if column == "" {
		return Delta{}, nil
	}

	dir := strings.ToLower(strings.TrimSpace(req.Dir()))
	if dir == "" {
		dir = "asc"
	}
	if dir != "asc" && dir != "desc" {
		return Delta{}, domain.InvalidParametersError{
			Msg: "Invalid sort direction. Use asc or desc",
			Details: map[string]any{
				"direction":      req.Dir(),
				"allowed_values": []string{"asc", "desc"},
			},
		}
	}

	if !d.CanSort(column) {
		return Delta{}, domain.InvalidParametersError{
			Msg: "Invalid sort column: " + column,
			Details: map[string]any{
				"column":          column,
				"allowed_columns": d.Sortable,
			},
		}
	}

	return Delta{Sort: &domain.Sort{Column: column, Direction: dir}}, nil
}

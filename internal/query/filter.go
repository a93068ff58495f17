package query

import (
	"strings"

	"bizadmin/internal/domain"
	"bizadmin/internal/resource"
	"bizadmin/internal/utils"
)

// FallbackFilterField is the only filter accepted by entities that declare
// none, provided they actually have the column.
const FallbackFilterField = "active"

// ApplyFilters validates the combined filter=field:value parameter and picks
// up individual per-field parameters. All resulting predicates are AND'ed.
func ApplyFilters(req Request, d resource.Descriptor) (Delta, error) {
	var out Delta

	combinedUsed := false
	if raw := req.Filter(); raw != "" {
		combinedUsed = true
		field, value, err := parseCombinedFilter(raw, d)
		if err != nil {
			return Delta{}, err
		}
		out.Conditions = append(out.Conditions, filterCondition(d, field, []string{value}))
		out.Filters = append(out.Filters, domain.AppliedFilter{Field: field, Value: value})
	}

	if d.HasFilters() {
		for _, f := range d.Filters {
			values := req.Values(f.Name)
			if len(values) == 0 {
				continue
			}
			out.Conditions = append(out.Conditions, filterCondition(d, f.Name, values))
			out.Filters = append(out.Filters, domain.AppliedFilter{Field: f.Name, Value: appliedValue(values)})
		}
		return out, nil
	}

	if !combinedUsed && req.Has(FallbackFilterField) && d.HasField(FallbackFilterField) {
		values := req.Values(FallbackFilterField)
		if len(values) == 0 {
			return out, nil
		}
		active, ok := utils.ParseBoolLoose(values[0])
		if !ok {
			return out, nil
		}
		out.Conditions = append(out.Conditions, Eq(FallbackFilterField, active))
		out.Filters = append(out.Filters, domain.AppliedFilter{Field: FallbackFilterField, Value: active})
	}
	return out, nil
}

func parseCombinedFilter(raw string, d resource.Descriptor) (string, string, error) {
	field, value, ok := strings.Cut(raw, ":")
	if !ok {
		return "", "", domain.InvalidParametersError{
			Msg: "Invalid filter format. Expected field:value",
			Details: map[string]any{
				"filter":          raw,
				"expected_format": "field:value",
			},
		}
	}

	if !d.HasFilters() {
		return "", "", domain.InvalidParametersError{
			Msg: "Filtering is not supported for this resource",
			Details: map[string]any{
				"filter":   raw,
				"resource": d.Name,
			},
		}
	}

	ff, declared := d.Filter(field)
	if !declared {
		return "", "", domain.InvalidParametersError{
			Msg: "Invalid filter field: " + field,
			Details: map[string]any{
				"field":            field,
				"available_fields": d.FilterNames(),
			},
		}
	}
	if !ff.Allows(value) {
		return "", "", domain.InvalidParametersError{
			Msg: "Invalid value for filter " + field,
			Details: map[string]any{
				"field":          field,
				"value":          value,
				"allowed_values": ff.Values,
			},
		}
	}
	return field, value, nil
}

// filterCondition prefers a registered scope and falls back to equality.
func filterCondition(d resource.Descriptor, field string, values []string) resource.Condition {
	if scope, ok := d.Scope(field); ok {
		if len(values) == 1 {
			return scope(values[0])
		}
		conds := make([]resource.Condition, 0, len(values))
		for _, v := range values {
			conds = append(conds, scope(v))
		}
		return Or(conds...)
	}
	if len(values) == 1 {
		return Eq(field, values[0])
	}
	return In(field, values)
}

func appliedValue(values []string) any {
	if len(values) == 1 {
		return values[0]
	}
	return values
}

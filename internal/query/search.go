package query

import (
	"strings"
	"unicode/utf8"

	"bizadmin/internal/domain"
	"bizadmin/internal/resource"
)

// MinSearchLength is the shortest accepted search term after trimming.
const MinSearchLength = 2

// ApplySearch validates the search term and ORs a substring match over the
// searchable columns. The untrimmed term is what gets matched.
func ApplySearch(req Request, d resource.Descriptor) (Delta, error) {
	term, ok := req.Search()
	if !ok {
		return Delta{}, nil
	}

	length := utf8.RuneCountInString(strings.TrimSpace(term))
	if length < MinSearchLength {
		return Delta{}, domain.InvalidParametersError{
			Msg: "Search term must be at least 2 characters long",
			Details: map[string]any{
				"search_term":    term,
				"current_length": length,
				"minimum_length": MinSearchLength,
			},
		}
	}

	if len(d.Searchable) == 0 {
		return Delta{}, nil
	}
	return Delta{Conditions: []resource.Condition{AnyLike(d.Searchable, term)}}, nil
}

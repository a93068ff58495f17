package query

import (
	"fmt"
	"math"
	"strconv"

	"bizadmin/internal/domain"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageParams are validated, not yet clamped, paging parameters.
type PageParams struct {
	Page    int
	PerPage int
	// Requested is the page as sent, kept for messages when Page was capped.
	Requested string
}

// Window is the page actually served.
type Window struct {
	CurrentPage int
	PerPage     int
	Total       int64
	LastPage    int
}

// Offset is the row offset of the window.
func (w Window) Offset() int {
	return (w.CurrentPage - 1) * w.PerPage
}

// ParsePage validates page and per_page. Errors for both fields are reported
// together as a field to message map.
func ParsePage(req Request) (PageParams, error) {
	p := PageParams{Page: DefaultPage, PerPage: DefaultPerPage}
	problems := map[string]any{}

	if raw := req.PerPage(); raw != "" {
		n, msg := parsePositive(raw)
		switch {
		case msg != "":
			problems["per_page"] = msg
		case n > MaxPerPage:
			problems["per_page"] = fmt.Sprintf("must not be greater than %d", MaxPerPage)
		default:
			p.PerPage = n
		}
	}

	if raw := req.Page(); raw != "" {
		n, msg := parsePositive(raw)
		if msg != "" {
			problems["page"] = msg
		} else {
			p.Page = n
			f, _ := strconv.ParseFloat(raw, 64)
			p.Requested = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	if len(problems) > 0 {
		return PageParams{}, domain.InvalidParametersError{
			Msg:     "Invalid pagination parameters",
			Details: problems,
		}
	}
	return p, nil
}

func parsePositive(raw string) (int, string) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, "must be a number"
	}
	if f != math.Trunc(f) {
		return 0, "must be an integer"
	}
	if f <= 0 {
		return 0, "must be greater than 0"
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, ""
	}
	return int(f), ""
}

// LastPage is ceil(total/perPage), at least 1.
func LastPage(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Clamp fits the requested page into the available pages. An overflowing
// page is served as the last page with a warning instead of failing.
func Clamp(p PageParams, total int64) (Window, []domain.Notification) {
	w := Window{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		LastPage:    LastPage(total, p.PerPage),
	}
	if w.CurrentPage <= w.LastPage {
		return w, nil
	}

	requested := p.Requested
	if requested == "" {
		requested = strconv.Itoa(p.Page)
	}
	w.CurrentPage = w.LastPage
	return w, []domain.Notification{{
		Type:    domain.NotificationWarning,
		Message: fmt.Sprintf("Requested page %s exceeds available pages. Showing page %d instead.", requested, w.CurrentPage),
		Field:   "page",
	}}
}

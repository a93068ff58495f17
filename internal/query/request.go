// Package query turns list request parameters into a validated, filtered,
// searched, sorted and paginated SQL query plus response metadata.
package query

import (
	"net/url"
	"strings"
)

// Request is the parsed, not yet validated list query. It is built once per
// HTTP request and never modified.
type Request struct {
	search    string
	hasSearch bool
	filter    string
	sort      string
	dir       string
	page      string
	perPage   string
	params    url.Values
}

// ParseRequest copies the relevant parameters out of q.
func ParseRequest(q url.Values) Request {
	params := url.Values{}
	for k, v := range q {
		params[k] = append([]string(nil), v...)
	}
	search, hasSearch := first(q, "search")
	filter, _ := first(q, "filter")
	sortCol, _ := first(q, "sort")
	dir, _ := first(q, "dir")
	page, _ := first(q, "page")
	perPage, _ := first(q, "per_page")

	return Request{
		search:    search,
		hasSearch: hasSearch && search != "",
		filter:    filter,
		sort:      sortCol,
		dir:       dir,
		page:      strings.TrimSpace(page),
		perPage:   strings.TrimSpace(perPage),
		params:    params,
	}
}

// Search returns the raw search term and whether one was sent.
func (r Request) Search() (string, bool) { return r.search, r.hasSearch }

// Filter returns the combined field:value filter parameter.
func (r Request) Filter() string { return r.filter }

func (r Request) Sort() string { return r.sort }

func (r Request) Dir() string { return r.dir }

func (r Request) Page() string { return r.page }

func (r Request) PerPage() string { return r.perPage }

// Values returns the non-empty values sent for name, accepting both
// name=v and name[]=v forms.
func (r Request) Values(name string) []string {
	out := []string{}
	for _, key := range []string{name, name + "[]"} {
		for _, v := range r.params[key] {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// Has reports whether name was sent at all.
func (r Request) Has(name string) bool {
	_, ok := r.params[name]
	return ok
}

// Echo returns a copy of the raw parameters for diagnostics.
func (r Request) Echo() map[string][]string {
	out := make(map[string][]string, len(r.params))
	for k, v := range r.params {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func first(q url.Values, key string) (string, bool) {
	v, ok := q[key]
	if !ok || len(v) == 0 {
		return "", ok
	}
	return v[0], true
}

package query

import (
	"bizadmin/internal/resource"
)

// Stage validates one concern of the request and returns its contribution.
type Stage func(Request, resource.Descriptor) (Delta, error)

// Stages run in this order; search and filters narrow the rows that the
// pagination count later sees.
var Stages = []Stage{ApplySearch, ApplyFilters, ApplySort}

// Plan runs every stage and the pagination validation. It stops at the first
// failure, before any SQL is executed.
func Plan(req Request, d resource.Descriptor) (State, PageParams, error) {
	var st State
	for _, stage := range Stages {
		delta, err := stage(req, d)
		if err != nil {
			return State{}, PageParams{}, err
		}
		st = st.Fold(delta)
	}

	pp, err := ParsePage(req)
	if err != nil {
		return State{}, PageParams{}, err
	}
	return st, pp, nil
}

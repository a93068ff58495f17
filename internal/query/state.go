package query

import (
	"bizadmin/internal/domain"
	"bizadmin/internal/resource"
)

// Delta is what one stage contributes to the query and its metadata.
type Delta struct {
	Conditions    []resource.Condition
	Filters       []domain.AppliedFilter
	Sort          *domain.Sort
	Notifications []domain.Notification
}

// State accumulates stage deltas. Fold returns a new State and leaves the
// receiver untouched.
type State struct {
	conditions    []resource.Condition
	filters       map[string]domain.AppliedFilter
	sort          *domain.Sort
	notifications []domain.Notification
}

func (s State) Fold(d Delta) State {
	next := State{
		conditions:    append(append([]resource.Condition(nil), s.conditions...), d.Conditions...),
		filters:       make(map[string]domain.AppliedFilter, len(s.filters)+len(d.Filters)),
		sort:          s.sort,
		notifications: append(append([]domain.Notification(nil), s.notifications...), d.Notifications...),
	}
	for k, v := range s.filters {
		next.filters[k] = v
	}
	for _, f := range d.Filters {
		next.filters[f.Field] = f
	}
	if d.Sort != nil {
		sortCopy := *d.Sort
		next.sort = &sortCopy
	}
	return next
}

// Apply writes the accumulated predicates and ordering onto b.
func (s State) Apply(b *Builder) *Builder {
	for _, c := range s.conditions {
		b.Where(c)
	}
	if s.sort != nil {
		b.OrderBy(s.sort.Column, s.sort.Direction)
	}
	return b
}

// Filters returns applied filters keyed by field.
func (s State) Filters() map[string]domain.AppliedFilter {
	out := make(map[string]domain.AppliedFilter, len(s.filters))
	for k, v := range s.filters {
		out[k] = v
	}
	return out
}

func (s State) Sort() *domain.Sort { return s.sort }

func (s State) Notifications() []domain.Notification {
	return append([]domain.Notification(nil), s.notifications...)
}

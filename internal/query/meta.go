package query

import (
	"bizadmin/internal/domain"
)

// Pagination is the paging block of a list response.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// Meta echoes the applied query state.
type Meta struct {
	Filters map[string]domain.AppliedFilter `json:"filters"`
	Sort    *domain.Sort                    `json:"sort"`
}

// Envelope is the list response shared by every resource.
type Envelope struct {
	Data          []domain.Record       `json:"data"`
	Pagination    Pagination            `json:"pagination"`
	Meta          Meta                  `json:"meta"`
	Notifications []domain.Notification `json:"notifications,omitempty"`
}

// Assemble merges the folded state and the served window into an envelope.
func Assemble(rows []domain.Record, w Window, s State) Envelope {
	if rows == nil {
		rows = []domain.Record{}
	}
	p := Pagination{
		CurrentPage: w.CurrentPage,
		PerPage:     w.PerPage,
		Total:       w.Total,
		LastPage:    w.LastPage,
	}
	if len(rows) > 0 {
		p.From = w.Offset() + 1
		p.To = w.Offset() + len(rows)
	}
	return Envelope{
		Data:       rows,
		Pagination: p,
		Meta: Meta{
			Filters: s.Filters(),
			Sort:    s.Sort(),
		},
		Notifications: s.Notifications(),
	}
}

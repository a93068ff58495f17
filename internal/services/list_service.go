package services

import (
	"context"
	"fmt"
	"net/url"

	"bizadmin/internal/domain"
	"bizadmin/internal/query"
	"bizadmin/internal/repositories"
	"bizadmin/internal/resource"
	"bizadmin/internal/utils"
)

// RowStore is the persistence the list pipeline needs.
type RowStore interface {
	Count(ctx context.Context, b *query.Builder) (int64, error)
	Fetch(ctx context.Context, b *query.Builder) ([]domain.Record, error)
}

// ListService runs one list request end to end: resolve, validate every
// parameter, count, clamp the page, fetch, assemble the envelope.
type ListService struct {
	Registry  *resource.Registry
	Store     RowStore
	RequestID string
}

func (s ListService) store() RowStore {
	if s.Store != nil {
		return s.Store
	}
	return repositories.ResourceRepository{}
}

// List never returns raw store errors; anything unexpected is logged here
// and surfaced as domain.InternalError.
func (s ListService) List(ctx context.Context, name string, params url.Values) (query.Envelope, error) {
	d, err := s.Registry.Descriptor(name)
	if err != nil {
		return query.Envelope{}, err
	}

	req := query.ParseRequest(params)
	state, pp, err := query.Plan(req, d)
	if err != nil {
		return query.Envelope{}, err
	}

	b := state.Apply(query.NewBuilder(d.Table, d.Visible()...))

	total, err := s.store().Count(ctx, b)
	if err != nil {
		return query.Envelope{}, s.internal("count", d, req, err)
	}

	window, notes := query.Clamp(pp, total)
	state = state.Fold(query.Delta{Notifications: notes})

	rows, err := s.store().Fetch(ctx, b.Page(window.CurrentPage, window.PerPage))
	if err != nil {
		return query.Envelope{}, s.internal("fetch", d, req, err)
	}

	utils.LogEvent(s.RequestID, "list", "list_"+d.Table,
		fmt.Sprintf("total=%d page=%d per_page=%d", total, window.CurrentPage, window.PerPage))
	return query.Assemble(rows, window, state), nil
}

func (s ListService) internal(action string, d resource.Descriptor, req query.Request, err error) error {
	utils.LogError(s.RequestID, "list", action+"_"+d.Table, err, map[string]any{"params": req.Echo()})
	return domain.InternalError{Msg: "failed to load " + d.Name, Err: err}
}

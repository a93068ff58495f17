package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bizadmin/internal/domain"
	"bizadmin/internal/repositories"
	"bizadmin/internal/resource"
	"bizadmin/internal/utils"
)

// RecordStore is the persistence the single-record operations need.
type RecordStore interface {
	FindByID(ctx context.Context, d resource.Descriptor, id int64) (domain.Record, error)
	Insert(ctx context.Context, d resource.Descriptor, values map[string]any) (int64, error)
	Update(ctx context.Context, d resource.Descriptor, id int64, values map[string]any) error
	Delete(ctx context.Context, d resource.Descriptor, id int64) error
}

// ResourceService handles show/create/update/delete for any registered
// entity, sharing the resolver with the list pipeline.
type ResourceService struct {
	Registry  *resource.Registry
	Store     RecordStore
	RequestID string
}

func (s ResourceService) store() RecordStore {
	if s.Store != nil {
		return s.Store
	}
	return repositories.ResourceRepository{}
}

func (s ResourceService) Show(ctx context.Context, name string, id int64) (domain.Record, error) {
	d, err := s.Registry.Descriptor(name)
	if err != nil {
		return nil, err
	}
	return s.store().FindByID(ctx, d, id)
}

func (s ResourceService) Create(ctx context.Context, name string, payload map[string]any) (domain.Record, error) {
	e, err := s.Registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	d, err := s.Registry.Descriptor(name)
	if err != nil {
		return nil, err
	}

	values := fillable(d, payload)
	if err := beforeSave(e, values); err != nil {
		return nil, err
	}
	if req, ok := e.(resource.Required); ok {
		missing := map[string]string{}
		for _, f := range req.RequiredFields() {
			if isBlank(values[f]) {
				missing[f] = "is required"
			}
		}
		if len(missing) > 0 {
			return nil, domain.ValidationError{Msg: "The given data was invalid", Fields: missing}
		}
	}
	if len(values) == 0 {
		return nil, domain.ValidationError{Msg: "no fillable fields in payload"}
	}

	id, err := s.store().Insert(ctx, d, values)
	if err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "resource", "create_"+d.Table, "id="+strconv.FormatInt(id, 10))
	return s.store().FindByID(ctx, d, id)
}

func (s ResourceService) Update(ctx context.Context, name string, id int64, payload map[string]any) (domain.Record, error) {
	e, err := s.Registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	d, err := s.Registry.Descriptor(name)
	if err != nil {
		return nil, err
	}

	values := fillable(d, payload)
	if err := beforeSave(e, values); err != nil {
		return nil, err
	}
	if req, ok := e.(resource.Required); ok {
		blanked := map[string]string{}
		for _, f := range req.RequiredFields() {
			if v, sent := values[f]; sent && isBlank(v) {
				blanked[f] = "must not be empty"
			}
		}
		if len(blanked) > 0 {
			return nil, domain.ValidationError{Msg: "The given data was invalid", Fields: blanked}
		}
	}
	if len(values) == 0 {
		return nil, domain.ValidationError{Msg: "no fillable fields in payload"}
	}

	if err := s.store().Update(ctx, d, id, values); err != nil {
		return nil, err
	}
	utils.LogEvent(s.RequestID, "resource", "update_"+d.Table, "id="+strconv.FormatInt(id, 10)+" fields="+strings.Join(keys(values), ","))
	return s.store().FindByID(ctx, d, id)
}

func (s ResourceService) Delete(ctx context.Context, name string, id int64) error {
	d, err := s.Registry.Descriptor(name)
	if err != nil {
		return err
	}
	if err := s.store().Delete(ctx, d, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "resource", "delete_"+d.Table, "id="+strconv.FormatInt(id, 10))
	return nil
}

// fillable keeps only mass-assignable keys. Nested JSON values are stored
// as their JSON text.
func fillable(d resource.Descriptor, payload map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range payload {
		if !d.HasField(k) {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			raw, err := json.Marshal(v)
			if err != nil {
				continue
			}
			out[k] = string(raw)
		default:
			out[k] = v
		}
	}
	return out
}

func beforeSave(e resource.Entity, values map[string]any) error {
	saver, ok := e.(resource.Saver)
	if !ok {
		return nil
	}
	if err := saver.BeforeSave(values); err != nil {
		return domain.InternalError{Msg: "failed to prepare record", Err: err}
	}
	return nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return strings.TrimSpace(fmt.Sprint(v)) == ""
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

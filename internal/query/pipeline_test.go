package query

import (
	"testing"

	"bizadmin/internal/domain"
	"bizadmin/internal/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanBuildsQueryInStageOrder(t *testing.T) {
	d := describe(widget{})
	st, pp, err := Plan(req("search=ab&filter=status:open&sort=name&dir=desc&page=2&per_page=5"), d)
	require.NoError(t, err)
	assert.Equal(t, PageParams{Page: 2, PerPage: 5, Requested: "2"}, pp)

	b := st.Apply(NewBuilder(d.Table, "id", "name"))
	q, args := b.Page(pp.Page, pp.PerPage).SelectSQL()
	assert.Equal(t, "SELECT `id`, `name` FROM `widgets` WHERE (`name` LIKE ? OR `color` LIKE ?) AND (`status` = ?) ORDER BY `name` DESC LIMIT ? OFFSET ?", q)
	assert.Equal(t, []any{"%ab%", "%ab%", "open", 5, 5}, args)
}

func TestPlanStopsAtFirstFailure(t *testing.T) {
	// search fails before the bad sort and bad page are looked at
	_, _, err := Plan(req("search=a&sort=nope&page=zero"), describe(widget{}))
	inv := invalidDetails(t, err)
	assert.Contains(t, inv.Details, "minimum_length")

	_, _, err = Plan(req("sort=nope&page=zero"), describe(widget{}))
	inv = invalidDetails(t, err)
	assert.Contains(t, inv.Details, "allowed_columns")
}

func TestStateFoldIsImmutable(t *testing.T) {
	var base State
	a := base.Fold(Delta{
		Conditions: []resource.Condition{Eq("status", "open")},
		Filters:    []domain.AppliedFilter{{Field: "status", Value: "open"}},
	})
	b := a.Fold(Delta{
		Sort:          &domain.Sort{Column: "name", Direction: "asc"},
		Notifications: []domain.Notification{{Type: domain.NotificationInfo, Message: "hi"}},
	})

	assert.Empty(t, base.Filters())
	assert.Nil(t, a.Sort())
	assert.Empty(t, a.Notifications())
	assert.Len(t, b.Filters(), 1)
	assert.Equal(t, "name", b.Sort().Column)
	assert.Len(t, b.Notifications(), 1)

	// later deltas override a filter on the same field
	c := b.Fold(Delta{Filters: []domain.AppliedFilter{{Field: "status", Value: "closed"}}})
	assert.Equal(t, "closed", c.Filters()["status"].Value)
	assert.Equal(t, "open", b.Filters()["status"].Value)
}

func TestAssembleEnvelope(t *testing.T) {
	st := State{}.Fold(Delta{Filters: []domain.AppliedFilter{{Field: "status", Value: "open"}}})
	rows := []domain.Record{{"id": int64(6)}, {"id": int64(7)}}
	env := Assemble(rows, Window{CurrentPage: 2, PerPage: 5, Total: 7, LastPage: 2}, st)

	assert.Equal(t, Pagination{CurrentPage: 2, PerPage: 5, Total: 7, LastPage: 2, From: 6, To: 7}, env.Pagination)
	assert.Equal(t, "open", env.Meta.Filters["status"].Value)
	assert.Nil(t, env.Meta.Sort)
	assert.Empty(t, env.Notifications)

	empty := Assemble(nil, Window{CurrentPage: 1, PerPage: 20, LastPage: 1}, State{})
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
	assert.Zero(t, empty.Pagination.From)
	assert.Zero(t, empty.Pagination.To)
}

package services

import (
	"context"
	"errors"
	"testing"

	"bizadmin/internal/domain"
	"bizadmin/internal/repositories"
	"bizadmin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTotaler struct{}

func (failingTotaler) EstimateTotals(context.Context, string, string) ([]repositories.StatusTotal, error) {
	return nil, errors.New("boom")
}

func TestReportsService_EstimateSummary(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := []struct {
		number, status, issued string
		total                  float64
	}{
		{"EST-1", "DRAFT", "2026-01-05", 100},
		{"EST-2", "sent", "2026-01-10", 250},
		{"EST-3", "SENT", "2026-01-31", 50},
		{"EST-4", "ACCEPTED", "2026-02-01", 999},
	}
	for _, s := range seed {
		testutil.Insert(t, db, "estimates", map[string]any{
			"number": s.number, "title": "Job", "customer_name": "Acme",
			"status": s.status, "issued_at": s.issued, "total": s.total,
		})
	}
	svc := ReportsService{Store: repositories.ReportRepository{DB: db}, RequestID: "test"}

	t.Run("inclusive range", func(t *testing.T) {
		r, err := svc.EstimateSummary(context.Background(), EstimateReportFilter{StartDate: "2026-01-01", EndDate: "2026-01-31"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), r.Count)
		assert.InDelta(t, 400.0, r.Total, 0.001)
		require.Len(t, r.ByStatus, 2)
		assert.Equal(t, repositories.StatusTotal{Status: "DRAFT", Count: 1, Total: 100}, r.ByStatus[0])
		assert.Equal(t, repositories.StatusTotal{Status: "SENT", Count: 2, Total: 300}, r.ByStatus[1])
	})

	t.Run("open range", func(t *testing.T) {
		r, err := svc.EstimateSummary(context.Background(), EstimateReportFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), r.Count)
		assert.Len(t, r.ByStatus, 3)
	})

	t.Run("invalid dates", func(t *testing.T) {
		_, err := svc.EstimateSummary(context.Background(), EstimateReportFilter{StartDate: "yesterday", EndDate: "2026-13-01"})
		invalid := invalidParams(t, err)
		assert.Contains(t, invalid.Details, "start_date")
		assert.Contains(t, invalid.Details, "end_date")
	})

	t.Run("reversed range", func(t *testing.T) {
		_, err := svc.EstimateSummary(context.Background(), EstimateReportFilter{StartDate: "2026-02-01", EndDate: "2026-01-01"})
		assert.True(t, domain.IsInvalidParameters(err))
		invalid := invalidParams(t, err)
		assert.Equal(t, "must not be before start_date", invalid.Details["end_date"])
	})

	t.Run("store failure", func(t *testing.T) {
		_, err := ReportsService{Store: failingTotaler{}}.EstimateSummary(context.Background(), EstimateReportFilter{})
		assert.True(t, domain.IsInternal(err))
	})
}

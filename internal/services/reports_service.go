package services

import (
	"context"
	"fmt"

	"bizadmin/internal/domain"
	"bizadmin/internal/repositories"
	"bizadmin/internal/utils"
)

type EstimateReportFilter struct {
	StartDate string
	EndDate   string
}

// EstimateReport is the estimates pipeline summary shown on the dashboard.
type EstimateReport struct {
	StartDate string                     `json:"start_date,omitempty"`
	EndDate   string                     `json:"end_date,omitempty"`
	Count     int64                      `json:"count"`
	Total     float64                    `json:"total"`
	ByStatus  []repositories.StatusTotal `json:"by_status"`
}

type EstimateTotaler interface {
	EstimateTotals(ctx context.Context, startDate, endBefore string) ([]repositories.StatusTotal, error)
}

type ReportsService struct {
	Store     EstimateTotaler
	RequestID string
}

// EstimateSummary totals estimates issued between the inclusive dates.
func (s ReportsService) EstimateSummary(ctx context.Context, f EstimateReportFilter) (EstimateReport, error) {
	problems := map[string]any{}
	var endBefore string

	if f.StartDate != "" {
		if _, err := utils.ParseDate(f.StartDate); err != nil {
			problems["start_date"] = "must be a date (YYYY-MM-DD)"
		}
	}
	if f.EndDate != "" {
		end, err := utils.ParseDate(f.EndDate)
		if err != nil {
			problems["end_date"] = "must be a date (YYYY-MM-DD)"
		} else {
			endBefore = utils.FormatDate(end.AddDate(0, 0, 1))
		}
	}
	if len(problems) == 0 && f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		problems["end_date"] = "must not be before start_date"
	}
	if len(problems) > 0 {
		return EstimateReport{}, domain.InvalidParametersError{Msg: "Invalid report parameters", Details: problems}
	}

	store := s.Store
	if store == nil {
		store = repositories.ReportRepository{}
	}
	rows, err := store.EstimateTotals(ctx, f.StartDate, endBefore)
	if err != nil {
		utils.LogError(s.RequestID, "reports", "estimate_summary", err, map[string]any{"start": f.StartDate, "end": f.EndDate})
		return EstimateReport{}, domain.InternalError{Msg: "failed to build report", Err: err}
	}

	report := EstimateReport{StartDate: f.StartDate, EndDate: f.EndDate, ByStatus: rows}
	for _, r := range rows {
		report.Count += r.Count
		report.Total += r.Total
	}
	utils.LogEvent(s.RequestID, "reports", "estimate_summary", fmt.Sprintf("count=%d", report.Count))
	return report, nil
}

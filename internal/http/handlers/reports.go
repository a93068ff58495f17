package handlers

import (
	"net/http"
	"strings"

	"bizadmin/internal/http/middleware"
	"bizadmin/internal/repositories"
	"bizadmin/internal/services"

	"github.com/gin-gonic/gin"
)

// EstimateReport handles GET /api/reports/estimates with an optional
// start_date/end_date range.
func (h *API) EstimateReport(c *gin.Context) {
	svc := services.ReportsService{
		Store:     repositories.ReportRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
	report, err := svc.EstimateSummary(c.Request.Context(), services.EstimateReportFilter{
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

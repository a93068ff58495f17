package handlers

import (
	"net/http"

	"bizadmin/internal/http/middleware"
	"bizadmin/internal/repositories"
	"bizadmin/internal/services"

	"github.com/gin-gonic/gin"
)

// EstimatePDF returns the estimate document inline.
func (h *API) EstimatePDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	svc := services.DocsService{
		Registry:  h.Registry,
		Store:     repositories.ResourceRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.EstimatePDF(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

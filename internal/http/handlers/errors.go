package handlers

import (
	"errors"
	"net/http"

	"bizadmin/internal/domain"
	"bizadmin/internal/http/middleware"
	"bizadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   any    `json:"details"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
		Message:   message,
	})
}

// RespondDomainError maps domain errors to HTTP responses. Anything not
// recognized is logged and answered with a bare 500.
func RespondDomainError(c *gin.Context, err error) {
	var (
		invalid    domain.InvalidParametersError
		validation domain.ValidationError
	)
	switch {
	case errors.As(err, &invalid):
		respondError(c, http.StatusBadRequest, domain.CodeInvalidParameters, invalid.Error(), invalid.Details)
	case errors.As(err, &validation):
		var details any
		if len(validation.Fields) > 0 {
			details = validation.Fields
		} else if validation.Field != "" {
			details = map[string]string{validation.Field: validation.Msg}
		}
		respondError(c, http.StatusUnprocessableEntity, domain.CodeValidationFailed, validation.Error(), details)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, domain.CodeNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, domain.CodeConflict, err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, domain.CodeUnauthorized, err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err, nil)
		respondError(c, http.StatusInternalServerError, domain.CodeInternal, "internal server error", nil)
	}
}

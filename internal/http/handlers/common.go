package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"bizadmin/internal/domain"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, domain.CodeInvalidParameters, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, domain.CodeInvalidParameters, "invalid JSON payload", gin.H{"body": err.Error()})
		return false
	}
	return true
}

// paramID reads a positive integer :id path parameter.
func paramID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, domain.CodeInvalidParameters, "Invalid id", gin.H{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

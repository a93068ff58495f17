package middleware

import (
	"log"
	"net/http"

	"bizadmin/internal/domain"

	"github.com/gin-gonic/gin"
)

// abort writes the same error envelope the handlers use.
func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    nil,
		"request_id": GetRequestID(c),
		"message":    message,
	})
}

// Recovery turns a panic into a 500 envelope and logs it server-side.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[HTTP] action=panic request_id=%s path=%s msg=%v", GetRequestID(c), c.Request.URL.Path, recovered)
		abort(c, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	})
}

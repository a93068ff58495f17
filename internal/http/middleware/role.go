package middleware

import (
	"net/http"
	"strings"

	"bizadmin/internal/domain"
	"bizadmin/internal/resource"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows only callers whose role is in allowedRoles. It must run
// after AuthRequired, which sets the role on the context.
//
//	r.DELETE("/:resource/:id", RequireRoles("admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized, "unauthorized: no role on request")
			return
		}
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			abort(c, http.StatusForbidden, domain.CodeForbidden, "forbidden: role not allowed")
			return
		}
		c.Next()
	}
}

// RequireRolesFor applies RequireRoles only when the :resource path param
// names one of the given resources, in any spelling the resolver accepts
// ("users", "User", "user").
func RequireRolesFor(resources []string, allowedRoles ...string) gin.HandlerFunc {
	guarded := make(map[string]struct{}, len(resources))
	for _, name := range resources {
		guarded[resource.StudlySingular(name)] = struct{}{}
	}
	check := RequireRoles(allowedRoles...)

	return func(c *gin.Context) {
		if _, ok := guarded[resource.StudlySingular(c.Param("resource"))]; !ok {
			c.Next()
			return
		}
		check(c)
	}
}

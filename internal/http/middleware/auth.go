package middleware

import (
	"context"
	"net/http"
	"strings"

	"bizadmin/internal/domain"
	"bizadmin/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	claimsKey   = "claims"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(ctx context.Context, raw, wantType string) (*services.Claims, error)
}

// AuthRequired accepts only valid, unrevoked access tokens and stores the
// caller's id and role on the context.
func AuthRequired(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized, "missing bearer token")
			return
		}

		claims, err := p.Parse(c.Request.Context(), raw, services.TokenAccess)
		if err != nil {
			if domain.IsUnauthorized(err) {
				abort(c, http.StatusUnauthorized, domain.CodeUnauthorized, err.Error())
				return
			}
			abort(c, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
			return
		}

		c.Set(userIDKey, claims.UserID())
		c.Set(userRoleKey, claims.Role)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the verified claims set by AuthRequired.
func GetClaims(c *gin.Context) *services.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*services.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetRequestContext returns the caller identity for services.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID: domain.ID(c.GetInt64(userIDKey)),
		Role:   c.GetString(userRoleKey),
	}
}

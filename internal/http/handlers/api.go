package handlers

import (
	"database/sql"

	"bizadmin/internal/http/middleware"
	"bizadmin/internal/repositories"
	"bizadmin/internal/resource"
	"bizadmin/internal/services"

	"github.com/gin-gonic/gin"
)

// API holds what handlers share across requests. A nil DB falls back to the
// pool in config.
type API struct {
	DB       *sql.DB
	Dialect  string // mysql | sqlite, defaults to config.DBDriver
	Registry *resource.Registry
	// Auth carries the signing secret and TTLs; stores are filled per request.
	Auth services.AuthService
}

func (h *API) listService(c *gin.Context) services.ListService {
	return services.ListService{
		Registry:  h.Registry,
		Store:     repositories.ResourceRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *API) resourceService(c *gin.Context) services.ResourceService {
	return services.ResourceService{
		Registry:  h.Registry,
		Store:     repositories.ResourceRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

// AuthService is also the token parser behind middleware.AuthRequired.
func (h *API) AuthService(c *gin.Context) services.AuthService {
	svc := h.Auth
	svc.Users = repositories.UserRepository{DB: h.DB}
	svc.Tokens = repositories.TokenRepository{DB: h.DB}
	if c != nil {
		svc.RequestID = middleware.GetRequestID(c)
	}
	return svc
}

package api

import (
	"log"

	intconfig "bizadmin/internal/config"
	h "bizadmin/internal/http/handlers"
	"bizadmin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Roles allowed to write resources and read reports.
var (
	writerRoles = []string{"admin", "staff"}
	adminRoles  = []string{"admin"}

	// Accounts carry roles and passwords; only admins may write them.
	adminOnlyResources = []string{"users"}
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(h.NoRoute)

	requireAuth := middleware.AuthRequired(a.AuthService(nil))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", a.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", a.Login)
		auth.POST("/refresh", a.Refresh)
		auth.POST("/logout", requireAuth, a.Logout)
		auth.GET("/me", requireAuth, a.Me)

		// Schema for the generic admin screens
		schema := api.Group("/schema", requireAuth)
		schema.GET("", a.ListSchemas)
		schema.GET("/:resource", a.ShowSchema)

		// Documents
		docs := api.Group("/documents", requireAuth)
		docs.GET("/estimates/:id", a.EstimatePDF)

		// Reports
		reports := api.Group("/reports", requireAuth, middleware.RequireRoles(writerRoles...))
		reports.GET("/estimates", a.EstimateReport)

		// Generic resources
		v1 := api.Group("/v1", requireAuth)
		mountResources(v1, a)
	}

	h.SetRouter(r)
	return r
}

func mountResources(g *gin.RouterGroup, a *h.API) {
	g.GET("/:resource", a.ListResources)
	g.GET("/:resource/:id", a.ShowResource)

	writers := g.Group("", middleware.RequireRoles(writerRoles...), middleware.RequireRolesFor(adminOnlyResources, adminRoles...))
	writers.POST("/:resource", a.CreateResource)
	writers.PUT("/:resource/:id", a.UpdateResource)
	writers.PATCH("/:resource/:id", a.UpdateResource)

	g.DELETE("/:resource/:id", middleware.RequireRoles(adminRoles...), a.DeleteResource)
}

package handlers

import (
	"net/http"
	"sync"

	intconfig "bizadmin/internal/config"
	intdb "bizadmin/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "bizadmin is running"})
}

func (h *API) DBCheck(c *gin.Context) {
	db := h.DB
	if db == nil {
		db = intconfig.DB
	}
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database not connected", nil)
		return
	}
	dialect := intconfig.DBDriver
	if dialect == "" {
		dialect = "mysql"
	}
	if h.Dialect != "" {
		dialect = h.Dialect
	}
	if !intdb.HasTable(db, dialect, "users") {
		respondError(c, http.StatusServiceUnavailable, "SCHEMA_MISSING", "schema not migrated, run `bizadmin migrate up`", nil)
		return
	}
	var count int
	if err := db.QueryRowContext(c.Request.Context(), "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		respondError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database query failed", gin.H{"db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "users_in_db": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "NOT_READY", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// NoRoute answers unknown paths with the standard envelope.
func NoRoute(c *gin.Context) {
	respondError(c, http.StatusNotFound, "ROUTE_NOT_FOUND", "route not found", gin.H{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	})
}

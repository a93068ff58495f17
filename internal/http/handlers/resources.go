package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResources handles GET /api/v1/:resource.
func (h *API) ListResources(c *gin.Context) {
	env, err := h.listService(c).List(c.Request.Context(), c.Param("resource"), c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (h *API) ShowResource(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := h.resourceService(c).Show(c.Request.Context(), c.Param("resource"), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *API) CreateResource(c *gin.Context) {
	var payload map[string]any
	if !BindJSONOrError(c, &payload) {
		return
	}
	rec, err := h.resourceService(c).Create(c.Request.Context(), c.Param("resource"), payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": rec})
}

// UpdateResource serves both PUT and PATCH; only sent fields change.
func (h *API) UpdateResource(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload map[string]any
	if !BindJSONOrError(c, &payload) {
		return
	}
	rec, err := h.resourceService(c).Update(c.Request.Context(), c.Param("resource"), id, payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (h *API) DeleteResource(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.resourceService(c).Delete(c.Request.Context(), c.Param("resource"), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "id": id})
}

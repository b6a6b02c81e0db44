package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashionforward/psp-router/internal/catalog"
)

type HealthHandler struct {
	catalog *catalog.Catalog
}

func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// Health reports readiness: the service is healthy as long as the provider
// catalog loaded with a full complement of processors.
func (h *HealthHandler) Health(c *gin.Context) {
	providers := h.catalog.Size()
	if providers == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"providers": providers,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"providers": providers,
	})
}

package handler

import (
	"github.com/gin-gonic/gin"

	appintegration "github.com/kobo/backend/internal/application/integration"
)

// MappingHandler handles product-name mapping endpoints
type MappingHandler struct {
	BaseHandler
	mappingService *appintegration.MappingService
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(mappingService *appintegration.MappingService) *MappingHandler {
	return &MappingHandler{mappingService: mappingService}
}

// List returns every stored mapping row
func (h *MappingHandler) List(c *gin.Context) {
	rows, err := h.mappingService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Sync reloads the mapping table from the spreadsheet source
func (h *MappingHandler) Sync(c *gin.Context) {
	count, err := h.mappingService.Sync(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"rows": count})
}

// RegisterRoutes registers the mapping routes
func (h *MappingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mappings := rg.Group("/mappings")
	{
		mappings.GET("", h.List)
		mappings.POST("/sync", h.Sync)
	}
}

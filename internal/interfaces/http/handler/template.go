package handler

import (
	"github.com/gin-gonic/gin"

	appmessaging "github.com/kobo/backend/internal/application/messaging"
)

// TemplateHandler handles message template editing endpoints
type TemplateHandler struct {
	BaseHandler
	templateService *appmessaging.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *appmessaging.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Get returns the saved template for a type
func (h *TemplateHandler) Get(c *gin.Context) {
	resp, err := h.templateService.GetByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update replaces the template content for a type
func (h *TemplateHandler) Update(c *gin.Context) {
	var req appmessaging.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.templateService.Update(c.Request.Context(), c.Param("type"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reset restores the built-in template for a type
func (h *TemplateHandler) Reset(c *gin.Context) {
	resp, err := h.templateService.ResetToDefault(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PreviewRequest carries draft content to preview. Empty content previews
// the saved template instead.
type PreviewRequest struct {
	Content string `json:"content"`
}

// Preview renders template content against fixed sample values
func (h *TemplateHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.templateService.Preview(c.Request.Context(), c.Param("type"), req.Content)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers the template routes
func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/templates")
	{
		templates.GET("/:type", h.Get)
		templates.PUT("/:type", h.Update)
		templates.POST("/:type/reset", h.Reset)
		templates.POST("/:type/preview", h.Preview)
	}
}

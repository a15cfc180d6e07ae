package handler

import (
	"github.com/gin-gonic/gin"

	appshipping "github.com/kobo/backend/internal/application/shipping"
)

// LabelHandler handles shipping label endpoints
type LabelHandler struct {
	BaseHandler
	labelService *appshipping.LabelService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *appshipping.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// IssueRequest is the body for issuing a label
type IssueRequest struct {
	ShippingMethod string `json:"shipping_method" binding:"required"`
}

// Issue issues a new label for an order. Reissuing is allowed; each call
// produces a fresh label.
func (h *LabelHandler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.labelService.IssueLabel(c.Request.Context(), appshipping.IssueLabelRequest{
		OrderID:        c.Param("id"),
		ShippingMethod: req.ShippingMethod,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByOrder returns all labels issued for an order, newest first
func (h *LabelHandler) ListByOrder(c *gin.Context) {
	labels, err := h.labelService.ListByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, labels)
}

// Get returns one label by ID
func (h *LabelHandler) Get(c *gin.Context) {
	resp, err := h.labelService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers the label routes
func (h *LabelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/labels", h.Issue)
	rg.GET("/orders/:id/labels", h.ListByOrder)
	rg.GET("/labels/:id", h.Get)
}

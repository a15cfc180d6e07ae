package handler

import (
	"github.com/gin-gonic/gin"

	appmessaging "github.com/kobo/backend/internal/application/messaging"
)

// MessageHandler handles customer message generation endpoints
type MessageHandler struct {
	BaseHandler
	generateService *appmessaging.GenerateService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(generateService *appmessaging.GenerateService) *MessageHandler {
	return &MessageHandler{generateService: generateService}
}

// GenerateThanks generates the post-purchase thank-you message for an order
func (h *MessageHandler) GenerateThanks(c *gin.Context) {
	resp, err := h.generateService.GeneratePurchaseThanks(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GenerateShippingNotice generates the shipped notification for an order
func (h *MessageHandler) GenerateShippingNotice(c *gin.Context) {
	resp, err := h.generateService.GenerateShippingNotice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers the message generation routes
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/messages/thanks", h.GenerateThanks)
	rg.POST("/orders/:id/messages/shipping-notice", h.GenerateShippingNotice)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/kobo/backend/internal/application/order"
	"github.com/kobo/backend/internal/domain/order"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *apporder.Service
	fetchService *apporder.FetchService // nil when mail ingestion is not configured
	fetchBatch   int
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporder.Service, fetchService *apporder.FetchService, fetchBatch int) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		fetchService: fetchService,
		fetchBatch:   fetchBatch,
	}
}

// List returns all orders newest first, or a buyer-name search when the
// buyer_name query parameter is present
func (h *OrderHandler) List(c *gin.Context) {
	if name := c.Query("buyer_name"); name != "" {
		orders, err := h.orderService.SearchByBuyerName(c.Request.Context(), name)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, orders)
		return
	}

	orders, err := h.orderService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListPending returns pending orders oldest first with waiting-time fields
func (h *OrderHandler) ListPending(c *gin.Context) {
	orders, err := h.orderService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one order by its marketplace order ID
func (h *OrderHandler) Get(c *gin.Context) {
	resp, err := h.orderService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkShippedRequest is the body for marking an order shipped. A tracking
// number key that is present but blank is rejected, absent means none issued.
type MarkShippedRequest struct {
	ShippingMethod string  `json:"shipping_method" binding:"required"`
	TrackingNumber *string `json:"tracking_number"`
}

// MarkShipped transitions an order to shipped
func (h *OrderHandler) MarkShipped(c *gin.Context) {
	var req MarkShippedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.MarkAsShipped(c.Request.Context(), apporder.MarkShippedRequest{
		OrderID:        c.Param("id"),
		ShippingMethod: req.ShippingMethod,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// FetchNow runs one mailbox ingestion pass on demand
func (h *OrderHandler) FetchNow(c *gin.Context) {
	if h.fetchService == nil {
		h.Error(c, http.StatusServiceUnavailable, "FETCH_UNAVAILABLE", "Mail ingestion is not configured")
		return
	}

	result, err := h.fetchService.FetchNewOrders(c.Request.Context(), order.FetchOptions{
		MaxResults: h.fetchBatch,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/pending", h.ListPending)
		orders.POST("/fetch", h.FetchNow)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/ship", h.MarkShipped)
	}
}

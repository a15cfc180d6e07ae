package messaging

import (
	"context"

	"github.com/kobo/backend/internal/domain/messaging"
	"github.com/kobo/backend/internal/domain/order"
)

// GenerateService produces customer-facing messages from an order and the
// saved template of the requested type. Rendering is fail-fast: a template
// variable the order context cannot fill aborts generation.
type GenerateService struct {
	templateRepo messaging.TemplateRepository
	orderRepo    order.Repository
	productNames messaging.ProductNameResolver
	methodLabels messaging.ShippingMethodLabelResolver
}

// NewGenerateService creates a new GenerateService
func NewGenerateService(
	templateRepo messaging.TemplateRepository,
	orderRepo order.Repository,
	productNames messaging.ProductNameResolver,
	methodLabels messaging.ShippingMethodLabelResolver,
) *GenerateService {
	return &GenerateService{
		templateRepo: templateRepo,
		orderRepo:    orderRepo,
		productNames: productNames,
		methodLabels: methodLabels,
	}
}

// GeneratePurchaseThanks generates the post-purchase thank-you message for an order
func (s *GenerateService) GeneratePurchaseThanks(ctx context.Context, rawOrderID string) (*MessageResponse, error) {
	o, err := s.findOrder(ctx, rawOrderID)
	if err != nil {
		return nil, err
	}

	tpl, err := s.templateRepo.FindByType(ctx, messaging.TemplateTypePurchaseThanks)
	if err != nil {
		return nil, err
	}

	productName, err := s.productNames.Resolve(ctx, o.Product.Name)
	if err != nil {
		return nil, err
	}

	vars := map[string]string{
		"buyer_name":   o.Buyer.Name,
		"product_name": productName,
		"price":        o.Product.Price.Format(),
		"order_id":     o.ID.String(),
		"platform":     o.Platform.String(),
	}

	msg, err := messaging.Render(tpl, vars)
	if err != nil {
		return nil, err
	}

	return &MessageResponse{
		OrderID: o.ID.String(),
		Type:    messaging.TemplateTypePurchaseThanks.String(),
		Text:    msg.String(),
	}, nil
}

// GenerateShippingNotice generates the shipped notification for an order.
// The order must already be shipped; that is checked before the template is
// even looked up.
func (s *GenerateService) GenerateShippingNotice(ctx context.Context, rawOrderID string) (*MessageResponse, error) {
	o, err := s.findOrder(ctx, rawOrderID)
	if err != nil {
		return nil, err
	}
	if !o.IsShipped() {
		return nil, order.ErrOrderNotShipped
	}

	tpl, err := s.templateRepo.FindByType(ctx, messaging.TemplateTypeShippingNotice)
	if err != nil {
		return nil, err
	}

	productName, err := s.productNames.Resolve(ctx, o.Product.Name)
	if err != nil {
		return nil, err
	}

	methodLabel, err := s.methodLabels.Resolve(ctx, *o.ShippingMethod)
	if err != nil {
		return nil, err
	}

	vars := map[string]string{
		"buyer_name":      o.Buyer.Name,
		"product_name":    productName,
		"order_id":        o.ID.String(),
		"shipping_method": methodLabel,
	}
	if o.TrackingNumber != nil {
		vars["tracking_number"] = o.TrackingNumber.String()
	}

	msg, err := messaging.Render(tpl, vars)
	if err != nil {
		return nil, err
	}

	return &MessageResponse{
		OrderID: o.ID.String(),
		Type:    messaging.TemplateTypeShippingNotice.String(),
		Text:    msg.String(),
	}, nil
}

func (s *GenerateService) findOrder(ctx context.Context, rawOrderID string) (*order.Order, error) {
	id, err := order.NewID(rawOrderID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, id)
}

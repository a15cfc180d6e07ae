package order

import (
	"context"
	"strings"
	"time"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
)

// DefaultOverdueThresholdDays is how many days a pending order may wait
// before the pending list flags it.
const DefaultOverdueThresholdDays = 3

// Service handles order business operations
type Service struct {
	orderRepo            order.Repository
	eventPublisher       shared.EventPublisher
	overdueThresholdDays int
	now                  func() time.Time
}

// NewService creates a new order Service. A non-positive threshold falls back
// to DefaultOverdueThresholdDays.
func NewService(orderRepo order.Repository, overdueThresholdDays int) *Service {
	if overdueThresholdDays <= 0 {
		overdueThresholdDays = DefaultOverdueThresholdDays
	}
	return &Service{
		orderRepo:            orderRepo,
		overdueThresholdDays: overdueThresholdDays,
		now:                  time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order by its marketplace order ID
func (s *Service) GetByID(ctx context.Context, rawID string) (*OrderResponse, error) {
	id, err := order.NewID(rawID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListPending retrieves pending orders oldest first, each annotated with how
// long it has been waiting and whether it is overdue.
func (s *Service) ListPending(ctx context.Context) ([]PendingOrderResponse, error) {
	orders, err := s.orderRepo.FindByStatus(ctx, order.StatusPending)
	if err != nil {
		return nil, err
	}
	ref := s.now()
	responses := make([]PendingOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPendingOrderResponse(&orders[i], ref, s.overdueThresholdDays))
	}
	return responses, nil
}

// ListAll retrieves all orders, newest first
func (s *Service) ListAll(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

// SearchByBuyerName retrieves orders whose buyer name contains the fragment
func (s *Service) SearchByBuyerName(ctx context.Context, name string) ([]OrderResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.ErrInvalidInput
	}
	orders, err := s.orderRepo.FindByBuyerName(ctx, name)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

// MarkAsShipped transitions an order to shipped with the given method and
// optional tracking number. Omitting the tracking number means none was
// issued; supplying a blank one is a validation error.
func (s *Service) MarkAsShipped(ctx context.Context, req MarkShippedRequest) (*OrderResponse, error) {
	id, err := order.NewID(req.OrderID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Already-shipped takes priority over a bad shipping method in the request
	if o.IsShipped() {
		return nil, order.ErrOrderAlreadyShipped
	}

	method, err := valueobject.ParseShippingMethod(req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	var tracking *valueobject.TrackingNumber
	if req.TrackingNumber != nil {
		t, err := valueobject.NewTrackingNumber(*req.TrackingNumber)
		if err != nil {
			return nil, err
		}
		tracking = &t
	}

	if err := o.MarkShipped(method, tracking, s.now()); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// publishEvents publishes and clears the aggregate's pending domain events.
// Publish failures do not fail the operation; the state change is already saved.
func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		o.ClearDomainEvents()
		return
	}
	for _, event := range o.DomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}

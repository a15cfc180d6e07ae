package shipping

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared/valueobject"
	"github.com/kobo/backend/internal/domain/shipping"
)

// LabelService handles shipping label issuance and lookup
type LabelService struct {
	labelRepo shipping.Repository
	orderRepo order.Repository
	issuers   map[valueobject.ShippingMethod]shipping.Issuer
	archiver  shipping.Archiver
	logger    *zap.Logger
	now       func() time.Time
}

// NewLabelService creates a new LabelService. The archiver is optional; when
// nil labels are kept in the repository only.
func NewLabelService(
	labelRepo shipping.Repository,
	orderRepo order.Repository,
	issuers map[valueobject.ShippingMethod]shipping.Issuer,
	archiver shipping.Archiver,
	logger *zap.Logger,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{
		labelRepo: labelRepo,
		orderRepo: orderRepo,
		issuers:   issuers,
		archiver:  archiver,
		logger:    logger,
		now:       time.Now,
	}
}

// IssueLabel issues a new label for an order. Issuing never mutates the
// order, and reissuing for the same order is allowed.
func (s *LabelService) IssueLabel(ctx context.Context, req IssueLabelRequest) (*LabelResponse, error) {
	orderID, err := order.NewID(req.OrderID)
	if err != nil {
		return nil, err
	}
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	method, err := valueobject.ParseShippingMethod(req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	issuer, ok := s.issuers[method]
	if !ok {
		return nil, valueobject.ErrInvalidShippingMethod
	}

	label, err := issuer.Issue(ctx, o, method)
	if err != nil {
		return nil, err
	}
	if err := label.Validate(); err != nil {
		return nil, err
	}

	if err := s.labelRepo.Save(ctx, label); err != nil {
		return nil, err
	}

	s.archive(ctx, label)

	response := ToLabelResponse(label, s.now())
	return &response, nil
}

// GetByID retrieves a label by its ID
func (s *LabelService) GetByID(ctx context.Context, rawID string) (*LabelResponse, error) {
	id, err := shipping.NewLabelID(rawID)
	if err != nil {
		return nil, err
	}
	label, err := s.labelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLabelResponse(label, s.now())
	return &response, nil
}

// ListByOrder retrieves all labels issued for an order, newest first
func (s *LabelService) ListByOrder(ctx context.Context, rawOrderID string) ([]LabelResponse, error) {
	orderID, err := order.NewID(rawOrderID)
	if err != nil {
		return nil, err
	}
	labels, err := s.labelRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ref := s.now()
	responses := make([]LabelResponse, 0, len(labels))
	for i := range labels {
		responses = append(responses, ToLabelResponse(&labels[i], ref))
	}
	return responses, nil
}

// archive stores a durable copy of the label. Failures are logged and
// swallowed; the label is already saved.
func (s *LabelService) archive(ctx context.Context, label *shipping.Label) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, label); err != nil {
		s.logger.Warn("label archive failed",
			zap.String("label_id", label.ID.String()),
			zap.String("order_id", label.OrderID.String()),
			zap.Error(err))
	}
}

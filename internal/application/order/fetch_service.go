package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/order"
	"github.com/kobo/backend/internal/domain/shared"
)

// FetchService ingests new orders from marketplace notification emails.
// Processing is strictly sequential: one order at a time, and a failure on
// one order never aborts the run.
type FetchService struct {
	orderRepo      order.Repository
	emailSource    order.EmailSource
	fetcher        order.Fetcher
	notifier       order.NotificationSender
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewFetchService creates a new FetchService. The notifier is optional; when
// nil no run summary notification is sent.
func NewFetchService(
	orderRepo order.Repository,
	emailSource order.EmailSource,
	fetcher order.Fetcher,
	notifier order.NotificationSender,
	logger *zap.Logger,
) *FetchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FetchService{
		orderRepo:   orderRepo,
		emailSource: emailSource,
		fetcher:     fetcher,
		notifier:    notifier,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *FetchService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// FetchNewOrders lists unread purchase notifications, scrapes each referenced
// order and registers the ones not seen before. Already-registered orders are
// skipped and their emails marked read. Per-order failures are collected in
// the result and the run continues.
func (s *FetchService) FetchNewOrders(ctx context.Context, opts order.FetchOptions) (*FetchResultResponse, error) {
	refs, err := s.emailSource.FetchUnreadOrderRefs(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &FetchResultResponse{Errors: []FetchErrorResponse{}}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.ingestOne(ctx, ref, result); err != nil {
			s.logger.Warn("order ingestion failed",
				zap.String("order_id", ref.OrderID),
				zap.String("platform", ref.Platform.String()),
				zap.Error(err))
			result.Errors = append(result.Errors, FetchErrorResponse{
				OrderID:  ref.OrderID,
				Platform: ref.Platform.String(),
				Message:  err.Error(),
			})
		}
	}

	s.logger.Info("order fetch run finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))

	s.notifyRun(ctx, result)

	return result, nil
}

// ingestOne processes a single email reference end to end
func (s *FetchService) ingestOne(ctx context.Context, ref order.OrderRef, result *FetchResultResponse) error {
	id, err := order.NewID(ref.OrderID)
	if err != nil {
		return err
	}

	exists, err := s.orderRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		// Duplicate notification for a known order; consume the email
		if err := s.emailSource.MarkAsRead(ctx, ref.MessageID); err != nil {
			return err
		}
		result.Skipped++
		return nil
	}

	raw, err := s.fetcher.Fetch(ctx, ref.OrderID, ref.Platform)
	if err != nil {
		return err
	}

	o, err := order.FromRaw(*raw)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, o.DomainEvents()...)
	}
	o.ClearDomainEvents()

	// Mark read last so a crash before this point re-surfaces the order on
	// the next run, where the duplicate check skips it.
	if err := s.emailSource.MarkAsRead(ctx, ref.MessageID); err != nil {
		return err
	}

	result.Fetched++
	return nil
}

// notifyRun sends the shop owner a summary when new orders arrived
func (s *FetchService) notifyRun(ctx context.Context, result *FetchResultResponse) {
	if s.notifier == nil || result.Fetched == 0 {
		return
	}
	message := fmt.Sprintf("新しい注文を%d件取り込みました。", result.Fetched)
	if len(result.Errors) > 0 {
		message += fmt.Sprintf("（%d件は取り込みに失敗しました）", len(result.Errors))
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Warn("fetch summary notification failed", zap.Error(err))
	}
}

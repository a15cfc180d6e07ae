// Package scheduler runs the periodic background work: polling the mailbox
// for new order notifications and refreshing the product-name mapping table.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	apporder "github.com/kobo/backend/internal/application/order"
)

// OrderIngestor runs one mailbox ingestion pass
type OrderIngestor interface {
	FetchNewOrders(ctx context.Context) (*apporder.FetchResultResponse, error)
}

// MappingSyncer refreshes the product-name mapping table from its source
type MappingSyncer interface {
	Sync(ctx context.Context) (int, error)
}

// MailPollScheduler polls the mailbox on a fixed interval. Runs never
// overlap: a run that outlasts the interval simply delays the next tick.
type MailPollScheduler struct {
	ingestor     OrderIngestor
	mappings     MappingSyncer // nil when mapping sync is disabled
	interval     time.Duration
	logger       *zap.Logger
	running      atomic.Bool
	stopCh       chan struct{}
	wg           sync.WaitGroup
	syncMappings bool
}

// NewMailPollScheduler creates a new MailPollScheduler
func NewMailPollScheduler(ingestor OrderIngestor, mappings MappingSyncer, interval time.Duration, syncMappings bool, logger *zap.Logger) *MailPollScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailPollScheduler{
		ingestor:     ingestor,
		mappings:     mappings,
		interval:     interval,
		logger:       logger,
		stopCh:       make(chan struct{}),
		syncMappings: syncMappings,
	}
}

// Start launches the polling loop. The first run happens after one interval.
func (s *MailPollScheduler) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.logger.Info("Mail poll scheduler started", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight run to finish
func (s *MailPollScheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("Mail poll scheduler stopped")
}

// runOnce executes one scheduled pass
func (s *MailPollScheduler) runOnce(ctx context.Context) {
	started := time.Now()

	if s.syncMappings && s.mappings != nil {
		if count, err := s.mappings.Sync(ctx); err != nil {
			// A stale mapping table is acceptable; ingestion still runs
			s.logger.Warn("Mapping sync failed", zap.Error(err))
		} else {
			s.logger.Debug("Mapping table synced", zap.Int("rows", count))
		}
	}

	result, err := s.ingestor.FetchNewOrders(ctx)
	if err != nil {
		s.logger.Error("Scheduled order fetch failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled order fetch completed",
		zap.Int("fetched", result.Fetched),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Errors)),
		zap.Duration("duration", time.Since(started)),
	)
}

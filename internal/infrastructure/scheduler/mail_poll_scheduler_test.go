package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apporder "github.com/kobo/backend/internal/application/order"
)

type countingIngestor struct {
	runs atomic.Int32
	err  error
}

func (c *countingIngestor) FetchNewOrders(context.Context) (*apporder.FetchResultResponse, error) {
	c.runs.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &apporder.FetchResultResponse{Fetched: 1}, nil
}

type countingSyncer struct {
	runs atomic.Int32
	err  error
}

func (c *countingSyncer) Sync(context.Context) (int, error) {
	c.runs.Add(1)
	return 2, c.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestMailPollScheduler_RunsOnInterval(t *testing.T) {
	ingestor := &countingIngestor{}
	s := NewMailPollScheduler(ingestor, nil, 10*time.Millisecond, false, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return ingestor.runs.Load() >= 2 })
}

func TestMailPollScheduler_SyncsMappingsBeforeFetch(t *testing.T) {
	ingestor := &countingIngestor{}
	syncer := &countingSyncer{}
	s := NewMailPollScheduler(ingestor, syncer, 10*time.Millisecond, true, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return syncer.runs.Load() >= 1 && ingestor.runs.Load() >= 1 })
}

func TestMailPollScheduler_MappingFailureDoesNotBlockFetch(t *testing.T) {
	ingestor := &countingIngestor{}
	syncer := &countingSyncer{err: errors.New("sheet unreachable")}
	s := NewMailPollScheduler(ingestor, syncer, 10*time.Millisecond, true, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return ingestor.runs.Load() >= 1 })
}

func TestMailPollScheduler_StopHaltsLoop(t *testing.T) {
	ingestor := &countingIngestor{}
	s := NewMailPollScheduler(ingestor, nil, 10*time.Millisecond, false, zap.NewNop())

	s.Start(context.Background())
	waitFor(t, func() bool { return ingestor.runs.Load() >= 1 })
	s.Stop()

	count := ingestor.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, count, ingestor.runs.Load())
}

func TestMailPollScheduler_StartTwiceIsNoop(t *testing.T) {
	ingestor := &countingIngestor{}
	s := NewMailPollScheduler(ingestor, nil, time.Hour, false, zap.NewNop())

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
}

package outbox

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/YanPetrov7/blog-content-management-system/internal/infrastructure"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
)

// OutboxRelay ships pending email events from the outbox table to Kafka.
// It runs three periodic workers: the batch sender, the max-retries
// reaper and the processed/failed cleanup.
type OutboxRelay struct {
	outbox usecase.OutboxUseCase
	es     infrastructure.EventsSender
	logger logger.Interface

	pollInterval        time.Duration
	cleanupInterval     time.Duration
	markFailedInterval  time.Duration
	processBatchTimeout time.Duration
	batchSize           int
	maxRetries          int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(
	outbox usecase.OutboxUseCase,
	es infrastructure.EventsSender,
	l logger.Interface,
	pollInterval time.Duration,
	cleanupInterval time.Duration,
	markFailedInterval time.Duration,
	processBatchTimeout time.Duration,
	batchSize int,
	maxRetries int,
) *OutboxRelay {
	return &OutboxRelay{
		outbox:              outbox,
		es:                  es,
		logger:              l,
		pollInterval:        pollInterval,
		cleanupInterval:     cleanupInterval,
		markFailedInterval:  markFailedInterval,
		processBatchTimeout: processBatchTimeout,
		batchSize:           batchSize,
		maxRetries:          maxRetries,
	}
}

func (r *OutboxRelay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("OutboxRelay - Start - worker already started")
	}

	r.ctx, r.cancel = context.WithCancel(ctx)

	// batch sender
	r.worker(r.pollInterval, func() {
		batchCtx, batchCancel := context.WithTimeout(r.ctx, r.processBatchTimeout)
		r.processEventsBatch(batchCtx)
		batchCancel()
	})

	// events that hit the retry ceiling become failed
	r.worker(r.markFailedInterval, func() {
		err := r.outbox.MarkMaxRetriesAsFailed(r.ctx, r.maxRetries)
		if err != nil {
			r.logger.Error(err, "OutboxRelay - Start - worker - r.outbox.MarkMaxRetriesAsFailed")
		}
	})

	// processed/failed rows are purged
	r.worker(r.cleanupInterval, func() {
		err := r.outbox.CleanupOutbox(r.ctx)
		if err != nil {
			r.logger.Error(err, "OutboxRelay - Start - worker - r.outbox.CleanupOutbox")
		}
	})

	return nil
}

func (r *OutboxRelay) processEventsBatch(ctx context.Context) {
	events, err := r.outbox.GetPendingEvents(ctx, r.batchSize, r.maxRetries)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.outbox.GetPendingEvents")

		return
	}
	if len(events) == 0 {
		return
	}

	err = r.outbox.MarkAsProcessingBatch(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.outbox.MarkAsProcessingBatch")

		return
	}

	err = r.es.SendEvents(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.es.SendEvents")
		// back to pending with a bumped retry count
		incErr := r.outbox.IncrementRetryCountBatch(ctx, events)
		if incErr != nil {
			r.logger.Error(incErr, "OutboxRelay - processEventsBatch - r.outbox.IncrementRetryCountBatch")
		}
		return
	}

	err = r.outbox.MarkAsProcessedBatch(ctx, events)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - processEventsBatch - r.outbox.MarkAsProcessedBatch")

		return
	}
}

func (r *OutboxRelay) worker(interval time.Duration, task func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

func (r *OutboxRelay) Shutdown(ctx context.Context) error {
	if !r.started.Load() {
		return nil
	}

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})

	go func() {
		r.wg.Wait()
		r.es.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}

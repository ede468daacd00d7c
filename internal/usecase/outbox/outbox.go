package outbox

import (
	"context"
	"fmt"

	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
	"github.com/google/uuid"
)

// OutboxUseCase is the relay's view of the email outbox table.
type OutboxUseCase struct {
	outboxRepo repo.OutboxRepo

	logger logger.Interface
}

func New(outboxRepo repo.OutboxRepo, l logger.Interface) *OutboxUseCase {
	return &OutboxUseCase{
		outboxRepo: outboxRepo,
		logger:     l,
	}
}

func (uc *OutboxUseCase) GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outboxRepo.GetPendingEvents(ctx, limit, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("OutboxUseCase - GetPendingEvents - uc.outboxRepo.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *OutboxUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessingBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("OutboxUseCase - MarkAsProcessingBatch - uc.outboxRepo.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("OutboxUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("OutboxUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("OutboxUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("OutboxUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old events, count = %d", count)
	}

	return nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	var ids uuid.UUIDs
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	return ids
}

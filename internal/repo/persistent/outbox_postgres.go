package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/pkg/postgres"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	// Table
	outboxTable = "email_outbox"

	// Columns
	outboxIDColumn          = "id"
	outboxAggregateIDColumn = "aggregate_id"
	outboxPayloadColumn     = "payload"
	outboxStatusColumn      = "status"
	outboxCreatedAtColumn   = "created_at"
	outboxProcessedAtColumn = "processed_at"
	outboxRetryCountColumn  = "retry_count"
)

type OutboxRepo struct {
	*postgres.Postgres
}

func NewOutboxRepo(pg *postgres.Postgres) *OutboxRepo {
	return &OutboxRepo{pg}
}

func (r *OutboxRepo) Create(ctx context.Context, event *entity.OutboxEvent) error {
	sql, args, err := r.Builder.
		Insert(outboxTable).
		Columns(
			outboxIDColumn,
			outboxAggregateIDColumn,
			outboxPayloadColumn,
			outboxStatusColumn,
			outboxCreatedAtColumn,
			outboxRetryCountColumn,
		).
		Values(
			event.ID,
			event.AggregateID,
			event.Payload,
			event.Status,
			event.CreatedAt,
			event.RetryCount,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *OutboxRepo) GetPendingEvents(ctx context.Context, limit int, maxRetries int) ([]*entity.OutboxEvent, error) {
	sql, args, err := r.Builder.
		Select(
			outboxIDColumn,
			outboxAggregateIDColumn,
			outboxPayloadColumn,
			outboxStatusColumn,
			outboxCreatedAtColumn,
			outboxProcessedAtColumn,
			outboxRetryCountColumn,
		).
		From(outboxTable).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: entity.Pending},
			squirrel.Lt{outboxRetryCountColumn: maxRetries},
		}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("OutboxRepo - GetPendingEvents - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("OutboxRepo - GetPendingEvents - executor.Query: %w", err)
	}
	defer rows.Close()

	events := make([]*entity.OutboxEvent, 0, limit)
	for rows.Next() {
		var event entity.OutboxEvent
		err = rows.Scan(
			&event.ID,
			&event.AggregateID,
			&event.Payload,
			&event.Status,
			&event.CreatedAt,
			&event.ProcessedAt,
			&event.RetryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("OutboxRepo - GetPendingEvents - rows.Scan: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OutboxRepo - GetPendingEvents - rows.Err: %w", err)
	}

	return events, nil
}

func (r *OutboxRepo) MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error {
	now := time.Now()

	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, entity.Processing).
		Set(outboxProcessedAtColumn, now).
		Where(squirrel.Eq{outboxIDColumn: IDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - MarkAsProcessingBatch - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - MarkAsProcessingBatch - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("OutboxRepo - MarkAsProcessingBatch: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *OutboxRepo) MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error {
	now := time.Now()

	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, entity.Processed).
		Set(outboxProcessedAtColumn, now).
		Where(squirrel.Eq{outboxIDColumn: IDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - MarkAsProcessedBatch - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - MarkAsProcessedBatch - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("OutboxRepo - MarkAsProcessedBatch: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *OutboxRepo) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, entity.Failed).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: string(entity.Pending)},
			squirrel.GtOrEq{outboxRetryCountColumn: maxRetries},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - MarkMaxRetriesAsFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - MarkMaxRetriesAsFailed - executor.Exec: %w", err)
	}

	return nil
}

func (r *OutboxRepo) IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxRetryCountColumn, squirrel.Expr(outboxRetryCountColumn+" + 1")).
		Set(outboxStatusColumn, entity.Pending).
		Where(squirrel.Eq{outboxIDColumn: IDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - IncrementRetryCountBatch - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - IncrementRetryCountBatch - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("OutboxRepo - IncrementRetryCountBatch: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *OutboxRepo) DeleteOldProcessedAndFailed(ctx context.Context) (int64, error) {
	sql, args, err := r.Builder.
		Delete(outboxTable).
		Where(squirrel.Or{
			squirrel.Eq{outboxStatusColumn: string(entity.Processed)},
			squirrel.Eq{outboxStatusColumn: string(entity.Failed)},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("OutboxRepo - DeleteOldProcessedAndFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)
	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("OutboxRepo - DeleteOldProcessedAndFailed - executor.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}

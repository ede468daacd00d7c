package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/pkg/postgres"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	verificationKeysTable = "verification_keys"

	// Columns
	keyIDColumn        = "id"
	keyKeyColumn       = "key"
	keyEmailColumn     = "email"
	keyExpiresAtColumn = "expires_at"
	keyCreatedAtColumn = "created_at"
)

type VerificationKeyRepo struct {
	*postgres.Postgres
}

func NewVerificationKeyRepo(pg *postgres.Postgres) *VerificationKeyRepo {
	return &VerificationKeyRepo{pg}
}

func (r *VerificationKeyRepo) Create(ctx context.Context, key *entity.VerificationKey) error {
	sql, args, err := r.Builder.
		Insert(verificationKeysTable).
		Columns(
			keyIDColumn,
			keyKeyColumn,
			keyEmailColumn,
			keyExpiresAtColumn,
			keyCreatedAtColumn,
		).
		Values(
			key.ID,
			key.Key,
			key.Email,
			key.ExpiresAt,
			key.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("VerificationKeyRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("VerificationKeyRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *VerificationKeyRepo) GetByKey(ctx context.Context, key uuid.UUID) (*entity.VerificationKey, error) {
	sql, args, err := r.Builder.
		Select(
			keyIDColumn,
			keyKeyColumn,
			keyEmailColumn,
			keyExpiresAtColumn,
			keyCreatedAtColumn,
		).
		From(verificationKeysTable).
		Where(squirrel.Eq{keyKeyColumn: key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("VerificationKeyRepo - GetByKey - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var vk entity.VerificationKey
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&vk.ID,
		&vk.Key,
		&vk.Email,
		&vk.ExpiresAt,
		&vk.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("VerificationKeyRepo - GetByKey: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("VerificationKeyRepo - GetByKey - executor.QueryRow.Scan: %w", err)
	}

	return &vk, nil
}

func (r *VerificationKeyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(verificationKeysTable).
		Where(squirrel.Eq{keyIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("VerificationKeyRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("VerificationKeyRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("VerificationKeyRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

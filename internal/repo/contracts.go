package repo

import (
	"context"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/google/uuid"
)

type (
	// ObjectStoreRepo is the remote blob store the variant lifecycle writes to.
	// Put assigns an opaque object id under the given folder; Delete of an
	// unknown id is not an error and reports deleted=false.
	ObjectStoreRepo interface {
		PutBytes(ctx context.Context, folder string, data []byte, contentType string) (string, error)
		URL(objectID string) string
		Delete(ctx context.Context, objectID string) (bool, error)
	}

	// VariantLedger is the persisted portion of one entity type's media slot.
	// Clear atomically nulls the columns and returns the set that was stored
	// immediately before, so the caller knows which objects to delete.
	VariantLedger interface {
		GetVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error)
		UpdateVariantSet(ctx context.Context, entityID int64, set entity.VariantSet) error
		ClearVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error)
	}

	UserRepo interface {
		VariantLedger

		Create(ctx context.Context, user *entity.User) error
		GetByID(ctx context.Context, id int64) (*entity.User, error)
		GetByEmail(ctx context.Context, email string) (*entity.User, error)
		GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)
		List(ctx context.Context) ([]entity.User, error)
		Update(ctx context.Context, user *entity.User) error
		Delete(ctx context.Context, id int64) error
		SetVerified(ctx context.Context, id int64) error
	}

	PostRepo interface {
		VariantLedger

		Create(ctx context.Context, post *entity.Post) error
		GetByID(ctx context.Context, id int64) (*entity.Post, error)
		List(ctx context.Context, filter dto.PostFilter) ([]entity.Post, error)
		Update(ctx context.Context, post *entity.Post) error
		Delete(ctx context.Context, id int64) error
	}

	CategoryRepo interface {
		Create(ctx context.Context, category *entity.Category) error
		GetByID(ctx context.Context, id int64) (*entity.Category, error)
		GetByName(ctx context.Context, name string) (*entity.Category, error)
		List(ctx context.Context) ([]entity.Category, error)
		Update(ctx context.Context, category *entity.Category) error
		Delete(ctx context.Context, id int64) error
	}

	CommentRepo interface {
		Create(ctx context.Context, comment *entity.Comment) error
		ListByPost(ctx context.Context, postID int64, filter dto.CommentFilter) ([]entity.Comment, error)
		Delete(ctx context.Context, postID, id int64) error
	}

	VerificationKeyRepo interface {
		Create(ctx context.Context, key *entity.VerificationKey) error
		GetByKey(ctx context.Context, key uuid.UUID) (*entity.VerificationKey, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, ids uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, ids uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, ids uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)

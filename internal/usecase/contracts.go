package usecase

import (
	"context"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/google/uuid"
)

type (
	UserUseCase interface {
		Create(ctx context.Context, input dto.CreateUser) (*entity.User, error)
		List(ctx context.Context) ([]entity.User, error)
		GetByID(ctx context.Context, id int64) (*entity.User, error)
		Update(ctx context.Context, id int64, input dto.UpdateUser) (*entity.User, error)
		Delete(ctx context.Context, id int64) error
		Verify(ctx context.Context, key uuid.UUID) error
		AvatarURL(ctx context.Context, id int64, size entity.ImageSize) (string, error)
		RemoveAvatar(ctx context.Context, id int64) error
	}

	PostUseCase interface {
		Create(ctx context.Context, input dto.CreatePost) (*entity.Post, error)
		List(ctx context.Context, filter dto.PostFilter) ([]entity.Post, error)
		GetByID(ctx context.Context, id int64) (*entity.Post, error)
		Update(ctx context.Context, id int64, input dto.UpdatePost) (*entity.Post, error)
		Delete(ctx context.Context, id int64) error
		ImageURL(ctx context.Context, id int64, size entity.ImageSize) (string, error)
		RemoveImage(ctx context.Context, id int64) error
	}

	CategoryUseCase interface {
		Create(ctx context.Context, input dto.CreateCategory) (*entity.Category, error)
		List(ctx context.Context) ([]entity.Category, error)
		GetByID(ctx context.Context, id int64) (*entity.Category, error)
		Update(ctx context.Context, id int64, input dto.UpdateCategory) (*entity.Category, error)
		Delete(ctx context.Context, id int64) error
	}

	CommentUseCase interface {
		Create(ctx context.Context, postID int64, input dto.CreateComment) (*entity.Comment, error)
		ListByPost(ctx context.Context, postID int64, filter dto.CommentFilter) ([]entity.Comment, error)
		Delete(ctx context.Context, postID, id int64) error
	}

	OutboxUseCase interface {
		GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}
)

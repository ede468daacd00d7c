package post

import (
	"context"
	"fmt"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/media"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
)

type PostUseCase struct {
	postRepo     repo.PostRepo
	userRepo     repo.UserRepo
	categoryRepo repo.CategoryRepo
	images       *media.Lifecycle

	logger logger.Interface
}

func New(
	postRepo repo.PostRepo,
	userRepo repo.UserRepo,
	categoryRepo repo.CategoryRepo,
	images *media.Lifecycle,
	l logger.Interface,
) *PostUseCase {
	return &PostUseCase{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		images:       images,
		logger:       l,
	}
}

func (uc *PostUseCase) Create(ctx context.Context, input dto.CreatePost) (*entity.Post, error) {
	if _, err := uc.userRepo.GetByID(ctx, input.AuthorID); err != nil {
		return nil, fmt.Errorf("PostUseCase - Create - uc.userRepo.GetByID: %w", err)
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("PostUseCase - Create - uc.categoryRepo.GetByID: %w", err)
		}
	}

	post := &entity.Post{
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    input.AuthorID,
		CategoryID:  input.CategoryID,
		IsPublished: input.IsPublished,
	}

	err := uc.postRepo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("PostUseCase - Create - uc.postRepo.Create: %w", err)
	}

	if input.Image != nil {
		set, err := uc.images.Attach(ctx, post.ID, *input.Image)
		if err != nil {
			// roll the row back, the caller gets a clean failure
			if deleteErr := uc.postRepo.Delete(ctx, post.ID); deleteErr != nil {
				uc.logger.Error(deleteErr, "PostUseCase - Create - uc.postRepo.Delete")
			}
			return nil, fmt.Errorf("PostUseCase - Create - uc.images.Attach: %w", err)
		}
		post.Image = set
	}

	return post, nil
}

func (uc *PostUseCase) List(ctx context.Context, filter dto.PostFilter) ([]entity.Post, error) {
	posts, err := uc.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("PostUseCase - List - uc.postRepo.List: %w", err)
	}

	return posts, nil
}

func (uc *PostUseCase) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("PostUseCase - GetByID - uc.postRepo.GetByID: %w", err)
	}

	return post, nil
}

// Update patches the post's fields and then replaces the image when one is
// supplied. The two writes are intentionally independent: a failed image
// replace leaves the already-committed field update in place and the prior
// image still attached, so the caller can retry the upload alone.
func (uc *PostUseCase) Update(ctx context.Context, id int64, input dto.UpdatePost) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("PostUseCase - Update - uc.postRepo.GetByID: %w", err)
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("PostUseCase - Update - uc.categoryRepo.GetByID: %w", err)
		}
		post.CategoryID = input.CategoryID
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}

	err = uc.postRepo.Update(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("PostUseCase - Update - uc.postRepo.Update: %w", err)
	}

	if input.Image != nil {
		set, err := uc.images.Attach(ctx, post.ID, *input.Image)
		if err != nil {
			return nil, fmt.Errorf("PostUseCase - Update - uc.images.Attach: %w", err)
		}
		post.Image = set
	}

	return post, nil
}

func (uc *PostUseCase) Delete(ctx context.Context, id int64) error {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("PostUseCase - Delete - uc.postRepo.GetByID: %w", err)
	}

	err = uc.postRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("PostUseCase - Delete - uc.postRepo.Delete: %w", err)
	}

	uc.images.Purge(ctx, post.Image)

	return nil
}

func (uc *PostUseCase) ImageURL(ctx context.Context, id int64, size entity.ImageSize) (string, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("PostUseCase - ImageURL - uc.postRepo.GetByID: %w", err)
	}

	url, err := uc.images.VariantURL(post.Image, size)
	if err != nil {
		return "", fmt.Errorf("PostUseCase - ImageURL: %w", err)
	}

	return url, nil
}

func (uc *PostUseCase) RemoveImage(ctx context.Context, id int64) error {
	if _, err := uc.postRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("PostUseCase - RemoveImage - uc.postRepo.GetByID: %w", err)
	}

	err := uc.images.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("PostUseCase - RemoveImage: %w", err)
	}

	return nil
}

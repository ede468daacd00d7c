package comment

import (
	"context"
	"fmt"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
)

type CommentUseCase struct {
	commentRepo repo.CommentRepo
	postRepo    repo.PostRepo
	userRepo    repo.UserRepo
}

func New(commentRepo repo.CommentRepo, postRepo repo.PostRepo, userRepo repo.UserRepo) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (uc *CommentUseCase) Create(ctx context.Context, postID int64, input dto.CreateComment) (*entity.Comment, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("CommentUseCase - Create - uc.postRepo.GetByID: %w", err)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.AuthorID); err != nil {
		return nil, fmt.Errorf("CommentUseCase - Create - uc.userRepo.GetByID: %w", err)
	}

	comment := &entity.Comment{
		PostID:   postID,
		AuthorID: input.AuthorID,
		Content:  input.Content,
	}

	err := uc.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("CommentUseCase - Create - uc.commentRepo.Create: %w", err)
	}

	return comment, nil
}

func (uc *CommentUseCase) ListByPost(ctx context.Context, postID int64, filter dto.CommentFilter) ([]entity.Comment, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("CommentUseCase - ListByPost - uc.postRepo.GetByID: %w", err)
	}

	comments, err := uc.commentRepo.ListByPost(ctx, postID, filter)
	if err != nil {
		return nil, fmt.Errorf("CommentUseCase - ListByPost - uc.commentRepo.ListByPost: %w", err)
	}

	return comments, nil
}

func (uc *CommentUseCase) Delete(ctx context.Context, postID, id int64) error {
	err := uc.commentRepo.Delete(ctx, postID, id)
	if err != nil {
		return fmt.Errorf("CommentUseCase - Delete - uc.commentRepo.Delete: %w", err)
	}

	return nil
}

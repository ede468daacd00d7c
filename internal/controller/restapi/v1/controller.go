package v1

import (
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
)

type V1 struct {
	users      usecase.UserUseCase
	posts      usecase.PostUseCase
	categories usecase.CategoryUseCase
	comments   usecase.CommentUseCase
	logger     logger.Interface
}

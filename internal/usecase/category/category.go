package category

import (
	"context"
	"fmt"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
)

type CategoryUseCase struct {
	categoryRepo repo.CategoryRepo
}

func New(categoryRepo repo.CategoryRepo) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

func (uc *CategoryUseCase) Create(ctx context.Context, input dto.CreateCategory) (*entity.Category, error) {
	category := &entity.Category{
		Name: input.Name,
	}

	err := uc.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("CategoryUseCase - Create - uc.categoryRepo.Create: %w", err)
	}

	return category, nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]entity.Category, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("CategoryUseCase - List - uc.categoryRepo.List: %w", err)
	}

	return categories, nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("CategoryUseCase - GetByID - uc.categoryRepo.GetByID: %w", err)
	}

	return category, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id int64, input dto.UpdateCategory) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("CategoryUseCase - Update - uc.categoryRepo.GetByID: %w", err)
	}

	category.Name = input.Name

	err = uc.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("CategoryUseCase - Update - uc.categoryRepo.Update: %w", err)
	}

	return category, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.categoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("CategoryUseCase - Delete - uc.categoryRepo.Delete: %w", err)
	}

	return nil
}

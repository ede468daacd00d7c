package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/pkg/postgres"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	categoriesTable = "categories"

	// Columns
	categoryIDColumn        = "id"
	categoryNameColumn      = "name"
	categoryCreatedAtColumn = "created_at"
)

type CategoryRepo struct {
	*postgres.Postgres
}

func NewCategoryRepo(pg *postgres.Postgres) *CategoryRepo {
	return &CategoryRepo{pg}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	sql, args, err := r.Builder.
		Insert(categoriesTable).
		Columns(categoryNameColumn).
		Values(category.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("CategoryRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	err = executor.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CategoryRepo - Create: %w", errs.ErrAlreadyExists)
		}
		return fmt.Errorf("CategoryRepo - Create - executor.QueryRow.Scan: %w", err)
	}

	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getBy(ctx, squirrel.Eq{categoryIDColumn: id}, "GetByID")
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getBy(ctx, squirrel.Eq{categoryNameColumn: name}, "GetByName")
}

func (r *CategoryRepo) getBy(ctx context.Context, where squirrel.Sqlizer, method string) (*entity.Category, error) {
	sql, args, err := r.Builder.
		Select(categoryIDColumn, categoryNameColumn, categoryCreatedAtColumn).
		From(categoriesTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CategoryRepo - %s - r.Builder.ToSql: %w", method, err)
	}

	executor := r.GetExecutor(ctx)

	var category entity.Category
	err = executor.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("CategoryRepo - %s: %w", method, errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("CategoryRepo - %s - executor.QueryRow.Scan: %w", method, err)
	}

	return &category, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	sql, args, err := r.Builder.
		Select(categoryIDColumn, categoryNameColumn, categoryCreatedAtColumn).
		From(categoriesTable).
		OrderBy(categoryNameColumn + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CategoryRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("CategoryRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("CategoryRepo - List - rows.Scan: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CategoryRepo - List - rows.Err: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	sql, args, err := r.Builder.
		Update(categoriesTable).
		Set(categoryNameColumn, category.Name).
		Where(squirrel.Eq{categoryIDColumn: category.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CategoryRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CategoryRepo - Update: %w", errs.ErrAlreadyExists)
		}
		return fmt.Errorf("CategoryRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("CategoryRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.Builder.
		Delete(categoriesTable).
		Where(squirrel.Eq{categoryIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CategoryRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("CategoryRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("CategoryRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/pkg/postgres"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	postsTable = "posts"

	// Columns
	postIDColumn          = "id"
	postTitleColumn       = "title"
	postContentColumn     = "content"
	postAuthorIDColumn    = "author_id"
	postCategoryIDColumn  = "category_id"
	postIsPublishedColumn = "is_published"
	postImageSmallColumn  = "image_small"
	postImageMediumColumn = "image_medium"
	postImageLargeColumn  = "image_large"
	postImageMimeColumn   = "image_mime"
	postCreatedAtColumn   = "created_at"
	postUpdatedAtColumn   = "updated_at"
)

const clearPostImageSQL = `
UPDATE posts AS p
SET image_small = NULL, image_medium = NULL, image_large = NULL, image_mime = NULL
FROM (
	SELECT id, image_small, image_medium, image_large, image_mime
	FROM posts WHERE id = $1 FOR UPDATE
) AS prev
WHERE p.id = prev.id
RETURNING prev.image_small, prev.image_medium, prev.image_large, prev.image_mime`

// sortablePostColumns whitelists the columns the listing may order by.
var sortablePostColumns = map[string]bool{
	postTitleColumn:     true,
	postCreatedAtColumn: true,
	postUpdatedAtColumn: true,
}

type PostRepo struct {
	*postgres.Postgres
}

func NewPostRepo(pg *postgres.Postgres) *PostRepo {
	return &PostRepo{pg}
}

func (r *PostRepo) Create(ctx context.Context, post *entity.Post) error {
	sql, args, err := r.Builder.
		Insert(postsTable).
		Columns(
			postTitleColumn,
			postContentColumn,
			postAuthorIDColumn,
			postCategoryIDColumn,
			postIsPublishedColumn,
		).
		Values(
			post.Title,
			post.Content,
			post.AuthorID,
			post.CategoryID,
			post.IsPublished,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	err = executor.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("PostRepo - Create - executor.QueryRow.Scan: %w", err)
	}

	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	sql, args, err := r.postSelect().Where(squirrel.Eq{"p." + postIDColumn: id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var post entity.Post
	err = executor.QueryRow(ctx, sql, args...).Scan(postScanDest(&post)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("PostRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("PostRepo - GetByID - executor.QueryRow.Scan: %w", err)
	}

	return &post, nil
}

func (r *PostRepo) List(ctx context.Context, filter dto.PostFilter) ([]entity.Post, error) {
	query := r.postSelect()

	if filter.Title != nil {
		query = query.Where(squirrel.Eq{"p." + postTitleColumn: *filter.Title})
	}
	if filter.Author != nil {
		query = query.Where(squirrel.Eq{"u." + userUsernameColumn: *filter.Author})
	}
	if filter.Category != nil {
		query = query.Where(squirrel.Eq{"c." + categoryNameColumn: *filter.Category})
	}
	if filter.IsPublished != nil {
		query = query.Where(squirrel.Eq{"p." + postIsPublishedColumn: *filter.IsPublished})
	}

	sortBy := filter.SortBy
	if !sortablePostColumns[sortBy] {
		sortBy = postCreatedAtColumn
	}
	order := dto.SortAsc
	if filter.SortOrder == dto.SortDesc {
		order = dto.SortDesc
	}
	query = query.OrderBy(fmt.Sprintf("p.%s %s", sortBy, order))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	query = query.Offset(uint64((page - 1) * limit)).Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	posts := make([]entity.Post, 0, limit)
	for rows.Next() {
		var post entity.Post
		if err := rows.Scan(postScanDest(&post)...); err != nil {
			return nil, fmt.Errorf("PostRepo - List - rows.Scan: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepo - List - rows.Err: %w", err)
	}

	return posts, nil
}

func (r *PostRepo) Update(ctx context.Context, post *entity.Post) error {
	sql, args, err := r.Builder.
		Update(postsTable).
		Set(postTitleColumn, post.Title).
		Set(postContentColumn, post.Content).
		Set(postCategoryIDColumn, post.CategoryID).
		Set(postIsPublishedColumn, post.IsPublished).
		Set(postUpdatedAtColumn, squirrel.Expr("now()")).
		Where(squirrel.Eq{postIDColumn: post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("PostRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("PostRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.Builder.
		Delete(postsTable).
		Where(squirrel.Eq{postIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("PostRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("PostRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *PostRepo) GetVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	sql, args, err := r.Builder.
		Select(
			postImageSmallColumn,
			postImageMediumColumn,
			postImageLargeColumn,
			postImageMimeColumn,
		).
		From(postsTable).
		Where(squirrel.Eq{postIDColumn: entityID}).
		ToSql()
	if err != nil {
		return entity.VariantSet{}, fmt.Errorf("PostRepo - GetVariantSet - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var set entity.VariantSet
	err = executor.QueryRow(ctx, sql, args...).Scan(&set.SmallID, &set.MediumID, &set.LargeID, &set.Mime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.VariantSet{}, fmt.Errorf("PostRepo - GetVariantSet: %w", errs.ErrRecordNotFound)
		}
		return entity.VariantSet{}, fmt.Errorf("PostRepo - GetVariantSet - executor.QueryRow.Scan: %w", err)
	}

	return set, nil
}

func (r *PostRepo) UpdateVariantSet(ctx context.Context, entityID int64, set entity.VariantSet) error {
	sql, args, err := r.Builder.
		Update(postsTable).
		Set(postImageSmallColumn, set.SmallID).
		Set(postImageMediumColumn, set.MediumID).
		Set(postImageLargeColumn, set.LargeID).
		Set(postImageMimeColumn, set.Mime).
		Set(postUpdatedAtColumn, squirrel.Expr("now()")).
		Where(squirrel.Eq{postIDColumn: entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepo - UpdateVariantSet - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("PostRepo - UpdateVariantSet - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("PostRepo - UpdateVariantSet: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *PostRepo) ClearVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	executor := r.GetExecutor(ctx)

	var prev entity.VariantSet
	err := executor.QueryRow(ctx, clearPostImageSQL, entityID).Scan(&prev.SmallID, &prev.MediumID, &prev.LargeID, &prev.Mime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.VariantSet{}, fmt.Errorf("PostRepo - ClearVariantSet: %w", errs.ErrRecordNotFound)
		}
		return entity.VariantSet{}, fmt.Errorf("PostRepo - ClearVariantSet - executor.QueryRow.Scan: %w", err)
	}

	return prev, nil
}

func (r *PostRepo) postSelect() squirrel.SelectBuilder {
	return r.Builder.
		Select(
			"p."+postIDColumn,
			"p."+postTitleColumn,
			"p."+postContentColumn,
			"p."+postAuthorIDColumn,
			"p."+postCategoryIDColumn,
			"p."+postIsPublishedColumn,
			"p."+postImageSmallColumn,
			"p."+postImageMediumColumn,
			"p."+postImageLargeColumn,
			"p."+postImageMimeColumn,
			"p."+postCreatedAtColumn,
			"p."+postUpdatedAtColumn,
			"u."+userUsernameColumn,
			"c."+categoryNameColumn,
		).
		From(postsTable+" AS p").
		LeftJoin(usersTable+" AS u ON u.id = p.author_id").
		LeftJoin(categoriesTable+" AS c ON c.id = p.category_id")
}

func postScanDest(post *entity.Post) []any {
	return []any{
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CategoryID,
		&post.IsPublished,
		&post.Image.SmallID,
		&post.Image.MediumID,
		&post.Image.LargeID,
		&post.Image.Mime,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.AuthorUsername,
		&post.CategoryName,
	}
}

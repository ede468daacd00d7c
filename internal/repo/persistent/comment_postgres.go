package persistent

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/pkg/postgres"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
)

const (
	// Table
	commentsTable = "comments"

	// Columns
	commentIDColumn        = "id"
	commentPostIDColumn    = "post_id"
	commentAuthorIDColumn  = "author_id"
	commentContentColumn   = "content"
	commentCreatedAtColumn = "created_at"
)

type CommentRepo struct {
	*postgres.Postgres
}

func NewCommentRepo(pg *postgres.Postgres) *CommentRepo {
	return &CommentRepo{pg}
}

func (r *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	sql, args, err := r.Builder.
		Insert(commentsTable).
		Columns(
			commentPostIDColumn,
			commentAuthorIDColumn,
			commentContentColumn,
		).
		Values(
			comment.PostID,
			comment.AuthorID,
			comment.Content,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	err = executor.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("CommentRepo - Create - executor.QueryRow.Scan: %w", err)
	}

	return nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID int64, filter dto.CommentFilter) ([]entity.Comment, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	sql, args, err := r.Builder.
		Select(
			commentIDColumn,
			commentPostIDColumn,
			commentAuthorIDColumn,
			commentContentColumn,
			commentCreatedAtColumn,
		).
		From(commentsTable).
		Where(squirrel.Eq{commentPostIDColumn: postID}).
		OrderBy(commentCreatedAtColumn + " ASC").
		Offset(uint64((page - 1) * limit)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("CommentRepo - ListByPost - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("CommentRepo - ListByPost - executor.Query: %w", err)
	}
	defer rows.Close()

	comments := make([]entity.Comment, 0, limit)
	for rows.Next() {
		var comment entity.Comment
		err = rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("CommentRepo - ListByPost - rows.Scan: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CommentRepo - ListByPost - rows.Err: %w", err)
	}

	return comments, nil
}

func (r *CommentRepo) Delete(ctx context.Context, postID, id int64) error {
	sql, args, err := r.Builder.
		Delete(commentsTable).
		Where(squirrel.And{
			squirrel.Eq{commentIDColumn: id},
			squirrel.Eq{commentPostIDColumn: postID},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("CommentRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("CommentRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("CommentRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

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
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// Table
	usersTable = "users"

	// Columns
	userIDColumn           = "id"
	userUsernameColumn     = "username"
	userEmailColumn        = "email"
	userPasswordHashColumn = "password_hash"
	userIsVerifiedColumn   = "is_verified"
	userAvatarSmallColumn  = "avatar_small"
	userAvatarMediumColumn = "avatar_medium"
	userAvatarLargeColumn  = "avatar_large"
	userAvatarMimeColumn   = "avatar_mime"
	userCreatedAtColumn    = "created_at"
	userUpdatedAtColumn    = "updated_at"
)

// clearAvatarSQL nulls the avatar columns and returns the values they held
// immediately before, in a single statement. The row lock makes the
// read-then-clear atomic with respect to concurrent writers.
const clearAvatarSQL = `
UPDATE users AS u
SET avatar_small = NULL, avatar_medium = NULL, avatar_large = NULL, avatar_mime = NULL
FROM (
	SELECT id, avatar_small, avatar_medium, avatar_large, avatar_mime
	FROM users WHERE id = $1 FOR UPDATE
) AS prev
WHERE u.id = prev.id
RETURNING prev.avatar_small, prev.avatar_medium, prev.avatar_large, prev.avatar_mime`

type UserRepo struct {
	*postgres.Postgres
}

func NewUserRepo(pg *postgres.Postgres) *UserRepo {
	return &UserRepo{pg}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	sql, args, err := r.Builder.
		Insert(usersTable).
		Columns(
			userUsernameColumn,
			userEmailColumn,
			userPasswordHashColumn,
		).
		Values(
			user.Username,
			user.Email,
			user.PasswordHash,
		).
		Suffix("RETURNING id, is_verified, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	err = executor.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("UserRepo - Create: %w", errs.ErrAlreadyExists)
		}
		return fmt.Errorf("UserRepo - Create - executor.QueryRow.Scan: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getBy(ctx, squirrel.Eq{userIDColumn: id}, "GetByID")
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, squirrel.Eq{userEmailColumn: email}, "GetByEmail")
}

func (r *UserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	return r.getBy(ctx, squirrel.Or{
		squirrel.Eq{userUsernameColumn: username},
		squirrel.Eq{userEmailColumn: email},
	}, "GetByUsernameOrEmail")
}

func (r *UserRepo) getBy(ctx context.Context, where squirrel.Sqlizer, method string) (*entity.User, error) {
	sql, args, err := r.userSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepo - %s - r.Builder.ToSql: %w", method, err)
	}

	executor := r.GetExecutor(ctx)

	var user entity.User
	err = executor.QueryRow(ctx, sql, args...).Scan(userScanDest(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("UserRepo - %s: %w", method, errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("UserRepo - %s - executor.QueryRow.Scan: %w", method, err)
	}

	return &user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	sql, args, err := r.userSelect().OrderBy(userCreatedAtColumn + " ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("UserRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		if err := rows.Scan(userScanDest(&user)...); err != nil {
			return nil, fmt.Errorf("UserRepo - List - rows.Scan: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UserRepo - List - rows.Err: %w", err)
	}

	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	sql, args, err := r.Builder.
		Update(usersTable).
		Set(userUsernameColumn, user.Username).
		Set(userEmailColumn, user.Email).
		Set(userPasswordHashColumn, user.PasswordHash).
		Set(userUpdatedAtColumn, squirrel.Expr("now()")).
		Where(squirrel.Eq{userIDColumn: user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("UserRepo - Update: %w", errs.ErrAlreadyExists)
		}
		return fmt.Errorf("UserRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.Builder.
		Delete(usersTable).
		Where(squirrel.Eq{userIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("UserRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) SetVerified(ctx context.Context, id int64) error {
	sql, args, err := r.Builder.
		Update(usersTable).
		Set(userIsVerifiedColumn, true).
		Set(userUpdatedAtColumn, squirrel.Expr("now()")).
		Where(squirrel.Eq{userIDColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - SetVerified - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("UserRepo - SetVerified - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - SetVerified: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) GetVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	sql, args, err := r.Builder.
		Select(
			userAvatarSmallColumn,
			userAvatarMediumColumn,
			userAvatarLargeColumn,
			userAvatarMimeColumn,
		).
		From(usersTable).
		Where(squirrel.Eq{userIDColumn: entityID}).
		ToSql()
	if err != nil {
		return entity.VariantSet{}, fmt.Errorf("UserRepo - GetVariantSet - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var set entity.VariantSet
	err = executor.QueryRow(ctx, sql, args...).Scan(&set.SmallID, &set.MediumID, &set.LargeID, &set.Mime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.VariantSet{}, fmt.Errorf("UserRepo - GetVariantSet: %w", errs.ErrRecordNotFound)
		}
		return entity.VariantSet{}, fmt.Errorf("UserRepo - GetVariantSet - executor.QueryRow.Scan: %w", err)
	}

	return set, nil
}

func (r *UserRepo) UpdateVariantSet(ctx context.Context, entityID int64, set entity.VariantSet) error {
	sql, args, err := r.Builder.
		Update(usersTable).
		Set(userAvatarSmallColumn, set.SmallID).
		Set(userAvatarMediumColumn, set.MediumID).
		Set(userAvatarLargeColumn, set.LargeID).
		Set(userAvatarMimeColumn, set.Mime).
		Set(userUpdatedAtColumn, squirrel.Expr("now()")).
		Where(squirrel.Eq{userIDColumn: entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepo - UpdateVariantSet - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("UserRepo - UpdateVariantSet - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UserRepo - UpdateVariantSet: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *UserRepo) ClearVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	executor := r.GetExecutor(ctx)

	var prev entity.VariantSet
	err := executor.QueryRow(ctx, clearAvatarSQL, entityID).Scan(&prev.SmallID, &prev.MediumID, &prev.LargeID, &prev.Mime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.VariantSet{}, fmt.Errorf("UserRepo - ClearVariantSet: %w", errs.ErrRecordNotFound)
		}
		return entity.VariantSet{}, fmt.Errorf("UserRepo - ClearVariantSet - executor.QueryRow.Scan: %w", err)
	}

	return prev, nil
}

func (r *UserRepo) userSelect() squirrel.SelectBuilder {
	return r.Builder.
		Select(
			userIDColumn,
			userUsernameColumn,
			userEmailColumn,
			userPasswordHashColumn,
			userIsVerifiedColumn,
			userAvatarSmallColumn,
			userAvatarMediumColumn,
			userAvatarLargeColumn,
			userAvatarMimeColumn,
			userCreatedAtColumn,
			userUpdatedAtColumn,
		).
		From(usersTable)
}

func userScanDest(user *entity.User) []any {
	return []any{
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.Avatar.SmallID,
		&user.Avatar.MediumID,
		&user.Avatar.LargeID,
		&user.Avatar.Mime,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
}

// isUniqueViolation reports a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

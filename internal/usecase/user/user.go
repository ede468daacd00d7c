package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/media"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

type UserUseCase struct {
	userRepo   repo.UserRepo
	keyRepo    repo.VerificationKeyRepo
	outboxRepo repo.OutboxRepo
	transactor repo.Transactor
	avatars    *media.Lifecycle

	verification VerificationConfig

	logger logger.Interface
}

func New(
	userRepo repo.UserRepo,
	keyRepo repo.VerificationKeyRepo,
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	avatars *media.Lifecycle,
	verification VerificationConfig,
	l logger.Interface,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		keyRepo:      keyRepo,
		outboxRepo:   outboxRepo,
		transactor:   transactor,
		avatars:      avatars,
		verification: verification,
		logger:       l,
	}
}

func (uc *UserUseCase) Create(ctx context.Context, input dto.CreateUser) (*entity.User, error) {
	existing, err := uc.userRepo.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, errs.ErrRecordNotFound) {
		return nil, fmt.Errorf("UserUseCase - Create - uc.userRepo.GetByUsernameOrEmail: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("UserUseCase - Create: %w", errs.ErrAlreadyExists)
	}

	hash, err := argon2id.CreateHash(input.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - Create - argon2id.CreateHash: %w", err)
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	// The row, the avatar references and the verification notification
	// commit together. The avatar is attached before the verification key
	// is issued, so a rejected upload aborts before any email is queued.
	var uploaded entity.VariantSet
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("uc.userRepo.Create: %w", err)
		}

		if input.Avatar != nil {
			set, err := uc.avatars.Attach(ctx, user.ID, *input.Avatar)
			if err != nil {
				return fmt.Errorf("uc.avatars.Attach: %w", err)
			}
			uploaded = set
			user.Avatar = set
		}

		if err := uc.issueVerification(ctx, user.Email); err != nil {
			return fmt.Errorf("uc.issueVerification: %w", err)
		}

		return nil
	})
	if err != nil {
		// the rollback dropped the references, the objects go with them
		if !uploaded.IsEmpty() {
			uc.avatars.Purge(ctx, uploaded)
		}
		return nil, fmt.Errorf("UserUseCase - Create - uc.transactor.WithinTransaction: %w", err)
	}

	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - List - uc.userRepo.List: %w", err)
	}

	return users, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - GetByID - uc.userRepo.GetByID: %w", err)
	}

	return user, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id int64, input dto.UpdateUser) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - Update - uc.userRepo.GetByID: %w", err)
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := argon2id.CreateHash(*input.Password, argon2id.DefaultParams)
		if err != nil {
			return nil, fmt.Errorf("UserUseCase - Update - argon2id.CreateHash: %w", err)
		}
		user.PasswordHash = hash
	}

	err = uc.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("UserUseCase - Update - uc.userRepo.Update: %w", err)
	}

	if input.Avatar != nil {
		set, err := uc.avatars.Attach(ctx, user.ID, *input.Avatar)
		if err != nil {
			return nil, fmt.Errorf("UserUseCase - Update - uc.avatars.Attach: %w", err)
		}
		user.Avatar = set
	}

	return user, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("UserUseCase - Delete - uc.userRepo.GetByID: %w", err)
	}

	err = uc.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("UserUseCase - Delete - uc.userRepo.Delete: %w", err)
	}

	uc.avatars.Purge(ctx, user.Avatar)

	return nil
}

func (uc *UserUseCase) Verify(ctx context.Context, key uuid.UUID) error {
	vk, err := uc.keyRepo.GetByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("UserUseCase - Verify - uc.keyRepo.GetByKey: %w", err)
	}

	user, err := uc.userRepo.GetByEmail(ctx, vk.Email)
	if err != nil {
		return fmt.Errorf("UserUseCase - Verify - uc.userRepo.GetByEmail: %w", err)
	}

	if user.IsVerified {
		return fmt.Errorf("UserUseCase - Verify: %w", errs.ErrAlreadyExists)
	}

	if time.Now().After(vk.ExpiresAt) {
		// drop the stale key and send a fresh one in a single commit
		err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := uc.keyRepo.Delete(ctx, vk.ID); err != nil {
				return fmt.Errorf("uc.keyRepo.Delete: %w", err)
			}

			if err := uc.issueVerification(ctx, vk.Email); err != nil {
				return fmt.Errorf("uc.issueVerification: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("UserUseCase - Verify - uc.transactor.WithinTransaction: %w", err)
		}

		return fmt.Errorf("UserUseCase - Verify: %w", errs.ErrKeyExpired)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.SetVerified(ctx, user.ID); err != nil {
			return fmt.Errorf("uc.userRepo.SetVerified: %w", err)
		}

		if err := uc.keyRepo.Delete(ctx, vk.ID); err != nil {
			return fmt.Errorf("uc.keyRepo.Delete: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("UserUseCase - Verify - uc.transactor.WithinTransaction: %w", err)
	}

	return nil
}

func (uc *UserUseCase) AvatarURL(ctx context.Context, id int64, size entity.ImageSize) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("UserUseCase - AvatarURL - uc.userRepo.GetByID: %w", err)
	}

	url, err := uc.avatars.VariantURL(user.Avatar, size)
	if err != nil {
		return "", fmt.Errorf("UserUseCase - AvatarURL: %w", err)
	}

	return url, nil
}

func (uc *UserUseCase) RemoveAvatar(ctx context.Context, id int64) error {
	if _, err := uc.userRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("UserUseCase - RemoveAvatar - uc.userRepo.GetByID: %w", err)
	}

	err := uc.avatars.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("UserUseCase - RemoveAvatar: %w", err)
	}

	return nil
}

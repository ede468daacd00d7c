package v1

import (
	"errors"
	"net/http"

	"github.com/YanPetrov7/blog-content-management-system/internal/controller/restapi/v1/response"
	"github.com/YanPetrov7/blog-content-management-system/internal/infrastructure/processor"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/media"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

// handleError maps usecase errors onto HTTP statuses; anything not in the
// taxonomy is logged and reported as a 500.
func (r *V1) handleError(ctx *fiber.Ctx, err error, operation string) error {
	switch {
	case errors.Is(err, errs.ErrRecordNotFound):
		return errorResponse(ctx, http.StatusNotFound, "not found")
	case errors.Is(err, media.ErrNoMedia):
		return errorResponse(ctx, http.StatusNotFound, "no media attached")
	case errors.Is(err, errs.ErrAlreadyExists):
		return errorResponse(ctx, http.StatusConflict, "already exists")
	case errors.Is(err, processor.ErrUnsupportedFormat):
		return errorResponse(ctx, http.StatusUnsupportedMediaType, "unsupported file type. Allowed: jpeg, png, gif")
	case errors.Is(err, errs.ErrKeyExpired):
		return errorResponse(ctx, http.StatusGone, "verification key expired, a new one has been sent")
	case errors.Is(err, media.ErrUploadFailed), errors.Is(err, media.ErrPersistFailed):
		r.logger.Error(err, operation)

		return errorResponse(ctx, http.StatusInternalServerError, "media storage problems")
	default:
		r.logger.Error(err, operation)

		return errorResponse(ctx, http.StatusInternalServerError, "internal problems")
	}
}

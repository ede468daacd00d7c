package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func pathID(ctx *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

package restapi

import (
	"github.com/YanPetrov7/blog-content-management-system/config"
	v1 "github.com/YanPetrov7/blog-content-management-system/internal/controller/restapi/v1"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// @title Blog content management system
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	users usecase.UserUseCase,
	posts usecase.PostUseCase,
	categories usecase.CategoryUseCase,
	comments usecase.CommentUseCase,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewBlogRoutes(apiV1Group, users, posts, categories, comments, l)
	}
}

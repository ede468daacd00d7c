package v1

import (
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewBlogRoutes(
	apiV1Group fiber.Router,
	users usecase.UserUseCase,
	posts usecase.PostUseCase,
	categories usecase.CategoryUseCase,
	comments usecase.CommentUseCase,
	l logger.Interface,
) {
	r := &V1{
		users:      users,
		posts:      posts,
		categories: categories,
		comments:   comments,
		logger:     l,
	}

	{
		// Users
		apiV1Group.Post("/users", r.createUser)
		apiV1Group.Get("/users", r.listUsers)
		apiV1Group.Get("/users/verify", r.verifyUser)
		apiV1Group.Get("/users/:id", r.getUser)
		apiV1Group.Put("/users/:id", r.updateUser)
		apiV1Group.Delete("/users/:id", r.deleteUser)
		apiV1Group.Get("/users/:id/avatar", r.getUserAvatar)
		apiV1Group.Delete("/users/:id/avatar", r.removeUserAvatar)

		// Posts
		apiV1Group.Post("/posts", r.createPost)
		apiV1Group.Get("/posts", r.listPosts)
		apiV1Group.Get("/posts/:id", r.getPost)
		apiV1Group.Put("/posts/:id", r.updatePost)
		apiV1Group.Delete("/posts/:id", r.deletePost)
		apiV1Group.Get("/posts/:id/image", r.getPostImage)
		apiV1Group.Delete("/posts/:id/image", r.removePostImage)

		// Comments
		apiV1Group.Post("/posts/:id/comments", r.createComment)
		apiV1Group.Get("/posts/:id/comments", r.listComments)
		apiV1Group.Delete("/posts/:id/comments/:commentId", r.deleteComment)

		// Categories
		apiV1Group.Post("/categories", r.createCategory)
		apiV1Group.Get("/categories", r.listCategories)
		apiV1Group.Get("/categories/:id", r.getCategory)
		apiV1Group.Put("/categories/:id", r.updateCategory)
		apiV1Group.Delete("/categories/:id", r.deleteCategory)
	}
}

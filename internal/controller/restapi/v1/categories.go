package v1

import (
	"net/http"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// @Summary  	Create category
// @Tags 		categories
// @Accept 		json
// @Produce 	json
// @Param 		category body categoryRequest true "Category"
// @Success 	201 {object} entity.Category
// @Failure 	400 {object} response.Error "Missing name"
// @Failure 	409 {object} response.Error "Name taken"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/categories [post]
func (r *V1) createCategory(ctx *fiber.Ctx) error {
	var req categoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return errorResponse(ctx, http.StatusBadRequest, "name is required")
	}

	category, err := r.categories.Create(ctx.UserContext(), dto.CreateCategory{Name: req.Name})
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - createCategory")
	}

	return ctx.Status(http.StatusCreated).JSON(category)
}

// @Summary  	List categories
// @Tags 		categories
// @Produce 	json
// @Success 	200 {array}  entity.Category
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/categories [get]
func (r *V1) listCategories(ctx *fiber.Ctx) error {
	categories, err := r.categories.List(ctx.UserContext())
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - listCategories")
	}

	return ctx.JSON(categories)
}

// @Summary  	Get category
// @Tags 		categories
// @Produce 	json
// @Param 		id path int true "Category ID"
// @Success 	200 {object} entity.Category
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Category not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/categories/{id} [get]
func (r *V1) getCategory(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	category, err := r.categories.GetByID(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - getCategory")
	}

	return ctx.JSON(category)
}

// @Summary  	Update category
// @Tags 		categories
// @Accept 		json
// @Produce 	json
// @Param 		id 		 path int 			  true "Category ID"
// @Param 		category body categoryRequest true "Category"
// @Success 	200 {object} entity.Category
// @Failure 	400 {object} response.Error "Invalid ID or missing name"
// @Failure 	404 {object} response.Error "Category not found"
// @Failure 	409 {object} response.Error "Name taken"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/categories/{id} [put]
func (r *V1) updateCategory(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var req categoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return errorResponse(ctx, http.StatusBadRequest, "name is required")
	}

	category, err := r.categories.Update(ctx.UserContext(), id, dto.UpdateCategory{Name: req.Name})
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - updateCategory")
	}

	return ctx.JSON(category)
}

// @Summary  	Delete category
// @Tags 		categories
// @Param 		id path int true "Category ID"
// @Success 	204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Category not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/categories/{id} [delete]
func (r *V1) deleteCategory(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err := r.categories.Delete(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - deleteCategory")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

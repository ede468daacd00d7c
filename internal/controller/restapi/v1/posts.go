package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// @Summary  	Create post
// @Description Creates a post, optionally with an image
// @Tags 		posts
// @Accept 		mpfd
// @Produce 	json
// @Param 		title 		 formData string true  "Title"
// @Param 		content 	 formData string true  "Content"
// @Param 		author_id 	 formData int 	 true  "Author user ID"
// @Param 		category_id  formData int 	 false "Category ID"
// @Param 		is_published formData bool 	 false "Published flag"
// @Param 		image 		 formData file 	 false "Post image(jpg, png, gif)"
// @Success 	201 {object} entity.Post
// @Failure 	400 {object} response.Error "Missing fields"
// @Failure 	404 {object} response.Error "Author or category not found"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts [post]
func (r *V1) createPost(ctx *fiber.Ctx) error {
	title := ctx.FormValue("title")
	content := ctx.FormValue("content")

	if title == "" || content == "" {
		return errorResponse(ctx, http.StatusBadRequest, "title and content are required")
	}

	authorID, err := strconv.ParseInt(ctx.FormValue("author_id"), 10, 64)
	if err != nil || authorID <= 0 {
		return errorResponse(ctx, http.StatusBadRequest, "author_id must be a positive number")
	}

	input := dto.CreatePost{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}

	if v := ctx.FormValue("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || categoryID <= 0 {
			return errorResponse(ctx, http.StatusBadRequest, "category_id must be a positive number")
		}
		input.CategoryID = &categoryID
	}

	if v := ctx.FormValue("is_published"); v != "" {
		isPublished, err := strconv.ParseBool(v)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "is_published must be a boolean")
		}
		input.IsPublished = isPublished
	}

	image, code, msg := formUpload(ctx, "image")
	if code != 0 {
		return errorResponse(ctx, code, msg)
	}
	input.Image = image

	post, err := r.posts.Create(ctx.UserContext(), input)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - createPost")
	}

	return ctx.Status(http.StatusCreated).JSON(post)
}

// @Summary  	List posts
// @Description Lists posts with filtering, sorting and pagination
// @Tags 		posts
// @Produce 	json
// @Param 		title 		 query string false "Title substring"
// @Param 		author 		 query string false "Author username"
// @Param 		category 	 query string false "Category name"
// @Param 		is_published query bool   false "Published flag"
// @Param 		sort_by 	 query string false "Sort column" Enums(id, title, created_at, updated_at) default(created_at)
// @Param 		sort_order 	 query string false "Sort order" Enums(asc, desc) default(desc)
// @Param 		page 		 query int 	  false "Page" default(1)
// @Param 		limit 		 query int 	  false "Page size" default(10)
// @Success 	200 {array}  entity.Post
// @Failure 	400 {object} response.Error "Bad filter values"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts [get]
func (r *V1) listPosts(ctx *fiber.Ctx) error {
	filter := dto.PostFilter{
		SortBy:    "created_at",
		SortOrder: dto.SortDesc,
		Page:      defaultPage,
		Limit:     defaultLimit,
	}

	if v := ctx.Query("title"); v != "" {
		filter.Title = &v
	}
	if v := ctx.Query("author"); v != "" {
		filter.Author = &v
	}
	if v := ctx.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := ctx.Query("is_published"); v != "" {
		isPublished, err := strconv.ParseBool(v)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "is_published must be a boolean")
		}
		filter.IsPublished = &isPublished
	}
	if v := ctx.Query("sort_by"); v != "" {
		filter.SortBy = v
	}
	if v := strings.ToUpper(ctx.Query("sort_order")); v != "" {
		if v != string(dto.SortAsc) && v != string(dto.SortDesc) {
			return errorResponse(ctx, http.StatusBadRequest, "sort_order must be asc or desc")
		}
		filter.SortOrder = dto.SortOrder(v)
	}
	if v := ctx.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page <= 0 {
			return errorResponse(ctx, http.StatusBadRequest, "page must be a positive number")
		}
		filter.Page = page
	}
	if v := ctx.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > maxLimit {
			return errorResponse(ctx, http.StatusBadRequest, "limit must be between 1 and 100")
		}
		filter.Limit = limit
	}

	posts, err := r.posts.List(ctx.UserContext(), filter)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - listPosts")
	}

	return ctx.JSON(posts)
}

// @Summary  	Get post
// @Tags 		posts
// @Produce 	json
// @Param 		id path int true "Post ID"
// @Success 	200 {object} entity.Post
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Post not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id} [get]
func (r *V1) getPost(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	post, err := r.posts.GetByID(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - getPost")
	}

	return ctx.JSON(post)
}

// @Summary  	Update post
// @Description Updates post fields; a new image file replaces the current one
// @Tags 		posts
// @Accept 		mpfd
// @Produce 	json
// @Param 		id 			 path 	  int 	 true  "Post ID"
// @Param 		title 		 formData string false "Title"
// @Param 		content 	 formData string false "Content"
// @Param 		category_id  formData int 	 false "Category ID"
// @Param 		is_published formData bool 	 false "Published flag"
// @Param 		image 		 formData file 	 false "Post image(jpg, png, gif)"
// @Success 	200 {object} entity.Post
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Post or category not found"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id} [put]
func (r *V1) updatePost(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var input dto.UpdatePost
	if v := ctx.FormValue("title"); v != "" {
		input.Title = &v
	}
	if v := ctx.FormValue("content"); v != "" {
		input.Content = &v
	}
	if v := ctx.FormValue("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || categoryID <= 0 {
			return errorResponse(ctx, http.StatusBadRequest, "category_id must be a positive number")
		}
		input.CategoryID = &categoryID
	}
	if v := ctx.FormValue("is_published"); v != "" {
		isPublished, err := strconv.ParseBool(v)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "is_published must be a boolean")
		}
		input.IsPublished = &isPublished
	}

	image, code, msg := formUpload(ctx, "image")
	if code != 0 {
		return errorResponse(ctx, code, msg)
	}
	input.Image = image

	post, err := r.posts.Update(ctx.UserContext(), id, input)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - updatePost")
	}

	return ctx.JSON(post)
}

// @Summary  	Delete post
// @Description Deletes the post and the image variants it references
// @Tags 		posts
// @Param 		id path int true "Post ID"
// @Success 	204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Post not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id} [delete]
func (r *V1) deletePost(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err := r.posts.Delete(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - deletePost")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary  	Get post image
// @Description Redirects to the image variant of the requested size
// @Tags 		posts
// @Param 		id 	 path  int 	  true  "Post ID"
// @Param 		size query string false "Variant size" Enums(small, medium, large) default(medium)
// @Success 	302 "Redirect to the object store URL"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Post or image not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id}/image [get]
func (r *V1) getPostImage(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	size := entity.ParseImageSize(ctx.Query("size"))

	url, err := r.posts.ImageURL(ctx.UserContext(), id, size)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - getPostImage")
	}

	return ctx.Redirect(url, http.StatusFound)
}

// @Summary  	Remove post image
// @Description Clears the image references, then deletes the stored variants
// @Tags 		posts
// @Param 		id path int true "Post ID"
// @Success 	204 "Removed"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Post or image not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id}/image [delete]
func (r *V1) removePostImage(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err := r.posts.RemoveImage(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - removePostImage")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

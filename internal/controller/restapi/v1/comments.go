package v1

import (
	"net/http"
	"strconv"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	AuthorID int64  `json:"author_id"`
	Content  string `json:"content"`
}

// @Summary  	Create comment
// @Tags 		comments
// @Accept 		json
// @Produce 	json
// @Param 		id 		path int 			true "Post ID"
// @Param 		comment body commentRequest true "Comment"
// @Success 	201 {object} entity.Comment
// @Failure 	400 {object} response.Error "Missing fields"
// @Failure 	404 {object} response.Error "Post or author not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id}/comments [post]
func (r *V1) createComment(ctx *fiber.Ctx) error {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var req commentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Content == "" {
		return errorResponse(ctx, http.StatusBadRequest, "content is required")
	}
	if req.AuthorID <= 0 {
		return errorResponse(ctx, http.StatusBadRequest, "author_id must be a positive number")
	}

	comment, err := r.comments.Create(ctx.UserContext(), postID, dto.CreateComment{
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - createComment")
	}

	return ctx.Status(http.StatusCreated).JSON(comment)
}

// @Summary  	List comments
// @Description Lists a post's comments with pagination
// @Tags 		comments
// @Produce 	json
// @Param 		id 	  path  int true  "Post ID"
// @Param 		page  query int false "Page" default(1)
// @Param 		limit query int false "Page size" default(10)
// @Success 	200 {array}  entity.Comment
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Post not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id}/comments [get]
func (r *V1) listComments(ctx *fiber.Ctx) error {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	filter := dto.CommentFilter{
		Page:  defaultPage,
		Limit: defaultLimit,
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

	comments, err := r.comments.ListByPost(ctx.UserContext(), postID, filter)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - listComments")
	}

	return ctx.JSON(comments)
}

// @Summary  	Delete comment
// @Tags 		comments
// @Param 		id 		  path int true "Post ID"
// @Param 		commentId path int true "Comment ID"
// @Success 	204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Comment not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/posts/{id}/comments/{commentId} [delete]
func (r *V1) deleteComment(ctx *fiber.Ctx) error {
	postID, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid comment id")
	}

	err := r.comments.Delete(ctx.UserContext(), postID, commentID)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - deleteComment")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

package v1

import (
	"net/http"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary  	Create user
// @Description Registers a user, optionally with an avatar; sends a verification email
// @Tags 		users
// @Accept 		mpfd
// @Produce 	json
// @Param 		username formData string true  "Username"
// @Param 		email 	 formData string true  "Email"
// @Param 		password formData string true  "Password"
// @Param 		avatar 	 formData file   false "Avatar image(jpg, png, gif)"
// @Success 	201 {object} entity.User
// @Failure 	400 {object} response.Error "Missing fields"
// @Failure 	409 {object} response.Error "Username or email taken"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users [post]
func (r *V1) createUser(ctx *fiber.Ctx) error {
	username := ctx.FormValue("username")
	email := ctx.FormValue("email")
	password := ctx.FormValue("password")

	if username == "" || email == "" || password == "" {
		return errorResponse(ctx, http.StatusBadRequest, "username, email and password are required")
	}

	avatar, code, msg := formUpload(ctx, "avatar")
	if code != 0 {
		return errorResponse(ctx, code, msg)
	}

	user, err := r.users.Create(ctx.UserContext(), dto.CreateUser{
		Username: username,
		Email:    email,
		Password: password,
		Avatar:   avatar,
	})
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - createUser")
	}

	return ctx.Status(http.StatusCreated).JSON(user)
}

// @Summary  	List users
// @Tags 		users
// @Produce 	json
// @Success 	200 {array}  entity.User
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users [get]
func (r *V1) listUsers(ctx *fiber.Ctx) error {
	users, err := r.users.List(ctx.UserContext())
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - listUsers")
	}

	return ctx.JSON(users)
}

// @Summary  	Verify user email
// @Description Confirms the address behind a verification key; an expired key is replaced and re-sent
// @Tags 		users
// @Produce 	json
// @Param 		key query string true "Verification key(uuid)"
// @Success 	200 "Verified"
// @Failure 	400 {object} response.Error "Invalid key"
// @Failure 	404 {object} response.Error "Unknown key"
// @Failure 	409 {object} response.Error "Already verified"
// @Failure 	410 {object} response.Error "Key expired"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users/verify [get]
func (r *V1) verifyUser(ctx *fiber.Ctx) error {
	key, err := uuid.Parse(ctx.Query("key"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid key")
	}

	err = r.users.Verify(ctx.UserContext(), key)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - verifyUser")
	}

	return ctx.SendStatus(http.StatusOK)
}

// @Summary  	Get user
// @Tags 		users
// @Produce 	json
// @Param 		id path int true "User ID"
// @Success 	200 {object} entity.User
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "User not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users/{id} [get]
func (r *V1) getUser(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	user, err := r.users.GetByID(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - getUser")
	}

	return ctx.JSON(user)
}

// @Summary  	Update user
// @Description Updates user fields; a new avatar file replaces the current one
// @Tags 		users
// @Accept 		mpfd
// @Produce 	json
// @Param 		id 		 path 	  int 	 true  "User ID"
// @Param 		username formData string false "Username"
// @Param 		email 	 formData string false "Email"
// @Param 		password formData string false "Password"
// @Param 		avatar 	 formData file 	 false "Avatar image(jpg, png, gif)"
// @Success 	200 {object} entity.User
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "User not found"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users/{id} [put]
func (r *V1) updateUser(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	avatar, code, msg := formUpload(ctx, "avatar")
	if code != 0 {
		return errorResponse(ctx, code, msg)
	}

	var input dto.UpdateUser
	if v := ctx.FormValue("username"); v != "" {
		input.Username = &v
	}
	if v := ctx.FormValue("email"); v != "" {
		input.Email = &v
	}
	if v := ctx.FormValue("password"); v != "" {
		input.Password = &v
	}
	input.Avatar = avatar

	user, err := r.users.Update(ctx.UserContext(), id, input)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - updateUser")
	}

	return ctx.JSON(user)
}

// @Summary  	Delete user
// @Description Deletes the user and the avatar variants it references
// @Tags 		users
// @Param 		id path int true "User ID"
// @Success 	204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "User not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users/{id} [delete]
func (r *V1) deleteUser(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err := r.users.Delete(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - deleteUser")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary  	Get user avatar
// @Description Redirects to the avatar variant of the requested size
// @Tags 		users
// @Param 		id 	 path  int 	  true  "User ID"
// @Param 		size query string false "Variant size" Enums(small, medium, large) default(medium)
// @Success 	302 "Redirect to the object store URL"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "User or avatar not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users/{id}/avatar [get]
func (r *V1) getUserAvatar(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	size := entity.ParseImageSize(ctx.Query("size"))

	url, err := r.users.AvatarURL(ctx.UserContext(), id, size)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - getUserAvatar")
	}

	return ctx.Redirect(url, http.StatusFound)
}

// @Summary  	Remove user avatar
// @Description Clears the avatar references, then deletes the stored variants
// @Tags 		users
// @Param 		id path int true "User ID"
// @Success 	204 "Removed"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "User or avatar not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/users/{id}/avatar [delete]
func (r *V1) removeUserAvatar(ctx *fiber.Ctx) error {
	id, ok := pathID(ctx, "id")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err := r.users.RemoveAvatar(ctx.UserContext(), id)
	if err != nil {
		return r.handleError(ctx, err, "restapi - v1 - removeUserAvatar")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

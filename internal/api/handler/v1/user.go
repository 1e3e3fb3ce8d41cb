package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinswap/api/internal/api/handler/v1/request"
	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/api/middleware"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error
	ListUsers(ctx context.Context, page domain.Page) ([]domain.User, int64, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /users/me [get]
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, errResp := getUserFromContext(ctx, h.svc)
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateMe godoc
// @Summary      Update the authenticated user's profile
// @Description  Role and status cannot be changed here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.UpdateProfileRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /users/me [put]
func (h *UserHandler) HandleUpdateMe(ctx *gin.Context) {
	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := middleware.UserID(ctx)
	user, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		h.renderUserErr(ctx, "v1.HandleUpdateMe -> h.svc.UpdateProfile", userID, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.ChangePasswordRequest  true  "request body"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Router       /users/me/change-password [post]
func (h *UserHandler) HandleChangePassword(ctx *gin.Context) {
	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := middleware.UserID(ctx)
	if err := h.svc.ChangePassword(ctx.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		h.renderUserErr(ctx, "v1.HandleChangePassword -> h.svc.ChangePassword", userID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Password changed"})
}

// HandleGetUser godoc
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "user ID"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /users/{id} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		h.renderUserErr(ctx, "v1.HandleGetUser -> h.svc.GetUser", id, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.PageResponse
// @Router       /admin/users [get]
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	page := pageFromQuery(ctx)

	users, total, err := h.svc.ListUsers(ctx.Request.Context(), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(users, total, page))
}

// HandleCreateUser godoc
// @Summary      Create a user with any role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateUserRequest  true  "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/users [post]
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		h.renderUserErr(ctx, "v1.HandleCreateUser -> h.svc.CreateUser", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleUpdateUser godoc
// @Summary      Update any user field, including role and status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "user ID"
// @Param        request  body      request.UpdateUserRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /admin/users/{id} [put]
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), id, req.ToDomain())
	if err != nil {
		h.renderUserErr(ctx, "v1.HandleUpdateUser -> h.svc.UpdateUser", id, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "user ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.Err
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), id); err != nil {
		h.renderUserErr(ctx, "v1.HandleDeleteUser -> h.svc.DeleteUser", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "User deleted"})
}

func (h *UserHandler) renderUserErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound("user", "ID", id))
	case errors.Is(err, service.ErrUserEmailExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
	case errors.Is(err, service.ErrInvalidRole):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRole))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

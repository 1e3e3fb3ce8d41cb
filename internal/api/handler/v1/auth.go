package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinswap/api/internal/api/handler/v1/request"
	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/jwthelper"
	"github.com/pinswap/api/internal/service"
)

const forgotPasswordMessage = "If the email is registered, a reset link has been sent"

type AuthService interface {
	Register(ctx context.Context, user domain.User, business *domain.Business) (domain.User, error)
	Login(ctx context.Context, email, password string, role domain.Role) (domain.User, error)
	ForgotPassword(ctx context.Context, email string) (service.PasswordReset, error)
	ResetPassword(ctx context.Context, token, newPassword string) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a citizen or business account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterRequest  true  "request body"
// @Success      201      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var business *domain.Business
	if req.IsBusiness() {
		business = &domain.Business{
			CompanyName: req.CompanyName,
			TaxCode:     req.TaxCode,
		}
	}

	user, err := h.svc.Register(ctx.Request.Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	}, business)
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrUserEmailExists))
			return
		}
		if errors.Is(err, service.ErrBusinessTaxCodeExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrBusinessTaxCodeExists))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderToken(ctx, http.StatusCreated, user)
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
		case errors.Is(err, service.ErrRoleMismatch), errors.Is(err, service.ErrAccountLocked):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	h.renderToken(ctx, http.StatusOK, user)
}

// HandleForgotPassword godoc
// @Summary      Email a password reset link
// @Description  Always succeeds for unknown emails. Outside production the link is returned when it cannot be emailed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.ForgotPasswordRequest  true  "request body"
// @Success      200      {object}  response.ForgotPasswordResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) HandleForgotPassword(ctx *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reset, err := h.svc.ForgotPassword(ctx.Request.Context(), req.Email)
	if err != nil {
		err = fmt.Errorf("v1.HandleForgotPassword -> h.svc.ForgotPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ForgotPasswordResponse{
		Message:    forgotPasswordMessage,
		ResetToken: reset.Token,
		ResetURL:   reset.URL,
	})
}

// HandleResetPassword godoc
// @Summary      Set a new password with a reset token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.ResetPasswordRequest  true  "request body"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/reset-password [post]
func (h *AuthHandler) HandleResetPassword(ctx *gin.Context) {
	var req request.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, err := h.svc.ResetPassword(ctx.Request.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleResetPassword -> h.svc.ResetPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Password has been reset"})
}

func (h *AuthHandler) renderToken(ctx *gin.Context, status int, user domain.User) {
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, string(user.Role), ctx.Request.UserAgent(), h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.renderToken -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(status, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

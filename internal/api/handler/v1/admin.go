package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinswap/api/internal/api/handler/v1/request"
	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/service"
)

type AdminService interface {
	Stats(ctx context.Context) (domain.Stats, error)
	ListBusinesses(ctx context.Context, pendingOnly bool) ([]domain.Business, error)
	ApproveBusiness(ctx context.Context, id uint) (domain.Business, error)
	CreateBusiness(ctx context.Context, business domain.Business) (domain.Business, error)
	UpdateBusiness(ctx context.Context, id uint, companyName, taxCode *string, verified *bool) (domain.Business, error)
	DeleteBusiness(ctx context.Context, id uint) error
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleStats godoc
// @Summary      Platform totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Router       /admin/stats [get]
func (h *AdminHandler) HandleStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleStats -> h.svc.Stats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleListBusinesses godoc
// @Summary      List business profiles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        pending  query     bool  false  "only unverified businesses"
// @Success      200      {array}   domain.Business
// @Router       /admin/businesses [get]
func (h *AdminHandler) HandleListBusinesses(ctx *gin.Context) {
	pendingOnly := ctx.Query("pending") == "true" || ctx.Query("status") == "pending"

	businesses, err := h.svc.ListBusinesses(ctx.Request.Context(), pendingOnly)
	if err != nil {
		err = fmt.Errorf("v1.HandleListBusinesses -> h.svc.ListBusinesses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, businesses)
}

// HandleApproveBusiness godoc
// @Summary      Mark a business as verified
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "business ID"
// @Success      200  {object}  domain.Business
// @Failure      404  {object}  response.Err
// @Router       /admin/businesses/{id}/approve [post]
func (h *AdminHandler) HandleApproveBusiness(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	business, err := h.svc.ApproveBusiness(ctx.Request.Context(), id)
	if err != nil {
		h.renderBusinessErr(ctx, "v1.HandleApproveBusiness -> h.svc.ApproveBusiness", id, err)
		return
	}

	ctx.JSON(http.StatusOK, business)
}

// HandleCreateBusiness godoc
// @Summary      Attach a business profile to an existing account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateBusinessRequest  true  "request body"
// @Success      201      {object}  domain.Business
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/businesses [post]
func (h *AdminHandler) HandleCreateBusiness(ctx *gin.Context) {
	var req request.CreateBusinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	business, err := h.svc.CreateBusiness(ctx.Request.Context(), domain.Business{
		UserID:      req.UserID,
		CompanyName: req.CompanyName,
		TaxCode:     req.TaxCode,
		Verified:    req.Verified,
	})
	if err != nil {
		if errors.Is(err, service.ErrBusinessUserNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		h.renderBusinessErr(ctx, "v1.HandleCreateBusiness -> h.svc.CreateBusiness", 0, err)
		return
	}

	ctx.JSON(http.StatusCreated, business)
}

// HandleUpdateBusiness godoc
// @Summary      Update a business profile
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                            true  "business ID"
// @Param        request  body      request.UpdateBusinessRequest  true  "request body"
// @Success      200      {object}  domain.Business
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /admin/businesses/{id} [put]
func (h *AdminHandler) HandleUpdateBusiness(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.UpdateBusinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	business, err := h.svc.UpdateBusiness(ctx.Request.Context(), id, req.CompanyName, req.TaxCode, req.Verified)
	if err != nil {
		h.renderBusinessErr(ctx, "v1.HandleUpdateBusiness -> h.svc.UpdateBusiness", id, err)
		return
	}

	ctx.JSON(http.StatusOK, business)
}

// HandleDeleteBusiness godoc
// @Summary      Delete a business profile
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "business ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.Err
// @Router       /admin/businesses/{id} [delete]
func (h *AdminHandler) HandleDeleteBusiness(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.DeleteBusiness(ctx.Request.Context(), id); err != nil {
		h.renderBusinessErr(ctx, "v1.HandleDeleteBusiness -> h.svc.DeleteBusiness", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Business deleted"})
}

func (h *AdminHandler) renderBusinessErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrBusinessNotFound):
		response.RenderErr(ctx, response.ErrNotFound("business", "ID", id))
	case errors.Is(err, service.ErrBusinessTaxCodeExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrBusinessTaxCodeExists))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

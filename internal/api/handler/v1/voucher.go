package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pinswap/api/internal/api/handler/v1/request"
	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/api/middleware"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/service"
)

type VoucherService interface {
	ListAvailable(ctx context.Context) ([]domain.Voucher, error)
	GetVoucher(ctx context.Context, id uint) (domain.Voucher, error)
	Redeem(ctx context.Context, userID, voucherID uint) (domain.RedemptionResult, error)
	History(ctx context.Context, userID uint) ([]domain.RedemptionRecord, error)
	CreateVoucher(ctx context.Context, actor domain.User, voucher domain.Voucher) (domain.Voucher, error)
	UpdateVoucher(ctx context.Context, actor domain.User, id uint, update domain.VoucherUpdate) (domain.Voucher, error)
	DeleteVoucher(ctx context.Context, actor domain.User, id uint) error
	ListByBusiness(ctx context.Context, actor domain.User, businessID uint) ([]domain.Voucher, error)
	ListAll(ctx context.Context) ([]domain.Voucher, error)
}

type VoucherHandler struct {
	svc   VoucherService
	users UserGetter
}

func NewVoucherHandler(svc VoucherService, users UserGetter) *VoucherHandler {
	return &VoucherHandler{
		svc:   svc,
		users: users,
	}
}

// HandleListVouchers godoc
// @Summary      List redeemable vouchers
// @Tags         vouchers
// @Produce      json
// @Success      200  {array}   domain.Voucher
// @Failure      500  {object}  response.Err
// @Router       /vouchers [get]
func (h *VoucherHandler) HandleListVouchers(ctx *gin.Context) {
	vouchers, err := h.svc.ListAvailable(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListVouchers -> h.svc.ListAvailable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vouchers)
}

// HandleGetVoucher godoc
// @Summary      Get a voucher
// @Tags         vouchers
// @Produce      json
// @Param        id   path      int  true  "voucher ID"
// @Success      200  {object}  domain.Voucher
// @Failure      404  {object}  response.Err
// @Router       /vouchers/{id} [get]
func (h *VoucherHandler) HandleGetVoucher(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	voucher, err := h.svc.GetVoucher(ctx.Request.Context(), id)
	if err != nil {
		h.renderVoucherErr(ctx, "v1.HandleGetVoucher -> h.svc.GetVoucher", id, err)
		return
	}

	ctx.JSON(http.StatusOK, voucher)
}

// HandleExchangeVoucher godoc
// @Summary      Exchange points for a voucher
// @Description  Debits the voucher's points and takes one unit of stock. The debit is refunded if the stock runs out first.
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.ExchangeVoucherRequest  true  "request body"
// @Success      200      {object}  response.ExchangeResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /vouchers/exchange [post]
func (h *VoucherHandler) HandleExchangeVoucher(ctx *gin.Context) {
	var req request.ExchangeVoucherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Redeem(ctx.Request.Context(), middleware.UserID(ctx), req.VoucherID)
	if err != nil {
		if errors.Is(err, service.ErrVoucherUnavailable) || errors.Is(err, service.ErrInsufficientPoints) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleExchangeVoucher -> h.svc.Redeem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ExchangeResponse{
		Success:         true,
		Code:            result.Record.Code,
		Voucher:         result.Voucher,
		RemainingPoints: result.RemainingPoints,
	})
}

// HandleRedemptionHistory godoc
// @Summary      List the authenticated user's redemptions, newest first
// @Tags         vouchers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RedemptionRecord
// @Failure      401  {object}  response.Err
// @Router       /vouchers/history/me [get]
func (h *VoucherHandler) HandleRedemptionHistory(ctx *gin.Context) {
	records, err := h.svc.History(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleRedemptionHistory -> h.svc.History -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleListBusinessVouchers godoc
// @Summary      List a business's vouchers
// @Description  Business accounts always get their own vouchers. Admins pass businessId.
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Param        businessId  query     int  false  "business user ID (admin only)"
// @Success      200         {array}   domain.Voucher
// @Router       /business/vouchers [get]
func (h *VoucherHandler) HandleListBusinessVouchers(ctx *gin.Context) {
	actor, errResp := getUserFromContext(ctx, h.users)
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	businessID, _ := strconv.ParseUint(ctx.Query("businessId"), 10, 32)

	vouchers, err := h.svc.ListByBusiness(ctx.Request.Context(), actor, uint(businessID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListBusinessVouchers -> h.svc.ListByBusiness -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vouchers)
}

// HandleListAllVouchers godoc
// @Summary      List every voucher regardless of status or stock
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Voucher
// @Router       /admin/vouchers [get]
func (h *VoucherHandler) HandleListAllVouchers(ctx *gin.Context) {
	vouchers, err := h.svc.ListAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllVouchers -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vouchers)
}

// HandleCreateVoucher godoc
// @Summary      Create a voucher
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateVoucherRequest  true  "request body"
// @Success      201      {object}  domain.Voucher
// @Failure      400      {object}  response.Err
// @Router       /business/vouchers [post]
func (h *VoucherHandler) HandleCreateVoucher(ctx *gin.Context) {
	actor, errResp := getUserFromContext(ctx, h.users)
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.CreateVoucherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	voucher, err := h.svc.CreateVoucher(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateVoucher -> h.svc.CreateVoucher -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, voucher)
}

// HandleUpdateVoucher godoc
// @Summary      Update a voucher
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                           true  "voucher ID"
// @Param        request  body      request.UpdateVoucherRequest  true  "request body"
// @Success      200      {object}  domain.Voucher
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /business/vouchers/{id} [put]
func (h *VoucherHandler) HandleUpdateVoucher(ctx *gin.Context) {
	actor, errResp := getUserFromContext(ctx, h.users)
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.UpdateVoucherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	voucher, err := h.svc.UpdateVoucher(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		h.renderVoucherErr(ctx, "v1.HandleUpdateVoucher -> h.svc.UpdateVoucher", id, err)
		return
	}

	ctx.JSON(http.StatusOK, voucher)
}

// HandleDeleteVoucher godoc
// @Summary      Delete a voucher
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "voucher ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /business/vouchers/{id} [delete]
func (h *VoucherHandler) HandleDeleteVoucher(ctx *gin.Context) {
	actor, errResp := getUserFromContext(ctx, h.users)
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.DeleteVoucher(ctx.Request.Context(), actor, id); err != nil {
		h.renderVoucherErr(ctx, "v1.HandleDeleteVoucher -> h.svc.DeleteVoucher", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Voucher deleted"})
}

func (h *VoucherHandler) renderVoucherErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrVoucherNotFound):
		response.RenderErr(ctx, response.ErrNotFound("voucher", "ID", id))
	case errors.Is(err, service.ErrNotVoucherOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

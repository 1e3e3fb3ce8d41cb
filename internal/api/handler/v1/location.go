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

type LocationService interface {
	ListLocations(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)
	GetLocation(ctx context.Context, id uint) (domain.Location, error)
	CreateLocation(ctx context.Context, actor domain.User, location domain.Location) (domain.Location, error)
	UpdateLocation(ctx context.Context, actor domain.User, id uint, update domain.LocationUpdate) (domain.Location, error)
	DeleteLocation(ctx context.Context, actor domain.User, id uint) (domain.Location, error)
	CheckIn(ctx context.Context, userID uint, qrCode string) (domain.CheckInResult, error)
}

type LocationHandler struct {
	svc   LocationService
	users UserGetter
}

func NewLocationHandler(svc LocationService, users UserGetter) *LocationHandler {
	return &LocationHandler{
		svc:   svc,
		users: users,
	}
}

// HandleListLocations godoc
// @Summary      List collection points
// @Tags         locations
// @Produce      json
// @Param        type    query     string  false  "location type"
// @Param        status  query     string  false  "active or deleted"
// @Success      200     {array}   domain.Location
// @Router       /locations [get]
func (h *LocationHandler) HandleListLocations(ctx *gin.Context) {
	filter := domain.LocationFilter{
		Type:   domain.LocationType(ctx.Query("type")),
		Status: domain.LocationStatus(ctx.Query("status")),
	}

	locations, err := h.svc.ListLocations(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListLocations -> h.svc.ListLocations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, locations)
}

// HandleGetLocation godoc
// @Summary      Get a collection point
// @Tags         locations
// @Produce      json
// @Param        id   path      int  true  "location ID"
// @Success      200  {object}  domain.Location
// @Failure      404  {object}  response.Err
// @Router       /locations/{id} [get]
func (h *LocationHandler) HandleGetLocation(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	location, err := h.svc.GetLocation(ctx.Request.Context(), id)
	if err != nil {
		h.renderLocationErr(ctx, "v1.HandleGetLocation -> h.svc.GetLocation", id, err)
		return
	}

	ctx.JSON(http.StatusOK, location)
}

// HandleCreateLocation godoc
// @Summary      Create a collection point with a fresh QR code
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateLocationRequest  true  "request body"
// @Success      201      {object}  domain.Location
// @Failure      400      {object}  response.Err
// @Router       /locations [post]
func (h *LocationHandler) HandleCreateLocation(ctx *gin.Context) {
	actor, errResp := getUserFromContext(ctx, h.users)
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.CreateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	location, err := h.svc.CreateLocation(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateLocation -> h.svc.CreateLocation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, location)
}

// HandleUpdateLocation godoc
// @Summary      Update a collection point
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                            true  "location ID"
// @Param        request  body      request.UpdateLocationRequest  true  "request body"
// @Success      200      {object}  domain.Location
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /locations/{id} [put]
func (h *LocationHandler) HandleUpdateLocation(ctx *gin.Context) {
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

	var req request.UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	location, err := h.svc.UpdateLocation(ctx.Request.Context(), actor, id, req.ToDomain())
	if err != nil {
		h.renderLocationErr(ctx, "v1.HandleUpdateLocation -> h.svc.UpdateLocation", id, err)
		return
	}

	ctx.JSON(http.StatusOK, location)
}

// HandleDeleteLocation godoc
// @Summary      Soft delete a collection point
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "location ID"
// @Success      200  {object}  domain.Location
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /locations/{id} [delete]
func (h *LocationHandler) HandleDeleteLocation(ctx *gin.Context) {
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

	location, err := h.svc.DeleteLocation(ctx.Request.Context(), actor, id)
	if err != nil {
		h.renderLocationErr(ctx, "v1.HandleDeleteLocation -> h.svc.DeleteLocation", id, err)
		return
	}

	ctx.JSON(http.StatusOK, location)
}

// HandleCheckIn godoc
// @Summary      Check in at a collection point by QR code
// @Description  Earns points on the first check-in of the day at each location.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CheckInRequest  true  "request body"
// @Success      200      {object}  response.CheckInResponse
// @Failure      400      {object}  response.AlreadyCheckedInResponse
// @Failure      404      {object}  response.Err
// @Router       /locations/check-in [post]
func (h *LocationHandler) HandleCheckIn(ctx *gin.Context) {
	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.CheckIn(ctx.Request.Context(), middleware.UserID(ctx), req.QRCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			ctx.AbortWithStatusJSON(http.StatusBadRequest, response.AlreadyCheckedInResponse{
				Status:           http.StatusBadRequest,
				Message:          "You have already checked in at this location today",
				AlreadyCheckedIn: true,
				Location:         result.Location,
			})
		case errors.Is(err, service.ErrInvalidLocationQR):
			response.RenderErr(ctx, response.ErrNotFound("location", "qrCode", req.QRCode))
		default:
			err = fmt.Errorf("v1.HandleCheckIn -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.CheckInResponse{
		Message:      "Check-in successful",
		PointsEarned: result.CheckIn.PointsEarned,
		TotalPoints:  result.TotalPoints,
		Location:     result.Location,
	})
}

func (h *LocationHandler) renderLocationErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("location", "ID", id))
	case errors.Is(err, service.ErrNotLocationOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

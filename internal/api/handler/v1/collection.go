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

type CollectionService interface {
	Record(ctx context.Context, collection domain.Collection) (domain.Collection, int, error)
	List(ctx context.Context, userID uint) ([]domain.Collection, error)
	Leaderboard(ctx context.Context, r domain.LeaderboardRange) (domain.Leaderboard, error)
}

type CollectionHandler struct {
	svc CollectionService
}

func NewCollectionHandler(svc CollectionService) *CollectionHandler {
	return &CollectionHandler{
		svc: svc,
	}
}

// HandleCreateCollection godoc
// @Summary      Record collected pins and credit their points
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateCollectionRequest  true  "request body"
// @Success      201      {object}  response.CollectionResponse
// @Failure      400      {object}  response.Err
// @Router       /collections [post]
func (h *CollectionHandler) HandleCreateCollection(ctx *gin.Context) {
	var req request.CreateCollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	collection, total, err := h.svc.Record(ctx.Request.Context(), req.ToDomain(middleware.UserID(ctx)))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateCollection -> h.svc.Record -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.CollectionResponse{
		Collection:  collection,
		TotalPoints: total,
	})
}

// HandleListCollections godoc
// @Summary      List the authenticated user's collections
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Collection
// @Router       /collections [get]
func (h *CollectionHandler) HandleListCollections(ctx *gin.Context) {
	collections, err := h.svc.List(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleListCollections -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, collections)
}

// HandleLeaderboard godoc
// @Summary      Rank citizens by pins collected and by points
// @Tags         leaderboard
// @Produce      json
// @Param        range  query     string  false  "week, month or all"  default(all)
// @Success      200    {object}  domain.Leaderboard
// @Failure      400    {object}  response.Err
// @Router       /leaderboard [get]
func (h *CollectionHandler) HandleLeaderboard(ctx *gin.Context) {
	r := domain.LeaderboardRange(ctx.DefaultQuery("range", string(domain.RangeAll)))

	board, err := h.svc.Leaderboard(ctx.Request.Context(), r)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleLeaderboard -> h.svc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, board)
}

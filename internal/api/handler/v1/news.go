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

type NewsService interface {
	ListNews(ctx context.Context) ([]domain.News, error)
	GetNews(ctx context.Context, id uint) (domain.News, error)
	CreateNews(ctx context.Context, news domain.News) (domain.News, error)
	UpdateNews(ctx context.Context, id uint, update domain.NewsUpdate) (domain.News, error)
	DeleteNews(ctx context.Context, id uint) error
}

type NewsHandler struct {
	svc NewsService
}

func NewNewsHandler(svc NewsService) *NewsHandler {
	return &NewsHandler{
		svc: svc,
	}
}

// HandleListNews godoc
// @Summary      List news, newest first
// @Tags         news
// @Produce      json
// @Success      200  {array}   domain.News
// @Router       /news [get]
func (h *NewsHandler) HandleListNews(ctx *gin.Context) {
	news, err := h.svc.ListNews(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListNews -> h.svc.ListNews -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, news)
}

// HandleGetNews godoc
// @Summary      Get a news article
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "news ID"
// @Success      200  {object}  domain.News
// @Failure      404  {object}  response.Err
// @Router       /news/{id} [get]
func (h *NewsHandler) HandleGetNews(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	news, err := h.svc.GetNews(ctx.Request.Context(), id)
	if err != nil {
		h.renderNewsErr(ctx, "v1.HandleGetNews -> h.svc.GetNews", id, err)
		return
	}

	ctx.JSON(http.StatusOK, news)
}

// HandleCreateNews godoc
// @Summary      Publish a news article
// @Description  Confirmed newsletter subscribers are emailed in the background.
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateNewsRequest  true  "request body"
// @Success      201      {object}  domain.News
// @Failure      400      {object}  response.Err
// @Router       /news [post]
func (h *NewsHandler) HandleCreateNews(ctx *gin.Context) {
	var req request.CreateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	news, err := h.svc.CreateNews(ctx.Request.Context(), req.ToDomain(middleware.UserID(ctx)))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateNews -> h.svc.CreateNews -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, news)
}

// HandleUpdateNews godoc
// @Summary      Update a news article
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                        true  "news ID"
// @Param        request  body      request.UpdateNewsRequest  true  "request body"
// @Success      200      {object}  domain.News
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /news/{id} [put]
func (h *NewsHandler) HandleUpdateNews(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.UpdateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	news, err := h.svc.UpdateNews(ctx.Request.Context(), id, req.ToDomain())
	if err != nil {
		h.renderNewsErr(ctx, "v1.HandleUpdateNews -> h.svc.UpdateNews", id, err)
		return
	}

	ctx.JSON(http.StatusOK, news)
}

// HandleDeleteNews godoc
// @Summary      Delete a news article
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "news ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.Err
// @Router       /news/{id} [delete]
func (h *NewsHandler) HandleDeleteNews(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.DeleteNews(ctx.Request.Context(), id); err != nil {
		h.renderNewsErr(ctx, "v1.HandleDeleteNews -> h.svc.DeleteNews", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "News deleted"})
}

func (h *NewsHandler) renderNewsErr(ctx *gin.Context, op string, id uint, err error) {
	if errors.Is(err, service.ErrNewsNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("news", "ID", id))
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

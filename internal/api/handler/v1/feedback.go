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

type FeedbackService interface {
	Submit(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	Get(ctx context.Context, id uint) (domain.Feedback, error)
	List(ctx context.Context, userID uint, page domain.Page) ([]domain.Feedback, int64, error)
	Update(ctx context.Context, id uint, message string) (domain.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type FeedbackHandler struct {
	svc FeedbackService
}

func NewFeedbackHandler(svc FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		svc: svc,
	}
}

// HandleSubmitFeedback godoc
// @Summary      Submit feedback, anonymously or signed in
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        request  body      request.FeedbackRequest  true  "request body"
// @Success      201      {object}  domain.Feedback
// @Failure      400      {object}  response.Err
// @Router       /feedback [post]
func (h *FeedbackHandler) HandleSubmitFeedback(ctx *gin.Context) {
	var req request.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	feedback := domain.Feedback{Message: req.Message}
	if userID := middleware.UserID(ctx); userID != 0 {
		feedback.UserID = &userID
	}

	created, err := h.svc.Submit(ctx.Request.Context(), feedback)
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitFeedback -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListMyFeedback godoc
// @Summary      List the authenticated user's feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.PageResponse
// @Router       /feedback/me [get]
func (h *FeedbackHandler) HandleListMyFeedback(ctx *gin.Context) {
	h.list(ctx, middleware.UserID(ctx))
}

// HandleListFeedback godoc
// @Summary      List all feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.PageResponse
// @Router       /feedback [get]
func (h *FeedbackHandler) HandleListFeedback(ctx *gin.Context) {
	h.list(ctx, 0)
}

func (h *FeedbackHandler) list(ctx *gin.Context, userID uint) {
	page := pageFromQuery(ctx)

	feedback, total, err := h.svc.List(ctx.Request.Context(), userID, page)
	if err != nil {
		err = fmt.Errorf("v1.FeedbackHandler.list -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(feedback, total, page))
}

// HandleGetFeedback godoc
// @Summary      Get one feedback entry
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "feedback ID"
// @Success      200  {object}  domain.Feedback
// @Failure      404  {object}  response.Err
// @Router       /feedback/{id} [get]
func (h *FeedbackHandler) HandleGetFeedback(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	feedback, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		h.renderFeedbackErr(ctx, "v1.HandleGetFeedback -> h.svc.Get", id, err)
		return
	}

	ctx.JSON(http.StatusOK, feedback)
}

// HandleUpdateFeedback godoc
// @Summary      Edit a feedback message
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                      true  "feedback ID"
// @Param        request  body      request.FeedbackRequest  true  "request body"
// @Success      200      {object}  domain.Feedback
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /feedback/{id} [put]
func (h *FeedbackHandler) HandleUpdateFeedback(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	feedback, err := h.svc.Update(ctx.Request.Context(), id, req.Message)
	if err != nil {
		h.renderFeedbackErr(ctx, "v1.HandleUpdateFeedback -> h.svc.Update", id, err)
		return
	}

	ctx.JSON(http.StatusOK, feedback)
}

// HandleDeleteFeedback godoc
// @Summary      Delete a feedback entry
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "feedback ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.Err
// @Router       /feedback/{id} [delete]
func (h *FeedbackHandler) HandleDeleteFeedback(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		h.renderFeedbackErr(ctx, "v1.HandleDeleteFeedback -> h.svc.Delete", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Feedback deleted"})
}

func (h *FeedbackHandler) renderFeedbackErr(ctx *gin.Context, op string, id uint, err error) {
	if errors.Is(err, service.ErrFeedbackNotFound) {
		response.RenderErr(ctx, response.ErrNotFound("feedback", "ID", id))
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
}

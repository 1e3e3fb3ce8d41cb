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

type SubscriptionService interface {
	Subscribe(ctx context.Context, email string) (domain.Subscriber, bool, error)
	Confirm(ctx context.Context, token string) (domain.Subscriber, error)
	List(ctx context.Context, email string, page domain.Page) ([]domain.Subscriber, int64, error)
	Delete(ctx context.Context, id uint) error
}

type SubscriptionHandler struct {
	svc         SubscriptionService
	frontendURL string
}

func NewSubscriptionHandler(svc SubscriptionService, frontendURL string) *SubscriptionHandler {
	return &SubscriptionHandler{
		svc:         svc,
		frontendURL: frontendURL,
	}
}

// HandleSubscribe godoc
// @Summary      Subscribe an email to the newsletter
// @Description  Sends a confirmation link valid for one hour.
// @Tags         subscribe
// @Accept       json
// @Produce      json
// @Param        request  body      request.SubscribeRequest  true  "request body"
// @Success      201      {object}  response.SubscribeResponse
// @Failure      400      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /subscribe [post]
func (h *SubscriptionHandler) HandleSubscribe(ctx *gin.Context) {
	var req request.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	subscriber, sent, err := h.svc.Subscribe(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubscribed) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleSubscribe -> h.svc.Subscribe -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	message := "Please check your email to confirm the subscription"
	if !sent {
		message = "Subscribed, but the confirmation email could not be sent. Please try again later"
	}

	ctx.JSON(http.StatusCreated, response.SubscribeResponse{
		Message:    message,
		Subscriber: subscriber,
	})
}

// HandleConfirmSubscription godoc
// @Summary      Confirm a newsletter subscription
// @Description  Redirects to the site on success.
// @Tags         subscribe
// @Param        token  query     string  false  "confirmation token"
// @Success      302    {string}  string  "Found"
// @Failure      400    {object}  response.Err
// @Router       /subscribe/confirm [get]
func (h *SubscriptionHandler) HandleConfirmSubscription(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		token = ctx.Query("token")
	}
	if token == "" {
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidConfirmToken))
		return
	}

	if _, err := h.svc.Confirm(ctx.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidConfirmToken) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleConfirmSubscription -> h.svc.Confirm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Redirect(http.StatusFound, h.frontendURL+"/?subscribed=1")
}

// HandleListSubscribers godoc
// @Summary      List newsletter subscribers
// @Tags         subscribe
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "email search"
// @Param        page   query     int     false  "page number"
// @Param        limit  query     int     false  "page size"
// @Success      200    {object}  response.PageResponse
// @Router       /subscribe [get]
func (h *SubscriptionHandler) HandleListSubscribers(ctx *gin.Context) {
	page := pageFromQuery(ctx)

	subscribers, total, err := h.svc.List(ctx.Request.Context(), ctx.Query("email"), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSubscribers -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(subscribers, total, page))
}

// HandleDeleteSubscriber godoc
// @Summary      Remove a newsletter subscriber
// @Tags         subscribe
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "subscriber ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.Err
// @Router       /subscribe/{id} [delete]
func (h *SubscriptionHandler) HandleDeleteSubscriber(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("subscriber", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteSubscriber -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Subscriber removed"})
}

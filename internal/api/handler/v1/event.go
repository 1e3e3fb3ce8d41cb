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

type EventService interface {
	ListEvents(ctx context.Context, search string, page domain.Page) ([]domain.Event, int64, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	Register(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
	CancelRegistration(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error)
	CancelRegistrationByID(ctx context.Context, id, userID uint) (domain.EventRegistration, error)
	IsRegistered(ctx context.Context, eventID, userID uint) (bool, error)
	ListEventRegistrations(ctx context.Context, eventID uint, page domain.Page) ([]domain.EventRegistration, int64, error)
	ListUserRegistrations(ctx context.Context, userID uint, page domain.Page) ([]domain.EventRegistration, int64, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      List events by date
// @Tags         events
// @Produce      json
// @Param        search  query     string  false  "title search"
// @Param        page    query     int     false  "page number"
// @Param        limit   query     int     false  "page size"
// @Success      200     {object}  response.PageResponse
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	page := pageFromQuery(ctx)

	events, total, err := h.svc.ListEvents(ctx.Request.Context(), ctx.Query("search"), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(events, total, page))
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  response.Err
// @Router       /events/{id} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleGetEvent -> h.svc.GetEvent", id, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), req.ToDomain(middleware.UserID(ctx)))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                         true  "event ID"
// @Param        request  body      request.UpdateEventRequest  true  "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /events/{id} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), id, req.ToDomain())
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleUpdateEvent -> h.svc.UpdateEvent", id, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "event ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.Err
// @Router       /events/{id} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), id); err != nil {
		h.renderEventErr(ctx, "v1.HandleDeleteEvent -> h.svc.DeleteEvent", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Event deleted"})
}

// HandleRegisterForEvent godoc
// @Summary      Register the authenticated user for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "event ID"
// @Success      201  {object}  domain.EventRegistration
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{id}/register [post]
func (h *EventHandler) HandleRegisterForEvent(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), id, middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyRegistered))
			return
		}

		h.renderEventErr(ctx, "v1.HandleRegisterForEvent -> h.svc.Register", id, err)
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleCancelEventRegistration godoc
// @Summary      Cancel the authenticated user's registration for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "event ID"
// @Success      200  {object}  domain.EventRegistration
// @Failure      404  {object}  response.Err
// @Router       /events/{id}/cancel [post]
func (h *EventHandler) HandleCancelEventRegistration(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	registration, err := h.svc.CancelRegistration(ctx.Request.Context(), id, middleware.UserID(ctx))
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleCancelEventRegistration -> h.svc.CancelRegistration", id, err)
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleCheckRegistration godoc
// @Summary      Report whether the authenticated user is registered for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "event ID"
// @Success      200  {object}  response.RegistrationCheckResponse
// @Router       /events/{id}/check-registration [get]
func (h *EventHandler) HandleCheckRegistration(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	registered, err := h.svc.IsRegistered(ctx.Request.Context(), id, middleware.UserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckRegistration -> h.svc.IsRegistered -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.RegistrationCheckResponse{Registered: registered})
}

// HandleListEventRegistrations godoc
// @Summary      List an event's registrations
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int  true   "event ID"
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.PageResponse
// @Failure      404    {object}  response.Err
// @Router       /events/{id}/registrations [get]
func (h *EventHandler) HandleListEventRegistrations(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	page := pageFromQuery(ctx)

	registrations, total, err := h.svc.ListEventRegistrations(ctx.Request.Context(), id, page)
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleListEventRegistrations -> h.svc.ListEventRegistrations", id, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(registrations, total, page))
}

// HandleListMyRegistrations godoc
// @Summary      List the authenticated user's event registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "page number"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  response.PageResponse
// @Router       /registrations/me [get]
func (h *EventHandler) HandleListMyRegistrations(ctx *gin.Context) {
	page := pageFromQuery(ctx)

	registrations, total, err := h.svc.ListUserRegistrations(ctx.Request.Context(), middleware.UserID(ctx), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyRegistrations -> h.svc.ListUserRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPage(registrations, total, page))
}

// HandleCreateRegistration godoc
// @Summary      Register for an event by body
// @Description  An existing active registration is returned as is.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.RegistrationRequest  true  "request body"
// @Success      201      {object}  domain.EventRegistration
// @Success      200      {object}  domain.EventRegistration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /registrations [post]
func (h *EventHandler) HandleCreateRegistration(ctx *gin.Context) {
	var req request.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), req.EventID, middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			ctx.JSON(http.StatusOK, registration)
			return
		}

		h.renderEventErr(ctx, "v1.HandleCreateRegistration -> h.svc.Register", req.EventID, err)
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleCancelRegistrationByBody godoc
// @Summary      Cancel a registration by event id
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      request.RegistrationRequest  true  "request body"
// @Success      200      {object}  domain.EventRegistration
// @Failure      404      {object}  response.Err
// @Router       /registrations/cancel [post]
func (h *EventHandler) HandleCancelRegistrationByBody(ctx *gin.Context) {
	var req request.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.svc.CancelRegistration(ctx.Request.Context(), req.EventID, middleware.UserID(ctx))
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleCancelRegistrationByBody -> h.svc.CancelRegistration", req.EventID, err)
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

// HandleDeleteRegistration godoc
// @Summary      Cancel one of the authenticated user's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "registration ID"
// @Success      200  {object}  domain.EventRegistration
// @Failure      404  {object}  response.Err
// @Router       /registrations/{id} [delete]
func (h *EventHandler) HandleDeleteRegistration(ctx *gin.Context) {
	id, errResp := parseID(ctx, "id")
	if errResp != nil {
		response.RenderErr(ctx, errResp)
		return
	}

	registration, err := h.svc.CancelRegistrationByID(ctx.Request.Context(), id, middleware.UserID(ctx))
	if err != nil {
		h.renderEventErr(ctx, "v1.HandleDeleteRegistration -> h.svc.CancelRegistrationByID", id, err)
		return
	}

	ctx.JSON(http.StatusOK, registration)
}

func (h *EventHandler) renderEventErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", id))
	case errors.Is(err, service.ErrRegistrationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecell/portal-api/internal/api/handler/v1/request"
	"github.com/ecell/portal-api/internal/api/handler/v1/response"
	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/service"
)

type EventService interface {
	ListEvents(ctx context.Context, status string, limit int) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event, creatorID uint) (domain.Event, error)
	UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	ListRegistrants(ctx context.Context, id uint) ([]domain.User, error)
}

type RegistrationService interface {
	Register(ctx context.Context, userID, eventID uint) error
	Unregister(ctx context.Context, userID, eventID uint) error
}

type EventHandler struct {
	svc           EventService
	registrations RegistrationService
}

func NewEventHandler(svc EventService, registrations RegistrationService) *EventHandler {
	return &EventHandler{
		svc:           svc,
		registrations: registrations,
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Defaults to upcoming events dated today or later, by ascending date.
// @Tags         events
// @Produce      json
// @Param        status   query     string  false  "event status"  Enums(upcoming, ongoing, completed, cancelled)
// @Param        limit    query     int     false  "maximum number of events"
// @Success      200      {object}   response.EventList
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	status := ctx.Query("status")
	if status != "" && !isEventStatus(status) {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid status %q", status)))
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit %q", raw)))
			return
		}
		limit = n
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), status, limit)
	if err != nil {
		renderUnexpected(ctx, fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventList(events))
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {object}   response.Event
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseID(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEvent(event))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   response.Event
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	creatorID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := req.ToDomain()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event, creatorID)
	if err != nil {
		renderUnexpected(ctx, fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewEvent(created))
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Only the provided fields change. The roster is never edited here.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.UpdateEventRequest true "request body"
// @Success      200      {object}   response.Event
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	eventID, err := parseID(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateEventRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	update, err := req.ToDomain()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), eventID, update)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEvent(event))
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  The event's registrations are removed with it.
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	eventID, err := parseID(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Event deleted successfully"})
}

// HandleListRegistrations godoc
// @Summary      List the users registered for an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {array}    domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/registrations [get]
// @Security BearerAuth
func (h *EventHandler) HandleListRegistrations(ctx *gin.Context) {
	eventID, err := parseID(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	users, err := h.svc.ListRegistrants(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleListRegistrations -> h.svc.ListRegistrants -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleRegister godoc
// @Summary      Register the caller for an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/register [post]
// @Security BearerAuth
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	eventID, err := parseID(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.registrations.Register(ctx.Request.Context(), userID, eventID); err != nil {
		renderRegistrationErr(ctx, "v1.HandleRegister -> h.registrations.Register", userID, eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Successfully registered for event"})
}

// HandleUnregister godoc
// @Summary      Cancel the caller's registration for an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/register [delete]
// @Security BearerAuth
func (h *EventHandler) HandleUnregister(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	eventID, err := parseID(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.registrations.Unregister(ctx.Request.Context(), userID, eventID); err != nil {
		renderRegistrationErr(ctx, "v1.HandleUnregister -> h.registrations.Unregister", userID, eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Successfully unregistered from event"})
}

func renderRegistrationErr(ctx *gin.Context, op string, userID, eventID uint, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
	case errors.Is(err, service.ErrAlreadyRegistered):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrAlreadyRegistered))
	case errors.Is(err, service.ErrEventFull):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventFull))
	case errors.Is(err, service.ErrNotRegistered):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotRegistered))
	case errors.Is(err, service.ErrWriteConflict):
		response.RenderErr(ctx, response.ErrConflict(service.ErrWriteConflict))
	default:
		renderUnexpected(ctx, fmt.Errorf("%s -> %w", op, err))
	}
}

func isEventStatus(status string) bool {
	for _, s := range domain.EventStatuses {
		if s == status {
			return true
		}
	}

	return false
}

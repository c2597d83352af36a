package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecell/portal-api/internal/api/handler/v1/request"
	"github.com/ecell/portal-api/internal/api/handler/v1/response"
	"github.com/ecell/portal-api/internal/domain"
	"github.com/ecell/portal-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (domain.User, error)
	UpdateRole(ctx context.Context, id uint, role string) (domain.User, error)
	GetRegisteredEvents(ctx context.Context, id uint) ([]domain.Event, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetProfile godoc
// @Summary      Get the caller's profile
// @Description  The profile lists the ids of the events the caller joined.
// @Tags         users
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/profile [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	h.renderUser(ctx, userID)
}

// HandleUpdateProfile godoc
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/profile [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateProfile(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleGetProfileEvents godoc
// @Summary      List the events the caller joined
// @Tags         users
// @Produce      json
// @Success      200      {object}   response.EventList
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/profile/events [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetProfileEvents(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	events, err := h.svc.GetRegisteredEvents(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleGetProfileEvents -> h.svc.GetRegisteredEvents -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventList(events))
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := parseID(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	h.renderUser(ctx, userID)
}

// HandleUpdateRole godoc
// @Summary      Change the role of a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Param        request   body      request.UpdateRoleRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/{userID}/role [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateRole(ctx *gin.Context) {
	userID, err := parseID(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateRoleRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateRole(ctx.Request.Context(), userID, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleUpdateRole -> h.svc.UpdateRole -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *UserHandler) renderUser(ctx *gin.Context, userID uint) {
	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

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

type AuthService interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}

type TokenIssuer interface {
	Issue(userID uint, role, userAgent string) (string, error)
}

type AuthHandler struct {
	svc    AuthService
	tokens TokenIssuer
}

func NewAuthHandler(svc AuthService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		tokens: tokens,
	}
}

// HandleSignup godoc
// @Summary      Signup a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Signup(ctx.Request.Context(), domain.User{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		RollNumber: req.RollNumber,
		Branch:     req.Branch,
		Year:       req.Year,
		Phone:      req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserExists))
			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role, ctx.Request.UserAgent())
	if err != nil {
		renderUnexpected(ctx, fmt.Errorf("v1.HandleSignup -> h.tokens.Issue -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		renderUnexpected(ctx, fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err))

		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role, ctx.Request.UserAgent())
	if err != nil {
		renderUnexpected(ctx, fmt.Errorf("v1.HandleLogin -> h.tokens.Issue -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

// HandleChangePassword godoc
// @Summary      Change the caller's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /users/profile/password [put]
// @Security BearerAuth
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.ChangePassword(ctx.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("current password is incorrect")))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
		default:
			renderUnexpected(ctx, fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Password updated successfully"})
}

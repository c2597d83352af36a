package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecell/portal-api/internal/api/handler/v1/response"
	"github.com/ecell/portal-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

var (
	errMissingToken      = errors.New("authorization header with a bearer token is required")
	errUserAgentMismatch = errors.New("token was issued to a different client")
)

type TokenVerifier interface {
	Verify(token string) (*jwthelper.Claims, error)
}

type Authenticator struct {
	verifier TokenVerifier
}

func NewAuthenticator(verifier TokenVerifier) *Authenticator {
	return &Authenticator{
		verifier: verifier,
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// caller's id and role in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.RenderErr(ctx, response.ErrUnauthenticated(errMissingToken))
			return
		}

		claims, err := a.verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, jwthelper.ErrTokenExpired) {
				response.RenderErr(ctx, response.ErrUnauthenticated(jwthelper.ErrTokenExpired))
				return
			}

			response.RenderErr(ctx, response.ErrUnauthenticated(jwthelper.ErrTokenInvalid))
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthenticated(errUserAgentMismatch))
			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyRole, claims.Role)

		ctx.Next()
	}
}

// Caller returns the identity stored by VerifyJWT.
func Caller(ctx *gin.Context) (userID uint, role string, ok bool) {
	userID = ctx.GetUint(ContextKeyUserID)
	role = ctx.GetString(ContextKeyRole)

	return userID, role, userID != 0
}

package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecell/portal-api/internal/api/handler/v1/response"
)

var (
	errNoCaller       = errors.New("no authenticated caller")
	errRoleNotAllowed = errors.New("your role is not allowed to perform this action")
	errNotOwnResource = errors.New("you can only access your own account")
)

// Rule decides whether the caller may run the route. A nil error allows it.
type Rule func(ctx *gin.Context, userID uint, role string) error

// Authorize runs rule after VerifyJWT and answers 403 when it fails.
func Authorize(rule Rule) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, role, ok := Caller(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthenticated(errNoCaller))
			return
		}

		if err := rule(ctx, userID, role); err != nil {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		ctx.Next()
	}
}

func RequireRole(roles ...string) Rule {
	return func(_ *gin.Context, _ uint, role string) error {
		if hasRole(role, roles) {
			return nil
		}

		return errRoleNotAllowed
	}
}

// SelfOrRole allows callers whose id equals the path parameter param, and
// callers holding one of roles.
func SelfOrRole(param string, roles ...string) Rule {
	return func(ctx *gin.Context, userID uint, role string) error {
		if hasRole(role, roles) {
			return nil
		}

		id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
		if err == nil && uint(id) == userID {
			return nil
		}

		return errNotOwnResource
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}

	return false
}

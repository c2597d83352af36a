package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecell/portal-api/internal/api/handler/v1/response"
	"github.com/ecell/portal-api/internal/api/middleware"
)

var errNoCaller = errors.New("no authenticated user in request")

func parseID(ctx *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", param, ctx.Param(param))
	}

	return uint(id), nil
}

// callerID reads the id VerifyJWT stored. It renders 401 and returns false
// when the route was mounted without authentication.
func callerID(ctx *gin.Context) (uint, bool) {
	userID, _, ok := middleware.Caller(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(errNoCaller))
		return 0, false
	}

	return userID, true
}

// renderUnexpected answers errors no handler rule matched.
func renderUnexpected(ctx *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		response.RenderErr(ctx, response.ErrRequestTimeout(err))
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(err))
}

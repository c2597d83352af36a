package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *Err) Error() string {
	return e.ErrorText
}

// RenderErr aborts the request with err. Server errors are logged with the
// underlying cause and answered with a generic message.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("requestID", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err),
		)
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Bad request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	err := fmt.Errorf("%s with %s %v not found", resource, key, value)

	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict, please retry.",
		ErrorText:      err.Error(),
	}
}

func ErrUnauthenticated(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Unauthenticated.",
		ErrorText:      err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		StatusText:     "Invalid email or password.",
		ErrorText:      "invalid email or password",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
		StatusText:     "Permission denied.",
		ErrorText:      err.Error(),
	}
}

func ErrRequestTimeout(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusGatewayTimeout,
		StatusText:     "Request timed out.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
	}
}

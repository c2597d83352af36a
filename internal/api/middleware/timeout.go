package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout bounds the request context. Handlers pass it down to the store,
// so a slow query is cancelled once the deadline passes.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if d <= 0 {
			ctx.Next()
			return
		}

		timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), d)
		defer cancel()

		ctx.Request = ctx.Request.WithContext(timeoutCtx)
		ctx.Next()
	}
}

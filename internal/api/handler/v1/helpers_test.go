package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ecell/portal-api/internal/api/middleware"
)

const testUserAgent = "portal-test"

func init() {
	gin.SetMode(gin.TestMode)
}

// asCaller stands in for VerifyJWT.
func asCaller(userID uint, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
		ctx.Set(middleware.ContextKeyRole, role)
		ctx.Next()
	}
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", testUserAgent)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecell/portal-api/internal/pkg/jwthelper"
)

const (
	testKey       = "0123456789abcdef0123456789abcdef"
	testUserAgent = "portal-test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRequest(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("User-Agent", testUserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestAuthenticator_VerifyJWT(t *testing.T) {
	issuer := jwthelper.NewIssuer(testKey, time.Hour)
	expired := jwthelper.NewIssuer(testKey, -time.Minute)

	router := gin.New()
	router.GET("/me", NewAuthenticator(issuer).VerifyJWT(), func(ctx *gin.Context) {
		userID, role, ok := Caller(ctx)
		require.True(t, ok)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})

	valid, err := issuer.Issue(7, "member", testUserAgent)
	require.NoError(t, err)
	otherClient, err := issuer.Issue(7, "member", "another-agent")
	require.NoError(t, err)
	stale, err := expired.Issue(7, "member", testUserAgent)
	require.NoError(t, err)

	rec := serve(router, newRequest(http.MethodGet, "/me", valid))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"member"}`, rec.Body.String())

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "missing header", req: newRequest(http.MethodGet, "/me", "")},
		{name: "garbage token", req: newRequest(http.MethodGet, "/me", "not-a-jwt")},
		{name: "expired token", req: newRequest(http.MethodGet, "/me", stale)},
		{name: "different user agent", req: newRequest(http.MethodGet, "/me", otherClient)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(router, tt.req).Code)
		})
	}

	basic := newRequest(http.MethodGet, "/me", "")
	basic.Header.Set("Authorization", "Basic "+valid)
	assert.Equal(t, http.StatusUnauthorized, serve(router, basic).Code)
}

func TestAuthorize(t *testing.T) {
	as := func(userID uint, role string) gin.HandlerFunc {
		return func(ctx *gin.Context) {
			ctx.Set(ContextKeyUserID, userID)
			ctx.Set(ContextKeyRole, role)
			ctx.Next()
		}
	}
	ok := func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) }

	tests := []struct {
		name       string
		caller     gin.HandlerFunc
		rule       Rule
		path       string
		wantStatus int
	}{
		{name: "admin passes role rule", caller: as(1, "admin"), rule: RequireRole("admin"), path: "/users/5", wantStatus: http.StatusNoContent},
		{name: "member fails role rule", caller: as(1, "member"), rule: RequireRole("admin"), path: "/users/5", wantStatus: http.StatusForbidden},
		{name: "self passes ownership rule", caller: as(5, "member"), rule: SelfOrRole("userID", "admin"), path: "/users/5", wantStatus: http.StatusNoContent},
		{name: "other member fails ownership rule", caller: as(6, "member"), rule: SelfOrRole("userID", "admin"), path: "/users/5", wantStatus: http.StatusForbidden},
		{name: "admin passes ownership rule", caller: as(6, "admin"), rule: SelfOrRole("userID", "admin"), path: "/users/5", wantStatus: http.StatusNoContent},
		{name: "no caller", caller: func(ctx *gin.Context) { ctx.Next() }, rule: RequireRole("admin"), path: "/users/5", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/users/:userID", tt.caller, Authorize(tt.rule), ok)

			rec := serve(router, newRequest(http.MethodGet, tt.path, ""))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTimeout(t *testing.T) {
	router := gin.New()
	router.GET("/slow", Timeout(20*time.Millisecond), func(ctx *gin.Context) {
		deadline, ok := ctx.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(20*time.Millisecond), deadline, time.Second)

		<-ctx.Request.Context().Done()
		assert.ErrorIs(t, ctx.Request.Context().Err(), context.DeadlineExceeded)
		ctx.Status(http.StatusGatewayTimeout)
	})

	assert.Equal(t, http.StatusGatewayTimeout, serve(router, newRequest(http.MethodGet, "/slow", "")).Code)
}

func TestConfigCORS(t *testing.T) {
	router := gin.New()
	router.Use(ConfigCORS([]string{"https://ecell.example.com"}))
	router.GET("/ping", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := newRequest(http.MethodGet, "/ping", "")
	req.Header.Set("Origin", "https://ecell.example.com")
	rec := serve(router, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://ecell.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = newRequest(http.MethodGet, "/ping", "")
	req.Header.Set("Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, serve(router, req).Code)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/adapter/ratelimit"
	"github.com/martijn/lexdesk/internal/core/domain"
	"github.com/martijn/lexdesk/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()), ErrorHandlerMiddleware())
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/x", handlers...)
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService(nil, nil, nil, "secret", "HS256")
	router := newRouter(AuthMiddleware(auth), RequireScope("agenda"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(router, req).Code)

	req.Header.Set(AuthHeaderKey, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, serve(router, req).Code)

	req.Header.Set(AuthHeaderKey, "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, serve(router, req).Code)
}

func TestRequireScopeAndAdmin(t *testing.T) {
	tests := []struct {
		name    string
		session *service.Session
		scope   int
		admin   int
	}{
		{"anonymous", nil, http.StatusUnauthorized, http.StatusUnauthorized},
		{"admin user", &service.Session{SubjectType: service.SubjectUser, Role: domain.RoleAdmin, Scopes: []string{service.ScopeAll}}, http.StatusOK, http.StatusOK},
		{"member", &service.Session{SubjectType: service.SubjectUser, Role: domain.RoleMember, Scopes: []string{service.ScopeAll}}, http.StatusOK, http.StatusForbidden},
		{"scoped client", &service.Session{SubjectType: service.SubjectClient, Role: domain.RoleMember, Scopes: []string{"clientes"}}, http.StatusForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inject := func(c *gin.Context) {
				if tt.session != nil {
					SetSession(c, tt.session)
				}
			}

			w := serve(newRouter(inject, RequireScope("agenda")), httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.scope, w.Code)

			w = serve(newRouter(inject, RequireAdmin()), httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.admin, w.Code)
		})
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{}, assert.AnError
}

func TestRateLimit(t *testing.T) {
	router := newRouter(RateLimit(ratelimit.NewMemoryLimiter(2, time.Minute), "login"))

	for i := 0; i < 2; i++ {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := serve(router, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Limiter outages do not lock users out
	open := newRouter(RateLimit(failingLimiter{}, "login"))
	assert.Equal(t, http.StatusOK, serve(open, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware([]string{"https://app.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := serve(router, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandlerMiddleware_RecoversPanics(t *testing.T) {
	router := newRouter(func(c *gin.Context) { panic("boom") })
	w := serve(router, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"gym-backend/internal/auth"
	"gym-backend/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Burst of 2 is allowed, the third request is rejected.
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestCacheServesSecondRequest(t *testing.T) {
	hits := 0
	r := gin.New()
	store := cache.New(time.Minute, time.Minute)
	r.Use(Cache(store, time.Minute))
	r.GET("/activities", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"hits":1}`, w.Body.String())
	}
	assert.Equal(t, 1, hits)
}

func TestCacheSkipsAuthenticatedRequests(t *testing.T) {
	hits := 0
	r := gin.New()
	store := cache.New(time.Minute, time.Minute)
	r.Use(Cache(store, time.Minute))
	r.GET("/appointments", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(w, req)
	}
	assert.Equal(t, 2, hits)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A client-supplied ID is preserved.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	r := gin.New()
	r.Use(Auth(secret))
	r.GET("/me", func(c *gin.Context) {
		claims := ClaimsFrom(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})
	r.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := auth.IssueToken(secret, time.Hour, 1, 2, model.RoleMember)
	require.NoError(t, err)

	do := func(path, bearer string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do("/me", ""))
	assert.Equal(t, http.StatusUnauthorized, do("/me", "not-a-token"))
	assert.Equal(t, http.StatusOK, do("/me", token))

	// A member token cannot reach admin-only routes.
	assert.Equal(t, http.StatusForbidden, do("/admin", token))

	adminToken, err := auth.IssueToken(secret, time.Hour, 1, 0, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do("/admin", adminToken))
}

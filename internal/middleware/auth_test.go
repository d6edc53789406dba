package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workcafe/workcafe-api/internal/config"
	"github.com/workcafe/workcafe-api/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/private", RequireAuth(cfg), func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	})
	r.GET("/admin", RequireAuth(cfg), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/open", OptionalAuth(cfg), func(c *gin.Context) {
		_, authed := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"authed": authed})
	})

	return r
}

func issueToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()

	token, err := GenerateToken(cfg, &models.User{
		ID:       12,
		Username: "tester",
		Email:    "tester@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := testRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestRequireAuthWrongSecret(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	otherCfg := &config.Config{JWTSecret: "other-secret"}
	token := issueToken(t, otherCfg, "user")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)
	token := issueToken(t, cfg, "user")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":12`)
}

func TestRequireAdmin(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, "user"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, "admin"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	// Anonymous request passes through.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	// Garbage token also passes through, just unauthenticated.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer junk")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, cfg, "user"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":true`)
}

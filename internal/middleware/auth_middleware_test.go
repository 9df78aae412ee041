package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora/config"
	"rentora/internal/services"
)

func setupAuthRouter(auth *services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(auth))
	probe := func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
	r.GET("/protected", probe)
	r.GET("/hubs/presence", probe)
	return r
}

func testAuth() *services.AuthService {
	return services.NewAuthService(&config.Config{JWTSecret: "test-secret", JWTExpiryMin: 60})
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	auth := testAuth()
	router := setupAuthRouter(auth)

	token, _, err := auth.IssueAccessToken(7, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := setupAuthRouter(testAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := setupAuthRouter(testAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareHubQueryParam(t *testing.T) {
	auth := testAuth()
	router := setupAuthRouter(auth)

	token, _, err := auth.IssueAccessToken(7, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/hubs/presence?access_token="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareQueryParamIgnoredOutsideHubs(t *testing.T) {
	auth := testAuth()
	router := setupAuthRouter(auth)

	token, _, err := auth.IssueAccessToken(7, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected?access_token="+token, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

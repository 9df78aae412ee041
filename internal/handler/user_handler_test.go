package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentora/config"
	"rentora/internal/domain"
	"rentora/internal/middleware"
	"rentora/internal/mocks"
	"rentora/internal/services"
	rentora_errors "rentora/pkg/errors"
)

func setupUserRouter(h *UserHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != 0 {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserIDContextKey, userID)
			c.Next()
		})
	}
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/profile", h.Me)
	r.PUT("/profile", h.UpdateMe)
	return r
}

func newUserHandler(userRepo *mocks.UserRepositoryMock) *UserHandler {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMin: 60, APIURL: "http://api.test"}
	users := services.NewUserService(userRepo, new(mocks.MessageRepositoryMock), new(mocks.PublisherMock), cfg)
	return NewUserHandler(users, services.NewAuthService(cfg))
}

func TestRegisterEndpoint(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	publisher := new(mocks.PublisherMock)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMin: 60, APIURL: "http://api.test"}
	users := services.NewUserService(userRepo, new(mocks.MessageRepositoryMock), publisher, cfg)
	h := NewUserHandler(users, services.NewAuthService(cfg))
	router := setupUserRouter(h, 0)

	userRepo.On("GetByEmail", mock.Anything, "a@test.io").Return(domain.User{}, rentora_errors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishMail", mock.Anything, mock.Anything).Return(nil).Once()

	body := bytes.NewBufferString(`{"name":"Alice","email":"a@test.io","password":"s3cret!"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestRegisterEndpointRejectsBadEmail(t *testing.T) {
	h := newUserHandler(new(mocks.UserRepositoryMock))
	router := setupUserRouter(h, 0)

	body := bytes.NewBufferString(`{"name":"Alice","email":"nope","password":"s3cret!"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpointIssuesToken(t *testing.T) {
	hash, err := services.HashPassword("letmein")
	require.NoError(t, err)

	userRepo := new(mocks.UserRepositoryMock)
	h := newUserHandler(userRepo)
	router := setupUserRouter(h, 0)

	userRepo.On("GetByEmail", mock.Anything, "a@test.io").
		Return(domain.User{ID: 5, Name: "Alice", Email: "a@test.io", PasswordHash: hash, IsActive: true}, nil).Once()

	body := bytes.NewBufferString(`{"email":"a@test.io","password":"letmein"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
			UserID      int    `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, 5, resp.Data.UserID)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	hash, _ := services.HashPassword("letmein")
	userRepo := new(mocks.UserRepositoryMock)
	h := newUserHandler(userRepo)
	router := setupUserRouter(h, 0)

	userRepo.On("GetByEmail", mock.Anything, "a@test.io").
		Return(domain.User{ID: 5, PasswordHash: hash, IsActive: true}, nil).Once()

	body := bytes.NewBufferString(`{"email":"a@test.io","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRequiresAuth(t *testing.T) {
	h := newUserHandler(new(mocks.UserRepositoryMock))
	router := setupUserRouter(h, 0)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileReturnsCurrentUser(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	h := newUserHandler(userRepo)
	router := setupUserRouter(h, 5)

	userRepo.On("GetByID", mock.Anything, 5).Return(domain.User{ID: 5, Name: "Alice"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

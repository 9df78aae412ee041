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

	"rentora/internal/domain"
	"rentora/internal/mocks"
	"rentora/internal/services"
	rentora_errors "rentora/pkg/errors"
)

func setupCityRouter(h *CityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cities", h.List)
	r.GET("/cities/:id", h.Get)
	r.POST("/cities", h.Create)
	r.PUT("/cities/:id", h.Update)
	r.DELETE("/cities/:id", h.Delete)
	return r
}

func TestCityListSuccess(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	h := NewCityHandler(services.NewCityService(repo, nil))
	router := setupCityRouter(h)

	repo.On("GetAll", mock.Anything).Return([]domain.City{{ID: 1, Name: "Pune"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/cities", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["success"])
	repo.AssertExpectations(t)
}

func TestCityGetNotFound(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	h := NewCityHandler(services.NewCityService(repo, nil))
	router := setupCityRouter(h)

	repo.On("GetByID", mock.Anything, 9).Return(domain.City{}, rentora_errors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/cities/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCityCreateSuccess(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	h := NewCityHandler(services.NewCityService(repo, nil))
	router := setupCityRouter(h)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/cities", bytes.NewBufferString(`{"name":"Nagpur"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	repo.AssertExpectations(t)
}

func TestCityCreateDuplicate(t *testing.T) {
	repo := new(mocks.CityRepositoryMock)
	h := NewCityHandler(services.NewCityService(repo, nil))
	router := setupCityRouter(h)

	repo.On("Create", mock.Anything, mock.Anything).Return(rentora_errors.ErrAlreadyExists).Once()

	req := httptest.NewRequest(http.MethodPost, "/cities", bytes.NewBufferString(`{"name":"Pune"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCityCreateMissingName(t *testing.T) {
	h := NewCityHandler(services.NewCityService(new(mocks.CityRepositoryMock), nil))
	router := setupCityRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/cities", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCityDeleteInvalidID(t *testing.T) {
	h := NewCityHandler(services.NewCityService(new(mocks.CityRepositoryMock), nil))
	router := setupCityRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/cities/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

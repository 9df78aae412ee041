package handler

import (
	"net/http"
	"sort"
	"strconv"

	"rentora/internal/domain"
	"rentora/internal/middleware"
	"rentora/internal/services"
	"rentora/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles listing HTTP endpoints.
type PropertyHandler struct {
	properties *services.PropertyService
}

func NewPropertyHandler(properties *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// List returns all active listings.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.properties.GetAllActive(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromProperties(properties)))
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromProperty(property)))
}

// ListMine returns the authenticated user's listings, active or not.
func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	properties, err := h.properties.GetByUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromProperties(properties)))
}

func (h *PropertyHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	property, err := h.properties.Create(c.Request.Context(), userID, propertyInput(req))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromProperty(property)))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	property, err := h.properties.Update(c.Request.Context(), userID, id, propertyInput(req))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromProperty(property)))
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	if err := h.properties.Delete(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// AddPhoto uploads one listing image from a multipart form.
func (h *PropertyHandler) AddPhoto(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("file is required", "INVALID_REQUEST"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("file could not be read", "INVALID_REQUEST"))
		return
	}
	defer file.Close()

	photo, err := h.properties.AddPhoto(c.Request.Context(), userID, id,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromPhoto(photo)))
}

func (h *PropertyHandler) SetPrimaryPhoto(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}
	photoID, err := strconv.Atoi(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid photo id", "INVALID_REQUEST"))
		return
	}

	if err := h.properties.SetPrimaryPhoto(c.Request.Context(), userID, id, photoID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *PropertyHandler) DeletePhoto(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}
	photoID, err := strconv.Atoi(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid photo id", "INVALID_REQUEST"))
		return
	}

	if err := h.properties.DeletePhoto(c.Request.Context(), userID, id, photoID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *PropertyHandler) AddBookmark(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	if err := h.properties.AddBookmark(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *PropertyHandler) DeleteBookmark(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	if err := h.properties.DeleteBookmark(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// ListBookmarked returns the authenticated user's saved listings.
func (h *PropertyHandler) ListBookmarked(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	properties, err := h.properties.GetBookmarked(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromProperties(properties)))
}

// Enums returns the selectable listing enums for form dropdowns.
func (h *PropertyHandler) Enums(c *gin.Context) {
	res := httpdto.EnumsResponse{}
	for v, label := range domain.CategoryLabels {
		res.Categories = append(res.Categories, httpdto.EnumOption{ID: int(v), Name: label})
	}
	for v, label := range domain.FurnishLabels {
		res.Furnishes = append(res.Furnishes, httpdto.EnumOption{ID: int(v), Name: label})
	}
	sort.Slice(res.Categories, func(i, j int) bool { return res.Categories[i].ID < res.Categories[j].ID })
	sort.Slice(res.Furnishes, func(i, j int) bool { return res.Furnishes[i].ID < res.Furnishes[j].ID })
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(res))
}

func propertyInput(req httpdto.PropertyRequest) services.PropertyInput {
	return services.PropertyInput{
		Title:       req.Title,
		Price:       req.Price,
		Area:        req.Area,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Furnish:     domain.Furnish(req.Furnish),
		IsActive:    req.IsActive,
		CityID:      req.CityID,
	}
}

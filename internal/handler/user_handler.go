// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"
	"strconv"

	"rentora/internal/middleware"
	"rentora/internal/services"
	"rentora/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// UserHandler handles account HTTP endpoints.
type UserHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

// NewUserHandler creates a user handler.
func NewUserHandler(users *services.UserService, auth *services.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// Register handles account registration.
func (h *UserHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromUser(user)))
}

// ConfirmEmail activates an account with the emailed token.
func (h *UserHandler) ConfirmEmail(c *gin.Context) {
	var req httpdto.ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.users.ConfirmEmail(c.Request.Context(), req.Email, req.Token); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Login authenticates an account and issues an access token.
func (h *UserHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	token, expiresIn, err := h.auth.IssueAccessToken(user.ID, user.Name)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.LoginResponse{
		UserID:      user.ID,
		Name:        user.Name,
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}))
}

// ForgotPassword starts a password reset. It succeeds regardless of whether
// the email is known.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req httpdto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// ResetPassword completes a password reset with the emailed token.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req httpdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req.Email, req.Token, req.Password); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUser(user)))
}

// UpdateMe updates the authenticated user's profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, services.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUser(user)))
}

// List returns all accounts.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUsers(users)))
}

// Get returns one account by ID.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUser(user)))
}

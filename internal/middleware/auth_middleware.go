package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"rentora/internal/services"
	"rentora/internal/transport/httpdto"
	"rentora/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserIDContextKey is the gin context key the authenticated user ID is
// stored under.
const UserIDContextKey = "auth.userID"

// AuthMiddleware authenticates requests with a JWT access token. Browser
// websocket clients cannot set headers, so hub routes accept the token as
// an access_token query parameter instead.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" && strings.HasPrefix(c.Request.URL.Path, "/hubs/") {
			token = c.Query("access_token")
		}

		claims, err := service.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		ctx := context.WithValue(c.Request.Context(), logger.UserIdKey, strconv.Itoa(claims.UserID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user of the request.
func CurrentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(UserIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package middleware

import (
	"strings"

	apperrors "eduplatform/errors"
	"eduplatform/models"
	"eduplatform/response"
	"eduplatform/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// ErrMissingToken is returned when a protected route gets no bearer token.
var ErrMissingToken = apperrors.Unauthorized(apperrors.ErrCodeMissingToken, "Authentication required")

// TokenParser is the part of services.TokenManager the middleware needs.
type TokenParser interface {
	ParseToken(tokenString string) (*services.UserInfo, error)
}

// BearerToken returns the token from "Authorization: Bearer <token>", or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// AuthMiddleware authenticates the request and stores the caller in the
// context. Pair it with RoleMiddleware to restrict by role.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			response.Error(c, ErrMissingToken)
			c.Abort()
			return
		}

		info, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, info.UserId)
		c.Set(ContextUserRole, info.Role)
		c.Next()
	}
}

// RoleMiddleware restricts an already authenticated route group.
func RoleMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser reads what AuthMiddleware stored on the context.
func CurrentUser(c *gin.Context) (uint, models.Role, bool) {
	rawID, ok := c.Get(ContextUserID)
	if !ok {
		return 0, "", false
	}
	id, ok := rawID.(uint)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(models.Role)
	return id, r, true
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

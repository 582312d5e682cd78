package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doctorsportal/booking-api/internal/handler"
	"github.com/doctorsportal/booking-api/internal/repository"
	"github.com/doctorsportal/booking-api/pkg/auth"
)

// ContextUserEmail is the gin context key holding the authenticated
// caller's email.
const ContextUserEmail = "userEmail"

type AuthMiddleware struct {
	tokens auth.TokenService
	users  repository.UserRepository
}

func NewAuthMiddleware(tokens auth.TokenService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate verifies the bearer credential and sets the caller's
// email in the request context. Missing credentials are unauthorized,
// invalid or expired ones are forbidden.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// RequireAdmin permits only accounts with the admin role. An account
// that does not exist is treated as non-admin.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextUserEmail)
		if email == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing identity"))
			c.Abort()
			return
		}

		user, err := m.users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to check role"))
			c.Abort()
			return
		}

		if user == nil || !user.Role.IsAdmin() {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}

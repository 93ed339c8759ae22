package middleware

import (
	"strings"

	"conciergerie-backend/apperrors"
	"conciergerie-backend/services"
	"conciergerie-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextEmail  = "email"
)

type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.RespondError(c, apperrors.Unauthorized("Authorization required"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			utils.RespondError(c, apperrors.Unauthorized("Invalid authorization header format"))
			return
		}

		claims, err := parser.ParseToken(parts[1])
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			utils.RespondError(c, apperrors.Forbidden("User role not found"))
			return
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondError(c, apperrors.Forbidden("Insufficient permissions"))
	}
}

package middleware

import (
	"net/http"
	"strings"

	"toy_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
	UserRoleKey = "userRole"
)

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, message, ""))
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// Only access tokens are accepted.
func AuthMiddleware(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authentication credentials were not provided.")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(c, "Invalid authorization header format. Use Bearer <token>")
			return
		}

		claims, err := jwt.ValidateToken(parts[1], utils.TokenTypeAccess)
		if err != nil {
			utils.LogDebug("Rejected bearer token", map[string]interface{}{"reason": err.Error(), "request_id": c.GetString(utils.RequestIDKey)})
			unauthorized(c, "Given token not valid for any token type")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString(UserRoleKey)
		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to perform this action.", "Required roles: "+strings.Join(allowedRoles, ", ")))
	}
}

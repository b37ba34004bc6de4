package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adcraft/services"
	"adcraft/utils"
)

// Auth validates the Bearer token and loads the user into the request
// context. Refresh tokens are rejected here; they are only good for the
// refresh endpoint.
func Auth(jwtManager *utils.JWTManager, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil || claims.Type != "access" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := utils.StringToObjectID(claims.UserID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token subject")
			c.Abort()
			return
		}

		user, err := authService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not found")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

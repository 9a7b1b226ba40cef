package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogiq-backend/internal/config"
	"blogiq-backend/pkg/utils"
)

const (
	// SessionCookieName is the cookie the login handler sets and the
	// frontend sends back on every authenticated request.
	SessionCookieName = "token"

	ClaimsKey = "sessionClaims"
)

// extractToken reads the session token from the cookie, falling back to an
// Authorization: Bearer header for non-browser clients.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "No token provided!")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token, cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// GetClaims retrieves the verified session claims from the Gin context.
func GetClaims(c *gin.Context) (*utils.SessionClaims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}

	claims, ok := value.(*utils.SessionClaims)
	return claims, ok
}

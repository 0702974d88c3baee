package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the bearer token and loads the profile. Role and
// ban state are read from the database on every request so demotions
// and bans take effect without waiting for token expiry.
func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := bearerUserID(c, authService)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		if user.Banned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is banned"})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through. The game uses it: anyone can play, only
// known players get a persisted score.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		userID, err := bearerUserID(c, authService)
		if err != nil {
			c.Next()
			return
		}
		user, err := authService.GetUser(userID)
		if err != nil || user.Banned {
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireRoles aborts unless the authenticated user has one of the
// given roles. Must run after JWTAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

func bearerUserID(c *gin.Context, authService *services.AuthService) (uint, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return 0, errMissingAuth
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, errBadAuthFormat
	}

	return authService.ValidateToken(parts[1])
}

var (
	errMissingAuth   = errors.New("authorization header required")
	errBadAuthFormat = errors.New("invalid authorization header format")
)

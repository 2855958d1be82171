package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/utils"
)

// SessionCookie is the cookie that carries the session token. Clients may
// send the token as a Bearer header instead.
const SessionCookie = "masq_session"

// SessionAuthMiddleware resolves session tokens to users.
type SessionAuthMiddleware struct {
	auth   services.AuthService
	users  services.UserService
	logger utils.Logger
}

func NewSessionAuthMiddleware(auth services.AuthService, users services.UserService, logger utils.Logger) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		auth:   auth,
		users:  users,
		logger: logger,
	}
}

// RequireAuth rejects the request with 401 before any handler runs unless
// a valid session token is present. On success the owning user ID lands in
// the context and the user's last-active stamp is refreshed.
func (sam *SessionAuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		userID, err := sam.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("session_token", token)

		// Activity tracking must never block the request.
		if err := sam.users.TouchLastActive(c.Request.Context(), userID); err != nil {
			utils.FromContext(c, sam.logger).Warn("Failed to touch last active", "user_id", userID, "error", err)
		}

		c.Next()
	}
}

// ExtractToken pulls the session token from the cookie or, failing that,
// from a Bearer authorization header.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ""
	}
	return tokenParts[1]
}

// GetUserIDFromContext extracts the authenticated user ID from the Gin
// context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}

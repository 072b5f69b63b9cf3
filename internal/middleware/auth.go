package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

// UserIDKey is the context key both schemes resolve into. Handlers read
// the requester identity from here and nowhere else.
const UserIDKey = "user_id"

// SessionCookie is the cookie carrying the session ID for rendered pages.
const SessionCookie = "macrolog_session"

// TokenValidator validates API tokens.
type TokenValidator interface {
	ValidateToken(token string) (*service.TokenClaims, error)
}

// SessionResolver maps session IDs to users.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*models.User, error)
}

// TokenAuth validates the Bearer token and stores the user ID in the
// request context. Protected API endpoints run behind this.
func TokenAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// SessionAuth resolves the session cookie and stores the user ID in the
// request context. Rendered pages run behind this; an unauthenticated
// request is sent to the login page rather than given a JSON error.
func SessionAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := resolver.ResolveSession(c.Request.Context(), sessionID)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}

// CurrentUserID reads the authenticated identity set by either scheme.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}

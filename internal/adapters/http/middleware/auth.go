package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-service/internal/adapters/http/dto"
	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/platform/logging"
)

// ContextKeyUserID is the gin context key of the authenticated user ID.
const ContextKeyUserID = "user_id"

const bearerPrefix = "bearer "

// SessionAuthenticator resolves a session token.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// SessionToken returns the token from "Authorization: Bearer <token>" or,
// failing that, from the named cookie.
func SessionToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); len(h) > len(bearerPrefix) && strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(h[len(bearerPrefix):])
	}

	if cookieName == "" {
		return ""
	}

	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}

	return token
}

// RequireSession returns middleware that admits only requests with a valid
// session. The user ID is stored for GetUserID, UserIDFromContext and the
// context logger. Missing or expired sessions get 401; a failing session
// store gets 503.
func RequireSession(auth SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := auth.Authenticate(c.Request.Context(), SessionToken(c, cookieName))
		if err != nil {
			if domain.IsUnauthorized(err) {
				dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, err.Error())
				return
			}

			logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(),
				"session lookup failed", "error", err)
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnavailable, "session store unavailable")

			return
		}

		c.Set(ContextKeyUserID, session.UserID)

		ctx := ContextWithUserID(c.Request.Context(), session.UserID)
		c.Request = c.Request.WithContext(logging.WithUserID(ctx, session.UserID))

		c.Next()
	}
}

// GetUserID returns the authenticated user ID from the gin context, or "".
func GetUserID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyUserID)
}

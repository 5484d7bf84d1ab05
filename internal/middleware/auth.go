package middleware

import (
	"time"

	sessionpkg "github.com/axis-labs/axis-backend/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
)

// OptionalSession resolves the session cookie if present and attaches the
// owning user to the request context. It never blocks the request: a missing,
// revoked or expired session simply leaves it anonymous. Stale cookies from a
// superseded exchange fail the existence check here and stay anonymous too.
func OptionalSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionpkg.CookieName)
		if err == nil && raw != "" {
			if s, err := sessionpkg.Resolve(db, raw); err == nil && s != nil && s.Active(time.Now()) {
				c.Set(ContextKeyUserID, s.UserID)
				c.Set(ContextKeySessionID, s.ID)
				sessionpkg.Touch(db, s.ID)
			}
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySessionID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request carries an active session.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osa911/apexdrive/internal/api/constants"
	"github.com/osa911/apexdrive/internal/session"
)

// SessionCookie makes sure every visitor carries a session id. A missing
// or malformed cookie is replaced with a fresh id.
func SessionCookie(ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)

	return func(c *gin.Context) {
		id, err := c.Cookie(constants.CookieSession)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     constants.CookieSession,
				Value:    id,
				Path:     constants.CookiePathRoot,
				MaxAge:   maxAge,
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(constants.ContextKeySessionID, id)
		c.Next()
	}
}

// SessionID returns the id set by SessionCookie.
func SessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionID)
}

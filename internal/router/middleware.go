package router

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "gokart_session"
const sessionContextKey = "session_id"

// SessionMiddleware gives every browser a stable session id cookie; the cart
// lives under that id in Redis.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookieName, sessionID, 7*24*3600, "/", "", false, true)
		}
		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}

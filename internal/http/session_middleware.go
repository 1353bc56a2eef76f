package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"asd-screen/internal/service"
)

const (
	sessionCookieName = "screening_session"
	sessionContextKey = "session"
)

// SessionContext es la identidad explicita que reciben los handlers.
type SessionContext struct {
	SessionID string
	Username  string
}

// SessionMiddleware lee la cookie de sesion si existe. No corta el request:
// las rutas que exigen autenticacion usan RequireState.
func SessionMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			c.Next()
			return
		}
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		claims, err := sessions.Parse(token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) || errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrSessionRevoked) {
				clearSessionCookie(c, false)
			}
			c.Next()
			return
		}
		c.Set(sessionContextKey, SessionContext{SessionID: claims.SessionID(), Username: claims.Username})
		c.Next()
	}
}

// GetSession obtiene la sesion autenticada desde el contexto.
func GetSession(c *gin.Context) (SessionContext, bool) {
	val, ok := c.Get(sessionContextKey)
	if !ok {
		return SessionContext{}, false
	}
	sess, ok := val.(SessionContext)
	return sess, ok
}

func setSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", secure, true)
}

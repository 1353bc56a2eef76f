package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"asd-screen/internal/domain"
	"asd-screen/internal/service"
)

func sessionProbeRouter(sessions *service.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", SessionMiddleware(sessions), func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, sess.Username)
	})
	return r
}

func TestSessionMiddleware_AllowsValidToken(t *testing.T) {
	sessions := service.NewSessionService("secret", time.Hour)
	token, _, err := sessions.Issue(domain.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	sessionProbeRouter(sessions).ServeHTTP(rec, req)

	if rec.Body.String() != "alice" {
		t.Fatalf("expected alice, got %q", rec.Body.String())
	}
}

func TestSessionMiddleware_MissingCookieIsAnonymous(t *testing.T) {
	sessions := service.NewSessionService("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	sessionProbeRouter(sessions).ServeHTTP(rec, req)

	if rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous, got %q", rec.Body.String())
	}
}

func TestSessionMiddleware_ForeignSignatureClearsCookie(t *testing.T) {
	other := service.NewSessionService("other-secret", time.Hour)
	token, _, err := other.Issue(domain.User{ID: "u1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	sessionProbeRouter(service.NewSessionService("secret", time.Hour)).ServeHTTP(rec, req)

	if rec.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous, got %q", rec.Body.String())
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected invalid session cookie to be cleared")
	}
}

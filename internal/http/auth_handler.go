package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asd-screen/internal/metrics"
	"asd-screen/internal/service"
)

// AuthHandler mantiene dependencias para login, registro y logout.
type AuthHandler struct {
	logger       *zap.Logger
	userServ     *service.UserService
	sessionServ  *service.SessionService
	wizardStore  service.WizardStateStore
	metrics      *metrics.Metrics
	secureCookie bool
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(
	logger *zap.Logger,
	userServ *service.UserService,
	sessionServ *service.SessionService,
	wizardStore service.WizardStateStore,
	m *metrics.Metrics,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userServ:     userServ,
		sessionServ:  sessionServ,
		wizardStore:  wizardStore,
		metrics:      m,
		secureCookie: secureCookie,
	}
}

// LoginForm maneja GET /login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", view(c, nil))
}

// Login maneja POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsForm
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.HTML(http.StatusBadRequest, "login.html", view(c, gin.H{"Error": "Invalid request."}))
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.metrics.ObserveLogin("failure")
			h.logger.Info("login failed", zap.String("username", req.Username))
			c.HTML(http.StatusUnauthorized, "login.html", view(c, gin.H{"Error": "Invalid username or password."}))
		case errors.Is(err, service.ErrRateLimited):
			h.metrics.ObserveLogin("rate_limited")
			c.HTML(http.StatusTooManyRequests, "login.html", view(c, gin.H{"Error": "Too many login attempts. Please try again later."}))
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "login.html", view(c, gin.H{"Error": "Could not login. Please try again."}))
		}
		return
	}

	token, claims, err := h.sessionServ.Issue(user)
	if err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "login.html", view(c, gin.H{"Error": "Could not start a session."}))
		return
	}

	// Un login nuevo descarta lo que hubiera quedado de la sesion anterior.
	if prev, ok := GetSession(c); ok {
		h.endSession(c, prev)
	}

	setSessionCookie(c, token, int(h.sessionServ.TTL().Seconds()), h.secureCookie)
	h.metrics.ObserveLogin("success")
	h.logger.Info("login succeeded", zap.String("username", user.Username), zap.String("session_id", claims.SessionID()))
	c.Redirect(http.StatusSeeOther, "/personal-info")
}

// RegisterForm maneja GET /register.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", view(c, nil))
}

// Register maneja POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsForm
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.HTML(http.StatusBadRequest, "register.html", view(c, gin.H{"Error": "Invalid request."}))
		return
	}

	if _, err := h.userServ.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.HTML(http.StatusBadRequest, "register.html", view(c, gin.H{"Error": "Please fill in all fields."}))
		case errors.Is(err, service.ErrUsernameTaken):
			c.HTML(http.StatusConflict, "register.html", view(c, gin.H{"Error": "Username already exists. Please choose another."}))
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "register.html", view(c, gin.H{"Error": "Could not register. Please try again."}))
		}
		return
	}

	c.HTML(http.StatusCreated, "register.html", view(c, gin.H{"Success": "Registration successful. Please login."}))
}

// Logout maneja GET /logout: revoca la sesion y borra la cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := GetSession(c); ok {
		h.endSession(c, sess)
	}
	clearSessionCookie(c, h.secureCookie)
	c.Redirect(http.StatusFound, "/login")
}

// endSession revoca el token y borra el estado del wizard de la sesion.
func (h *AuthHandler) endSession(c *gin.Context, sess SessionContext) {
	if err := h.sessionServ.Revoke(sess.SessionID); err != nil {
		h.logger.Warn("revoke session failed", zap.Error(err))
	}
	if err := h.wizardStore.Delete(c.Request.Context(), sess.SessionID); err != nil {
		h.logger.Warn("clear wizard state failed", zap.Error(err))
	}
}

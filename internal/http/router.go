package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asd-screen/internal/metrics"
	"asd-screen/internal/service"
)

// RouterDeps agrupa lo que necesita el router.
type RouterDeps struct {
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Sessions  *service.SessionService
	Guard     *WizardGuard
	Auth      *AuthHandler
	Wizard    *WizardHandler
	Screening *service.ScreeningService
}

// NewRouter configura el router de Gin con middlewares y rutas del wizard.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(deps.Logger), metricsMiddleware(deps.Metrics), gin.Recovery(), SessionMiddleware(deps.Sessions))
	r.SetHTMLTemplate(loadTemplates())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Autism Screening App is running successfully")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "capability": deps.Screening.Ready()})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	r.GET("/login", deps.Auth.LoginForm)
	r.POST("/login", deps.Auth.Login)
	r.GET("/register", deps.Auth.RegisterForm)
	r.POST("/register", deps.Auth.Register)
	r.GET("/logout", deps.Auth.Logout)

	personal := r.Group("/personal-info", deps.Guard.RequireState(StateNoPersonalInfo), deps.Wizard.RequireCapability())
	personal.GET("", deps.Wizard.PersonalInfoForm)
	personal.POST("", deps.Wizard.SavePersonalInfo)

	predict := r.Group("/predict", deps.Guard.RequireState(StateHasPersonalInfo), deps.Wizard.RequireCapability())
	predict.GET("", deps.Wizard.PredictForm)
	predict.POST("", deps.Wizard.Predict)

	r.GET("/result", deps.Guard.RequireState(StateNoPersonalInfo), deps.Wizard.Result)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// metricsMiddleware registra latencia por ruta registrada, no por path crudo.
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

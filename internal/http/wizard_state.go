package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asd-screen/internal/domain"
	"asd-screen/internal/service"
)

// WizardState es el estado del flujo login -> personal-info -> predict para
// el request actual. PredictionRendered no se guarda: es la respuesta del POST.
type WizardState int

const (
	StateAnonymous WizardState = iota
	StateNoPersonalInfo
	StateHasPersonalInfo
)

func (s WizardState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateNoPersonalInfo:
		return "authenticated_no_personal_info"
	case StateHasPersonalInfo:
		return "authenticated_has_personal_info"
	default:
		return "unknown"
	}
}

// entryRoute es el paso al que se redirige a quien esta en cada estado.
func (s WizardState) entryRoute() string {
	switch s {
	case StateNoPersonalInfo:
		return "/personal-info"
	case StateHasPersonalInfo:
		return "/predict"
	default:
		return "/login"
	}
}

const personalInfoContextKey = "personal_info"

// WizardGuard resuelve el estado del wizard y aplica los redirects de navegacion.
type WizardGuard struct {
	logger *zap.Logger
	store  service.WizardStateStore
}

func NewWizardGuard(logger *zap.Logger, store service.WizardStateStore) *WizardGuard {
	return &WizardGuard{logger: logger, store: store}
}

// resolve calcula el estado actual; solo consulta el store cuando hace falta
// saber si hay PersonalInfo.
func (g *WizardGuard) resolve(c *gin.Context, needInfo bool) (WizardState, error) {
	sess, ok := GetSession(c)
	if !ok {
		return StateAnonymous, nil
	}
	if !needInfo {
		return StateNoPersonalInfo, nil
	}
	info, found, err := g.store.Get(c.Request.Context(), sess.SessionID)
	if err != nil {
		return StateNoPersonalInfo, err
	}
	if !found {
		return StateNoPersonalInfo, nil
	}
	c.Set(personalInfoContextKey, info)
	return StateHasPersonalInfo, nil
}

// RequireState redirige al paso correspondiente si el request no alcanzo
// el estado requerido. No es un error: es un guard de navegacion.
func (g *WizardGuard) RequireState(required WizardState) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := g.resolve(c, required >= StateHasPersonalInfo)
		if err != nil {
			g.logger.Error("load wizard state failed", zap.Error(err))
			c.String(http.StatusInternalServerError, "could not load session state")
			c.Abort()
			return
		}
		if current < required {
			c.Redirect(http.StatusFound, current.entryRoute())
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPersonalInfo devuelve el PersonalInfo cargado por RequireState.
func GetPersonalInfo(c *gin.Context) (domain.PersonalInfo, bool) {
	val, ok := c.Get(personalInfoContextKey)
	if !ok {
		return domain.PersonalInfo{}, false
	}
	info, ok := val.(domain.PersonalInfo)
	return info, ok
}

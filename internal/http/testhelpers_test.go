package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asd-screen/internal/db"
	"asd-screen/internal/domain"
	"asd-screen/internal/metrics"
	"asd-screen/internal/model"
	"asd-screen/internal/model/modeltest"
	"asd-screen/internal/repository"
	"asd-screen/internal/service"
)

type testApp struct {
	router   *gin.Engine
	store    service.WizardStateStore
	sessions *service.SessionService
}

type appOptions struct {
	noCapability bool
	limiter      service.LoginLimiter
}

func newTestApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, err := db.OpenSQLite(t.TempDir() + "/users.db")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	users := repository.NewSQLiteUserRepository(sqlDB)
	if err := users.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	var capability *model.Capability
	if !opts.noCapability {
		capability, err = modeltest.Capability(t.TempDir())
		if err != nil {
			t.Fatalf("load capability: %v", err)
		}
	}

	limiter := opts.limiter
	if limiter == nil {
		limiter = service.NewLoginLimiter(time.Minute, 100)
	}

	logger := zap.NewNop()
	m := metrics.New()
	store := service.NewMemoryWizardStateStore(time.Hour)
	sessions := service.NewSessionService("test-secret", time.Hour)
	screening := service.NewScreeningService(capability, m, logger)

	router := NewRouter(RouterDeps{
		Logger:    logger,
		Metrics:   m,
		Sessions:  sessions,
		Guard:     NewWizardGuard(logger, store),
		Auth:      NewAuthHandler(logger, service.NewUserService(logger, users, limiter), sessions, store, m, false),
		Wizard:    NewWizardHandler(logger, screening, store),
		Screening: screening,
	})
	return &testApp{router: router, store: store, sessions: sessions}
}

// browser guarda las cookies entre requests como lo haria un navegador.
type browser struct {
	t       *testing.T
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) browser(t *testing.T) *browser {
	return &browser{t: t, app: a, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.app.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func (b *browser) registerAndLogin(username, password string) {
	b.t.Helper()
	creds := url.Values{"username": {username}, "password": {password}}
	if rec := b.post("/register", creds); rec.Code != http.StatusCreated {
		b.t.Fatalf("register: expected 201, got %d", rec.Code)
	}
	rec := b.post("/login", creds)
	if rec.Code != http.StatusSeeOther {
		b.t.Fatalf("login: expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/personal-info" {
		b.t.Fatalf("login: expected redirect to /personal-info, got %q", loc)
	}
}

func personalInfoForm() url.Values {
	return url.Values{
		"age":             {"29"},
		"gender":          {"f"},
		"ethnicity":       {"White-European"},
		"jaundice":        {"no"},
		"austim":          {"yes"},
		"contry_of_res":   {"United States"},
		"used_app_before": {"no"},
		"relation":        {"Self"},
	}
}

func answersForm(answer, result string) url.Values {
	form := url.Values{"result": {result}}
	for i := 1; i <= domain.QuestionCount; i++ {
		form.Set(domain.QuestionKey(i), answer)
	}
	return form
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected status %d, got %d", code, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

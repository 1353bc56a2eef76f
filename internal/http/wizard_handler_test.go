package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"asd-screen/internal/service"
)

func TestWizardFlow_PositivePrediction(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)
	b.registerAndLogin("alice", "secret123")

	rec := b.get("/personal-info")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<option value="White-European">`) {
		t.Fatalf("expected ethnicity options in form")
	}

	assertRedirect(t, b.post("/personal-info", personalInfoForm()), http.StatusSeeOther, "/predict")

	if rec := b.get("/predict"); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = b.post("/predict", answersForm("yes", "8"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, service.LabelPositive) {
		t.Fatalf("expected positive label, got %q", body)
	}
	if !strings.Contains(body, "Confidence: 99.8%") {
		t.Fatalf("expected confidence 99.8%%, got %q", body)
	}
}

func TestWizardFlow_NegativePrediction(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)
	b.registerAndLogin("bob", "secret123")
	assertRedirect(t, b.post("/personal-info", personalInfoForm()), http.StatusSeeOther, "/predict")

	rec := b.post("/predict", answersForm("no", "1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), service.LabelNegative) {
		t.Fatalf("expected negative label")
	}
}

func TestWizardFlow_ResubmitKeepsPersonalInfo(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)
	b.registerAndLogin("alice", "secret123")
	assertRedirect(t, b.post("/personal-info", personalInfoForm()), http.StatusSeeOther, "/predict")

	for i := 0; i < 2; i++ {
		if rec := b.post("/predict", answersForm("yes", "8")); rec.Code != http.StatusOK {
			t.Fatalf("submission %d: expected status 200, got %d", i+1, rec.Code)
		}
	}
}

func TestWizardFlow_UnknownCategory(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)
	b.registerAndLogin("alice", "secret123")

	form := personalInfoForm()
	form.Set("ethnicity", "Martian")
	assertRedirect(t, b.post("/personal-info", form), http.StatusSeeOther, "/predict")

	rec := b.post("/predict", answersForm("yes", "8"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ethnicity") {
		t.Fatalf("expected page to name the field, got %q", body)
	}
	if !strings.Contains(body, `href="/personal-info"`) {
		t.Fatalf("expected link back to personal info")
	}
}

func TestWizardGuard_PredictWithoutPersonalInfo(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)
	b.registerAndLogin("alice", "secret123")

	assertRedirect(t, b.get("/predict"), http.StatusFound, "/personal-info")
	assertRedirect(t, b.post("/predict", answersForm("yes", "8")), http.StatusFound, "/personal-info")
}

func TestWizardGuard_AnonymousRedirectsToLogin(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)

	for _, path := range []string{"/personal-info", "/predict", "/result"} {
		t.Run(path, func(t *testing.T) {
			assertRedirect(t, b.get(path), http.StatusFound, "/login")
		})
	}
}

func TestWizardHandlerResult_RedirectsToPredict(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)
	b.registerAndLogin("alice", "secret123")

	assertRedirect(t, b.get("/result"), http.StatusSeeOther, "/predict")
}

func TestWizardHandler_CapabilityUnavailable(t *testing.T) {
	app := newTestApp(t, appOptions{noCapability: true})
	b := app.browser(t)
	b.registerAndLogin("alice", "secret123")

	rec := b.get("/personal-info")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Model files missing") {
		t.Fatalf("expected model missing message, got %q", rec.Body.String())
	}

	if rec := b.get("/login"); rec.Code != http.StatusOK {
		t.Fatalf("expected login to keep working, got %d", rec.Code)
	}
}

func TestRouter_StatusHealthzAndMetrics(t *testing.T) {
	app := newTestApp(t, appOptions{})
	b := app.browser(t)

	rec := b.get("/")
	if rec.Code != http.StatusOK || rec.Body.String() != "Autism Screening App is running successfully" {
		t.Fatalf("unexpected root response: %d %q", rec.Code, rec.Body.String())
	}

	rec = b.get("/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload struct {
		Status     string `json:"status"`
		Capability bool   `json:"capability"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if payload.Status != "ok" || !payload.Capability {
		t.Fatalf("unexpected healthz payload: %+v", payload)
	}

	rec = b.get("/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `screening_requests_total{method="GET",route="/healthz",status="200"}`) {
		t.Fatalf("expected request counter for /healthz")
	}
}

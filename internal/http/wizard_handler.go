package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asd-screen/internal/domain"
	"asd-screen/internal/model"
	"asd-screen/internal/service"
)

const capabilityUnavailableMessage = "Model files missing. Please place the model and encoders artifacts next to the service."

// fieldLabels son los titulos de los selects del formulario de datos personales.
var fieldLabels = map[string]string{
	domain.FeatureGender:        "Gender",
	domain.FeatureEthnicity:     "Ethnicity",
	domain.FeatureJaundice:      "Born with jaundice",
	domain.FeatureAutism:        "Family member with autism",
	domain.FeatureCountryOfRes:  "Country of residence",
	domain.FeatureUsedAppBefore: "Used a screening app before",
	domain.FeatureRelation:      "Who is completing the test",
}

type selectField struct {
	Name    string
	Label   string
	Options []string
}

// WizardHandler atiende los pasos personal-info y predict.
type WizardHandler struct {
	logger      *zap.Logger
	screening   *service.ScreeningService
	wizardStore service.WizardStateStore
}

func NewWizardHandler(logger *zap.Logger, screening *service.ScreeningService, wizardStore service.WizardStateStore) *WizardHandler {
	return &WizardHandler{logger: logger, screening: screening, wizardStore: wizardStore}
}

// RequireCapability corta con 503 si no hay modelo cargado.
func (h *WizardHandler) RequireCapability() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.screening.Ready() {
			c.String(http.StatusServiceUnavailable, capabilityUnavailableMessage)
			c.Abort()
			return
		}
		c.Next()
	}
}

// PersonalInfoForm maneja GET /personal-info.
func (h *WizardHandler) PersonalInfoForm(c *gin.Context) {
	c.HTML(http.StatusOK, "personal_info.html", view(c, gin.H{"Fields": h.selectFields()}))
}

// SavePersonalInfo maneja POST /personal-info.
func (h *WizardHandler) SavePersonalInfo(c *gin.Context) {
	sess, ok := GetSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form PersonalInfoForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("invalid personal info request", zap.Error(err))
		c.HTML(http.StatusBadRequest, "personal_info.html", view(c, gin.H{"Fields": h.selectFields()}))
		return
	}

	if err := h.wizardStore.Put(c.Request.Context(), sess.SessionID, form.PersonalInfo()); err != nil {
		h.logger.Error("save personal info failed", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "error.html", view(c, gin.H{
			"Error": "Could not save your answers. Please try again.",
			"Back":  "/personal-info",
		}))
		return
	}
	c.Redirect(http.StatusSeeOther, "/predict")
}

// PredictForm maneja GET /predict.
func (h *WizardHandler) PredictForm(c *gin.Context) {
	c.HTML(http.StatusOK, "predict.html", view(c, gin.H{"Questions": service.ScreeningQuestions()}))
}

// Predict maneja POST /predict.
func (h *WizardHandler) Predict(c *gin.Context) {
	info, ok := GetPersonalInfo(c)
	if !ok {
		c.Redirect(http.StatusFound, "/personal-info")
		return
	}

	var form PredictForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		c.HTML(http.StatusBadRequest, "predict.html", view(c, gin.H{"Questions": service.ScreeningQuestions()}))
		return
	}

	scores := service.NormalizeAnswers(form.Answers(), form.Result)
	res, err := h.screening.Predict(c.Request.Context(), info, scores)
	if err != nil {
		var uc *model.UnknownCategoryError
		switch {
		case errors.As(err, &uc):
			c.HTML(http.StatusUnprocessableEntity, "error.html", view(c, gin.H{
				"Error": "The value \"" + uc.Value + "\" is not accepted for " + fieldLabel(uc.Field) + ". Please review your personal information.",
				"Back":  "/personal-info",
			}))
		case errors.Is(err, model.ErrCapabilityUnavailable):
			c.String(http.StatusServiceUnavailable, capabilityUnavailableMessage)
		default:
			h.logger.Error("predict failed", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", view(c, gin.H{
				"Error": "Prediction failed. Please try again.",
				"Back":  "/predict",
			}))
		}
		return
	}

	data := gin.H{
		"Questions":  service.ScreeningQuestions(),
		"Prediction": res.Label,
	}
	if res.Confidence != nil {
		data["HasConfidence"] = true
		data["Confidence"] = *res.Confidence
	}
	c.HTML(http.StatusOK, "predict.html", view(c, data))
}

// Result es el alias historico de /predict.
func (h *WizardHandler) Result(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/predict")
}

func (h *WizardHandler) selectFields() []selectField {
	valid := h.screening.ValidValues()
	fields := make([]selectField, 0, len(domain.CategoricalFeatures))
	for _, name := range domain.CategoricalFeatures {
		fields = append(fields, selectField{Name: name, Label: fieldLabel(name), Options: valid[name]})
	}
	return fields
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

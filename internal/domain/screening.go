package domain

import (
	"errors"
	"fmt"
)

// QuestionCount es la cantidad de preguntas conductuales del cuestionario.
const QuestionCount = 10

// Nombres de features con los que se entreno el clasificador. Algunos
// conservan la ortografia del dataset original ("austim", "contry_of_res").
const (
	FeatureAge           = "age"
	FeatureGender        = "gender"
	FeatureEthnicity     = "ethnicity"
	FeatureJaundice      = "jaundice"
	FeatureAutism        = "austim"
	FeatureCountryOfRes  = "contry_of_res"
	FeatureUsedAppBefore = "used_app_before"
	FeatureResult        = "result"
	FeatureRelation      = "relation"
)

// CategoricalFeatures lista los campos que pasan por un encoder, en orden estable.
var CategoricalFeatures = []string{
	FeatureGender,
	FeatureEthnicity,
	FeatureJaundice,
	FeatureAutism,
	FeatureCountryOfRes,
	FeatureUsedAppBefore,
	FeatureRelation,
}

// FeatureOrder es el orden posicional que espera el clasificador.
var FeatureOrder = buildFeatureOrder()

func buildFeatureOrder() []string {
	order := make([]string, 0, QuestionCount+9)
	for i := 1; i <= QuestionCount; i++ {
		order = append(order, QuestionKey(i))
	}
	return append(order,
		FeatureAge,
		FeatureGender,
		FeatureEthnicity,
		FeatureJaundice,
		FeatureAutism,
		FeatureCountryOfRes,
		FeatureUsedAppBefore,
		FeatureResult,
		FeatureRelation,
	)
}

// QuestionKey devuelve la clave de formulario/feature de la pregunta i (1..10).
func QuestionKey(i int) string {
	return fmt.Sprintf("A%d_Score", i)
}

// BehavioralScores son las respuestas normalizadas de un envio del paso predict.
type BehavioralScores struct {
	Answers [QuestionCount]int
	Result  float64
}

var ErrFeatureMissing = errors.New("feature missing")

// FeatureRecord es el mapeo nombrado que se entrega al clasificador.
type FeatureRecord struct {
	values map[string]float64
}

func NewFeatureRecord() FeatureRecord {
	return FeatureRecord{values: make(map[string]float64, len(FeatureOrder))}
}

func (r FeatureRecord) Set(name string, value float64) {
	r.values[name] = value
}

func (r FeatureRecord) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r FeatureRecord) Len() int {
	return len(r.values)
}

// Vector convierte el registro al orden posicional de FeatureOrder. Falla si
// falta algun campo o si sobra alguno que el modelo no conoce.
func (r FeatureRecord) Vector() ([]float64, error) {
	out := make([]float64, len(FeatureOrder))
	for i, name := range FeatureOrder {
		v, ok := r.values[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFeatureMissing, name)
		}
		out[i] = v
	}
	if len(r.values) != len(FeatureOrder) {
		return nil, fmt.Errorf("feature record has %d fields, expected %d", len(r.values), len(FeatureOrder))
	}
	return out, nil
}

// PredictionResult es lo que se muestra al usuario tras una inferencia.
type PredictionResult struct {
	Label      string   `json:"label"`
	Positive   bool     `json:"positive"`
	Confidence *float64 `json:"confidence,omitempty"` // porcentaje 0-100, un decimal
}

package http

import (
	"strings"

	"asd-screen/internal/domain"
)

// CredentialsForm es el cuerpo de POST /login y POST /register.
type CredentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// PersonalInfoForm es el cuerpo de POST /personal-info.
type PersonalInfoForm struct {
	Age           string `form:"age"`
	Gender        string `form:"gender"`
	Ethnicity     string `form:"ethnicity"`
	Jaundice      string `form:"jaundice"`
	Autism        string `form:"austim"`
	CountryOfRes  string `form:"contry_of_res"`
	UsedAppBefore string `form:"used_app_before"`
	Relation      string `form:"relation"`
}

// PersonalInfo copia los valores tal cual; solo la edad se recorta.
func (f PersonalInfoForm) PersonalInfo() domain.PersonalInfo {
	return domain.PersonalInfo{
		Age:           strings.TrimSpace(f.Age),
		Gender:        f.Gender,
		Ethnicity:     f.Ethnicity,
		Jaundice:      f.Jaundice,
		Autism:        f.Autism,
		CountryOfRes:  f.CountryOfRes,
		UsedAppBefore: f.UsedAppBefore,
		Relation:      f.Relation,
	}
}

// PredictForm es el cuerpo de POST /predict. Las respuestas ausentes llegan
// vacias y cuentan como "no".
type PredictForm struct {
	A1     string `form:"A1_Score"`
	A2     string `form:"A2_Score"`
	A3     string `form:"A3_Score"`
	A4     string `form:"A4_Score"`
	A5     string `form:"A5_Score"`
	A6     string `form:"A6_Score"`
	A7     string `form:"A7_Score"`
	A8     string `form:"A8_Score"`
	A9     string `form:"A9_Score"`
	A10    string `form:"A10_Score"`
	Result string `form:"result"`
}

func (f PredictForm) Answers() [domain.QuestionCount]string {
	return [domain.QuestionCount]string{f.A1, f.A2, f.A3, f.A4, f.A5, f.A6, f.A7, f.A8, f.A9, f.A10}
}

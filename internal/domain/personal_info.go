package domain

// PersonalInfo guarda los datos demograficos tal como los envio el usuario.
// Los campos categoricos se codifican recien al armar el FeatureRecord.
type PersonalInfo struct {
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	Ethnicity     string `json:"ethnicity"`
	Jaundice      string `json:"jaundice"`
	Autism        string `json:"austim"`
	CountryOfRes  string `json:"contry_of_res"`
	UsedAppBefore string `json:"used_app_before"`
	Relation      string `json:"relation"`
}

// Categorical devuelve los valores categoricos indexados por nombre de feature.
func (p PersonalInfo) Categorical() map[string]string {
	return map[string]string{
		FeatureGender:        p.Gender,
		FeatureEthnicity:     p.Ethnicity,
		FeatureJaundice:      p.Jaundice,
		FeatureAutism:        p.Autism,
		FeatureCountryOfRes:  p.CountryOfRes,
		FeatureUsedAppBefore: p.UsedAppBefore,
		FeatureRelation:      p.Relation,
	}
}

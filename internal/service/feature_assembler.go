package service

import (
	"fmt"

	"asd-screen/internal/domain"
)

// CategoricalEncoder es la vista minima de los encoders que necesita el assembler.
type CategoricalEncoder interface {
	Encode(field, value string) (int, error)
}

// FeatureAssembler combina datos personales y respuestas en un FeatureRecord.
type FeatureAssembler struct {
	encoders CategoricalEncoder
}

func NewFeatureAssembler(encoders CategoricalEncoder) FeatureAssembler {
	return FeatureAssembler{encoders: encoders}
}

// Assemble codifica los campos categoricos y arma el registro nombrado. Es
// determinista; si algun campo no se puede codificar devuelve ese error
// (ErrUnknownCategory) sin armar un registro parcial.
func (a FeatureAssembler) Assemble(info domain.PersonalInfo, scores domain.BehavioralScores) (domain.FeatureRecord, error) {
	if a.encoders == nil {
		return domain.FeatureRecord{}, fmt.Errorf("feature assembler: no encoders")
	}

	record := domain.NewFeatureRecord()
	for i, answer := range scores.Answers {
		record.Set(domain.QuestionKey(i+1), float64(answer))
	}
	record.Set(domain.FeatureAge, ParseAge(info.Age))
	record.Set(domain.FeatureResult, scores.Result)

	categorical := info.Categorical()
	for _, field := range domain.CategoricalFeatures {
		code, err := a.encoders.Encode(field, categorical[field])
		if err != nil {
			return domain.FeatureRecord{}, err
		}
		record.Set(field, float64(code))
	}
	return record, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"asd-screen/internal/domain"
	"asd-screen/internal/model"
)

const (
	LabelPositive = "Yes – high likelihood of Autism Spectrum Disorder (screening result)"
	LabelNegative = "No – low likelihood of Autism Spectrum Disorder (screening result)"
)

var ErrInferenceFailed = errors.New("inference failed")

// InferenceService invoca al clasificador una sola vez por request.
type InferenceService struct {
	classifier model.Classifier
}

func NewInferenceService(classifier model.Classifier) *InferenceService {
	return &InferenceService{classifier: classifier}
}

// Infer convierte el registro al vector posicional y evalua el modelo una sola
// vez; si el clasificador da probabilidad, agrega la confianza. No reintenta.
func (s *InferenceService) Infer(_ context.Context, record domain.FeatureRecord) (domain.PredictionResult, error) {
	if s == nil || s.classifier == nil {
		return domain.PredictionResult{}, model.ErrCapabilityUnavailable
	}
	features, err := record.Vector()
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	var (
		class int
		proba *float64
	)
	if pc, ok := s.classifier.(model.ProbabilityClassifier); ok {
		c, p, err := pc.PredictWithProba(features)
		if err != nil {
			return domain.PredictionResult{}, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
		}
		class, proba = c, &p
	} else {
		class, err = s.classifier.Predict(features)
		if err != nil {
			return domain.PredictionResult{}, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
		}
	}

	var result domain.PredictionResult
	switch class {
	case 1:
		result = domain.PredictionResult{Label: LabelPositive, Positive: true}
	case 0:
		result = domain.PredictionResult{Label: LabelNegative}
	default:
		return domain.PredictionResult{}, fmt.Errorf("%w: unexpected class %d", ErrInferenceFailed, class)
	}
	if proba != nil {
		confidence := toPercent(*proba)
		result.Confidence = &confidence
	}
	return result, nil
}

// toPercent pasa una probabilidad a porcentaje con un decimal, acotado a [0,100].
func toPercent(p float64) float64 {
	pct := math.Round(p*1000) / 10
	return math.Max(0, math.Min(100, pct))
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"asd-screen/internal/domain"
	"asd-screen/internal/metrics"
	"asd-screen/internal/model"
)

// ScreeningService ejecuta el paso predict: normaliza, arma features e infiere.
type ScreeningService struct {
	capability *model.Capability
	assembler  FeatureAssembler
	inference  *InferenceService
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewScreeningService(capability *model.Capability, m *metrics.Metrics, logger *zap.Logger) *ScreeningService {
	svc := &ScreeningService{
		capability: capability,
		metrics:    m,
		logger:     logger,
	}
	if capability.Ready() {
		svc.assembler = NewFeatureAssembler(capability.Encoders)
		svc.inference = NewInferenceService(capability.Classifier)
	}
	return svc
}

// Ready indica si la capacidad de inferencia esta cargada.
func (s *ScreeningService) Ready() bool {
	return s != nil && s.capability.Ready()
}

// ValidValues expone el vocabulario de cada campo categorico para el formulario.
func (s *ScreeningService) ValidValues() map[string][]string {
	out := make(map[string][]string, len(domain.CategoricalFeatures))
	if !s.Ready() {
		return out
	}
	for _, field := range s.capability.Encoders.Fields() {
		out[field] = s.capability.Encoders.ValidValues(field)
	}
	return out
}

// Predict corre assembler + inferencia sobre datos ya normalizados.
func (s *ScreeningService) Predict(ctx context.Context, info domain.PersonalInfo, scores domain.BehavioralScores) (domain.PredictionResult, error) {
	if !s.Ready() {
		return domain.PredictionResult{}, model.ErrCapabilityUnavailable
	}

	record, err := s.assembler.Assemble(info, scores)
	if err != nil {
		var uc *model.UnknownCategoryError
		if errors.As(err, &uc) {
			s.metrics.ObserveUnknownCategory(uc.Field)
			if s.logger != nil {
				s.logger.Warn("unknown category in personal info", zap.String("field", uc.Field))
			}
		}
		return domain.PredictionResult{}, err
	}

	result, err := s.inference.Infer(ctx, record)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("inference failed", zap.Error(err))
		}
		return domain.PredictionResult{}, err
	}

	s.metrics.ObservePrediction(result.Positive)
	if s.logger != nil {
		fields := []zap.Field{zap.Bool("positive", result.Positive)}
		if result.Confidence != nil {
			fields = append(fields, zap.Float64("confidence", *result.Confidence))
		}
		s.logger.Info("prediction served", fields...)
	}
	return result, nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"asd-screen/internal/domain"
	"asd-screen/internal/metrics"
	"asd-screen/internal/model"
)

func TestScreeningService_PositiveScenario(t *testing.T) {
	svc := NewScreeningService(testCapability(t), metrics.New(), zap.NewNop())

	res, err := svc.Predict(context.Background(), validPersonalInfo(), allYesScores(8))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Label != LabelPositive {
		t.Fatalf("expected positive label, got %q", res.Label)
	}
	if res.Confidence == nil || *res.Confidence < 0 || *res.Confidence > 100 {
		t.Fatalf("confidence out of range: %v", res.Confidence)
	}
}

func TestScreeningService_NegativeScenario(t *testing.T) {
	svc := NewScreeningService(testCapability(t), nil, zap.NewNop())

	res, err := svc.Predict(context.Background(), validPersonalInfo(), domain.BehavioralScores{Result: DefaultResultScore})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Label != LabelNegative || res.Positive {
		t.Fatalf("expected negative label, got %+v", res)
	}
}

func TestScreeningService_UnknownEthnicity(t *testing.T) {
	svc := NewScreeningService(testCapability(t), metrics.New(), zap.NewNop())
	info := validPersonalInfo()
	info.Ethnicity = "Unknown-Group"

	_, err := svc.Predict(context.Background(), info, allYesScores(8))
	if !errors.Is(err, model.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestScreeningService_CapabilityUnavailable(t *testing.T) {
	svc := NewScreeningService(nil, nil, zap.NewNop())
	if svc.Ready() {
		t.Fatalf("expected service without capability to be unready")
	}
	if len(svc.ValidValues()) != 0 {
		t.Fatalf("expected no vocabularies")
	}
	if _, err := svc.Predict(context.Background(), validPersonalInfo(), allYesScores(8)); !errors.Is(err, model.ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
}

func TestScreeningService_ValidValues(t *testing.T) {
	svc := NewScreeningService(testCapability(t), nil, zap.NewNop())
	values := svc.ValidValues()
	if len(values) != len(domain.CategoricalFeatures) {
		t.Fatalf("expected %d vocabularies, got %d", len(domain.CategoricalFeatures), len(values))
	}
	if got := values[domain.FeatureJaundice]; len(got) != 2 || got[0] != "no" || got[1] != "yes" {
		t.Fatalf("unexpected jaundice vocabulary: %v", got)
	}
}

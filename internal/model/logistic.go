package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"asd-screen/internal/domain"
)

// LogisticClassifier es un modelo lineal exportado como JSON:
//
//	{"features": [...], "coefficients": [...], "intercept": 0.1, "threshold": 0.5}
//
// features tiene que coincidir exactamente con domain.FeatureOrder.
type LogisticClassifier struct {
	coefficients []float64
	intercept    float64
	threshold    float64
}

type logisticArtifact struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    *float64  `json:"threshold,omitempty"`
}

// NewLogisticClassifier valida el orden de features. Un threshold fuera de
// (0,1) se toma como 0.5.
func NewLogisticClassifier(features []string, coefficients []float64, intercept, threshold float64) (*LogisticClassifier, error) {
	if len(features) != len(domain.FeatureOrder) {
		return nil, fmt.Errorf("logistic: expected %d features, got %d", len(domain.FeatureOrder), len(features))
	}
	for i, name := range domain.FeatureOrder {
		if features[i] != name {
			return nil, fmt.Errorf("logistic: feature %d is %q, expected %q", i, features[i], name)
		}
	}
	if len(coefficients) != len(features) {
		return nil, fmt.Errorf("logistic: %d coefficients for %d features", len(coefficients), len(features))
	}
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.5
	}
	return &LogisticClassifier{
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
		threshold:    threshold,
	}, nil
}

// LoadLogisticClassifier lee el artefacto JSON.
func LoadLogisticClassifier(path string) (*LogisticClassifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logistic: read %s: %w", path, err)
	}
	var art logisticArtifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("logistic: decode %s: %w", path, err)
	}
	threshold := 0.5
	if art.Threshold != nil {
		threshold = *art.Threshold
	}
	return NewLogisticClassifier(art.Features, art.Coefficients, art.Intercept, threshold)
}

func (c *LogisticClassifier) PredictProba(features []float64) (float64, error) {
	if len(features) != len(c.coefficients) {
		return 0, fmt.Errorf("logistic: expected %d features, got %d", len(c.coefficients), len(features))
	}
	z := c.intercept
	for i, x := range features {
		z += c.coefficients[i] * x
	}
	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("logistic: non-finite score")
	}
	return p, nil
}

func (c *LogisticClassifier) Predict(features []float64) (int, error) {
	class, _, err := c.PredictWithProba(features)
	return class, err
}

func (c *LogisticClassifier) PredictWithProba(features []float64) (int, float64, error) {
	p, err := c.PredictProba(features)
	if err != nil {
		return 0, 0, err
	}
	if p >= c.threshold {
		return 1, p, nil
	}
	return 0, p, nil
}

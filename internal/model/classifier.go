package model

// Classifier predice la clase binaria para un vector en el orden de
// domain.FeatureOrder.
type Classifier interface {
	Predict(features []float64) (int, error)
}

// ProbabilityClassifier devuelve clase y probabilidad de la clase 1 en una
// sola evaluacion del modelo.
type ProbabilityClassifier interface {
	Classifier
	PredictWithProba(features []float64) (int, float64, error)
}

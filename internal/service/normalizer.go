package service

import (
	"math"
	"strconv"
	"strings"

	"asd-screen/internal/domain"
)

const (
	DefaultResultScore = 5.0
	DefaultAge         = 0.0
)

// ToBinary devuelve 1 solo para "yes" (sin distinguir mayusculas). Cualquier
// otro valor, incluida la ausencia, cuenta como respuesta negativa.
func ToBinary(raw string) int {
	if strings.EqualFold(raw, "yes") {
		return 1
	}
	return 0
}

// ToScoreFloat parsea un decimal; si falla devuelve def sin modificar.
func ToScoreFloat(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// ParseAge convierte la edad ingresada como texto; 0 si no es numerica.
func ParseAge(raw string) float64 {
	return ToScoreFloat(raw, DefaultAge)
}

// NormalizeAnswers arma los BehavioralScores a partir de las respuestas crudas
// (indice 0 = A1_Score) y el puntaje "result".
func NormalizeAnswers(answers [domain.QuestionCount]string, rawResult string) domain.BehavioralScores {
	var scores domain.BehavioralScores
	for i, raw := range answers {
		scores.Answers[i] = ToBinary(raw)
	}
	scores.Result = ToScoreFloat(rawResult, DefaultResultScore)
	return scores
}

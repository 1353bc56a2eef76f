package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"asd-screen/internal/domain"
)

var ErrUnknownCategory = errors.New("unknown category")

// UnknownCategoryError indica el campo y el valor que no tienen codigo.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q for field %s", e.Value, e.Field)
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// Encoders guarda los vocabularios de los label encoders ya entrenados. El
// codigo de un valor es su indice en el vocabulario. No cambia tras la carga.
type Encoders struct {
	vocab map[string][]string
	codes map[string]map[string]int
}

// NewEncoders arma Encoders desde campo -> clases ordenadas. Todos los
// campos categoricos tienen que estar y no pueden venir vacios.
func NewEncoders(classes map[string][]string) (*Encoders, error) {
	e := &Encoders{
		vocab: make(map[string][]string, len(classes)),
		codes: make(map[string]map[string]int, len(classes)),
	}
	for _, field := range domain.CategoricalFeatures {
		labels, ok := classes[field]
		if !ok || len(labels) == 0 {
			return nil, fmt.Errorf("encoders: missing vocabulary for %s", field)
		}
		idx := make(map[string]int, len(labels))
		for i, label := range labels {
			if _, dup := idx[label]; dup {
				return nil, fmt.Errorf("encoders: duplicate label %q in %s", label, field)
			}
			idx[label] = i
		}
		e.vocab[field] = append([]string(nil), labels...)
		e.codes[field] = idx
	}
	return e, nil
}

// LoadEncoders lee un objeto JSON campo -> clases.
func LoadEncoders(path string) (*Encoders, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("encoders: read %s: %w", path, err)
	}
	var classes map[string][]string
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, fmt.Errorf("encoders: decode %s: %w", path, err)
	}
	return NewEncoders(classes)
}

// ValidValues devuelve una copia del vocabulario del campo, en orden de codigo.
func (e *Encoders) ValidValues(field string) []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.vocab[field]...)
}

// Encode devuelve el codigo del valor. La comparacion es exacta y distingue
// mayusculas.
func (e *Encoders) Encode(field, value string) (int, error) {
	if e == nil {
		return 0, ErrCapabilityUnavailable
	}
	idx, ok := e.codes[field]
	if !ok {
		return 0, &UnknownCategoryError{Field: field, Value: value}
	}
	code, ok := idx[value]
	if !ok {
		return 0, &UnknownCategoryError{Field: field, Value: value}
	}
	return code, nil
}

// Fields lista los campos codificados en orden estable.
func (e *Encoders) Fields() []string {
	return append([]string(nil), domain.CategoricalFeatures...)
}

package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrCapabilityUnavailable = errors.New("model capability unavailable")

// Capability agrupa encoders y clasificador cargados al arrancar. No se
// modifica despues de construida y la comparten todos los requests.
type Capability struct {
	Encoders   *Encoders
	Classifier Classifier
}

// NewCapability exige ambas partes.
func NewCapability(encoders *Encoders, classifier Classifier) (*Capability, error) {
	if encoders == nil || classifier == nil {
		return nil, ErrCapabilityUnavailable
	}
	return &Capability{Encoders: encoders, Classifier: classifier}, nil
}

// LoadCapability carga ambos artefactos. El backend sale de la extension del
// modelo: ".onnx" usa ONNX Runtime, cualquier otra se lee como logistico JSON.
func LoadCapability(modelPath, encodersPath, onnxLibPath string) (*Capability, error) {
	encoders, err := LoadEncoders(encodersPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err)
	}

	var classifier Classifier
	switch strings.ToLower(filepath.Ext(modelPath)) {
	case ".onnx":
		classifier, err = NewONNXClassifier(modelPath, onnxLibPath)
	default:
		classifier, err = LoadLogisticClassifier(modelPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err)
	}
	return NewCapability(encoders, classifier)
}

// Ready indica si se puede inferir. Acepta receptor nil.
func (c *Capability) Ready() bool {
	return c != nil && c.Encoders != nil && c.Classifier != nil
}

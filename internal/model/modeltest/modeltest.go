// Package modeltest expone un clasificador y encoders fijos para tests.
package modeltest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"asd-screen/internal/model"
)

//go:embed encoders.json
var EncodersJSON []byte

//go:embed model.json
var ModelJSON []byte

// Encoders parsea el encoders.json embebido.
func Encoders() (*model.Encoders, error) {
	var classes map[string][]string
	if err := json.Unmarshal(EncodersJSON, &classes); err != nil {
		return nil, fmt.Errorf("parse encoders.json: %w", err)
	}
	return model.NewEncoders(classes)
}

// WriteArtifacts escribe ambos artefactos en dir y devuelve sus rutas.
func WriteArtifacts(dir string) (modelPath, encodersPath string, err error) {
	modelPath = filepath.Join(dir, "best_model.json")
	encodersPath = filepath.Join(dir, "encoders.json")
	if err := os.WriteFile(modelPath, ModelJSON, 0o600); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(encodersPath, EncodersJSON, 0o600); err != nil {
		return "", "", err
	}
	return modelPath, encodersPath, nil
}

// Capability carga los artefactos embebidos con el loader normal.
func Capability(dir string) (*model.Capability, error) {
	modelPath, encodersPath, err := WriteArtifacts(dir)
	if err != nil {
		return nil, err
	}
	return model.LoadCapability(modelPath, encodersPath, "")
}

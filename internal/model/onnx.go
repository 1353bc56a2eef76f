package model

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"asd-screen/internal/domain"
)

// ortEnv protege la inicializacion global de ONNX Runtime.
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

const (
	onnxLabelOutput = "label"
	onnxProbaOutput = "probabilities"
)

// ONNXClassifier corre un clasificador de scikit-learn exportado con skl2onnx
// (zipmap desactivado): entrada float [N, 18], salida int64 "label" y salida
// float "probabilities" [N, 2].
type ONNXClassifier struct {
	session   *ort.DynamicAdvancedSession
	inputName string
	nFeatures int64
}

// NewONNXClassifier carga modelPath. Sin libPath busca libonnxruntime.so
// junto al modelo.
func NewONNXClassifier(modelPath, libPath string) (*ONNXClassifier, error) {
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("onnx: expected a single input tensor, got %d", len(inputs))
	}
	nFeatures := int64(len(domain.FeatureOrder))
	if dims := inputs[0].Dimensions; len(dims) == 2 && dims[1] > 0 && dims[1] != nFeatures {
		return nil, fmt.Errorf("onnx: model expects %d features, record has %d", dims[1], nFeatures)
	}
	names := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		names[out.Name] = true
	}
	for _, required := range []string{onnxLabelOutput, onnxProbaOutput} {
		if !names[required] {
			return nil, fmt.Errorf("onnx: model missing output %q (export with zipmap disabled)", required)
		}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(1)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{onnxLabelOutput, onnxProbaOutput},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}
	return &ONNXClassifier{
		session:   session,
		inputName: inputs[0].Name,
		nFeatures: nFeatures,
	}, nil
}

func (c *ONNXClassifier) run(features []float64) (int64, float32, error) {
	if int64(len(features)) != c.nFeatures {
		return 0, 0, fmt.Errorf("onnx: expected %d features, got %d", c.nFeatures, len(features))
	}
	data := make([]float32, len(features))
	for i, v := range features {
		data[i] = float32(v)
	}

	in, err := ort.NewTensor(ort.NewShape(1, c.nFeatures), data)
	if err != nil {
		return 0, 0, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer in.Destroy()

	label, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		return 0, 0, fmt.Errorf("onnx: failed to create label tensor: %w", err)
	}
	defer label.Destroy()

	proba, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		return 0, 0, fmt.Errorf("onnx: failed to create probability tensor: %w", err)
	}
	defer proba.Destroy()

	if err := c.session.Run([]ort.Value{in}, []ort.Value{label, proba}); err != nil {
		return 0, 0, fmt.Errorf("onnx: inference failed: %w", err)
	}
	return label.GetData()[0], proba.GetData()[1], nil
}

func (c *ONNXClassifier) Predict(features []float64) (int, error) {
	label, _, err := c.run(features)
	return int(label), err
}

// PredictWithProba lee ambas salidas de una misma corrida.
func (c *ONNXClassifier) PredictWithProba(features []float64) (int, float64, error) {
	label, p, err := c.run(features)
	return int(label), float64(p), err
}

// Close libera la sesion.
func (c *ONNXClassifier) Close() error {
	return c.session.Destroy()
}

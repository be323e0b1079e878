package predictor

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/entity"
	"floor_predictor/pkg/errcodes"
)

// Feature vector layout expected by the storey regression model:
// area, footprint, height, year built. Missing optionals are zero.
const onnxFeatureCount = 4

// ONNX runs the storey model in-process. It is the production prediction
// backend when BACKEND_KIND=onnx.
type ONNX struct {
	// The session reuses its input/output tensors, so inference runs
	// are serialized.
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	modelVersion string
}

func NewONNX(modelPath string) (*ONNX, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("ort.InitializeEnvironment: %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, onnxFeatureCount))
	if err != nil {
		return nil, fmt.Errorf("ort.NewEmptyTensor(input): %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		inputTensor.Destroy()

		return nil, fmt.Errorf("ort.NewEmptyTensor(output): %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input"},
		[]string{"output"},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		nil,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()

		return nil, fmt.Errorf("ort.NewAdvancedSession: %w", err)
	}

	return &ONNX{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		modelVersion: filepath.Base(modelPath),
	}, nil
}

func (p *ONNX) Predict(
	ctx context.Context,
	descriptor entity.BuildingDescriptor,
) (entity.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return entity.PredictionResult{}, domain.WrapError(
			err, errcodes.BackendTimeout, "Prediction was cancelled",
		)
	}

	features := [onnxFeatureCount]float32{
		float32(descriptor.Area),
		float32(descriptor.Footprint),
	}

	if descriptor.Height != nil {
		features[2] = float32(*descriptor.Height)
	}

	if descriptor.YearBuilt != nil {
		features[3] = float32(*descriptor.YearBuilt)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	copy(p.inputTensor.GetData(), features[:])

	if err := p.session.Run(); err != nil {
		return entity.PredictionResult{}, domain.WrapError(
			err, errcodes.BackendComputationError, "Prediction backend failed to compute a result",
		)
	}

	floors := int(math.Round(float64(p.outputTensor.GetData()[0])))

	// Regression noise around zero rounds up to an empty building.
	if floors < 0 {
		floors = 0
	}

	return entity.PredictionResult{
		Floors:       floors,
		ModelVersion: p.modelVersion,
	}, nil
}

func (p *ONNX) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inputTensor != nil {
		p.inputTensor.Destroy()
	}

	if p.outputTensor != nil {
		p.outputTensor.Destroy()
	}

	if p.session != nil {
		p.session.Destroy()
	}

	ort.DestroyEnvironment() //nolint:errcheck
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/entity"
	"floor_predictor/internal/domain/value"
	"floor_predictor/pkg/contextx"
	"floor_predictor/pkg/errcodes"
	"floor_predictor/pkg/logx"
)

const defaultMaxConcurrentPredictions = 8

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Predictor is the prediction backend capability. Exactly one production
// implementation is injected at startup; tests inject a stub.
type Predictor interface {
	Predict(ctx context.Context, descriptor entity.BuildingDescriptor) (entity.PredictionResult, error)
}

type UrbanAPIClient interface {
	ScenarioLivingBuildings(ctx context.Context, scenarioID value.ScenarioID, token string) ([]entity.BuildingDescriptor, error)
}

type PredictionService struct {
	predictor     Predictor
	urbanAPI      UrbanAPIClient
	maxConcurrent int
}

func NewPredictionService(
	predictor Predictor,
	urbanAPI UrbanAPIClient,
) *PredictionService {
	return &PredictionService{
		predictor:     predictor,
		urbanAPI:      urbanAPI,
		maxConcurrent: defaultMaxConcurrentPredictions,
	}
}

func (s *PredictionService) WithMaxConcurrent(n int) *PredictionService {
	if n > 0 {
		s.maxConcurrent = n
	}

	return s
}

// PredictFloors runs a single prediction. Exactly one of result or error is
// produced; a negative floor count from the backend is treated as a failure.
func (s *PredictionService) PredictFloors(
	ctx context.Context,
	descriptor entity.BuildingDescriptor,
) (entity.PredictionResult, error) {
	result, err := s.predictor.Predict(ctx, descriptor)
	if err != nil {
		return entity.PredictionResult{}, fmt.Errorf("predictor.Predict: %w", err)
	}

	if result.Floors < 0 {
		return entity.PredictionResult{}, domain.NewError(
			errcodes.BackendComputationError,
			"Prediction backend returned an invalid floor count",
		)
	}

	return result, nil
}

// PredictScenarioFloors predicts floors for every living building in the
// scenario that lacks a known floor count. Buildings with a known count are
// passed through unchanged.
func (s *PredictionService) PredictScenarioFloors(
	ctx context.Context,
	scenarioID value.ScenarioID,
	token string,
) (entity.ScenarioPrediction, error) {
	buildings, err := s.urbanAPI.ScenarioLivingBuildings(ctx, scenarioID, token)
	if err != nil {
		return entity.ScenarioPrediction{}, fmt.Errorf("urbanAPI.ScenarioLivingBuildings: %w", err)
	}

	predicted := make([]entity.PredictedBuilding, len(buildings))

	var toPredict []int

	for i, building := range buildings {
		predicted[i] = entity.PredictedBuilding{
			Descriptor:  building,
			Storey:      building.Storey,
			IsPredicted: false,
		}

		if building.IsLiving && building.NeedsPrediction() {
			toPredict = append(toPredict, i)
		}
	}

	if len(toPredict) == 0 {
		return entity.ScenarioPrediction{}, domain.NewError(
			errcodes.NoBuildingsFound,
			"No living buildings with a missing floor count were found in the scenario",
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, i := range toPredict {
		g.Go(func() error {
			result, err := s.PredictFloors(gctx, predicted[i].Descriptor)
			if err != nil {
				return err
			}

			floors := result.Floors
			predicted[i].Storey = &floors
			predicted[i].IsPredicted = true

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return entity.ScenarioPrediction{}, fmt.Errorf("predict scenario buildings: %w", err)
	}

	logger(ctx).Info(
		"predicted building floors for scenario",
		logx.Stringer(logx.FieldScenarioID, scenarioID),
		slog.Int("total-buildings", len(buildings)),
		slog.Int("predicted-buildings", len(toPredict)),
	)

	return entity.ScenarioPrediction{Buildings: predicted}, nil
}

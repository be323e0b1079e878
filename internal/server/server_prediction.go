package server

import (
	"context"
	"fmt"
	"net/http"

	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/entity"
	"floor_predictor/internal/domain/value"
	"floor_predictor/pkg/contextx"
	"floor_predictor/pkg/errcodes"
	"floor_predictor/pkg/httpx/reply"
	"floor_predictor/pkg/httpx/req"
	"floor_predictor/pkg/rest"
)

type predictionService interface {
	PredictFloors(context.Context, entity.BuildingDescriptor) (entity.PredictionResult, error)
	PredictScenarioFloors(context.Context, value.ScenarioID, string) (entity.ScenarioPrediction, error)
}

type PredictionServer struct {
	predictionService predictionService
}

func NewPredictionServer(predictionService predictionService) PredictionServer {
	return PredictionServer{
		predictionService: predictionService,
	}
}

func (s PredictionServer) postV1PredictFloors(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.BuildingDescriptor

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := s.predictionService.PredictFloors(ctx, newDomainDescriptor(request))
	if err != nil {
		return fmt.Errorf("predictionService.PredictFloors: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPrediction(result))

	return nil
}

func (s PredictionServer) getV1ScenarioPredictFloors(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	scenarioID, err := value.ParseScenarioID(r.PathValue("scenario_id"))
	if err != nil {
		return fmt.Errorf("value.ParseScenarioID: %w", err)
	}

	token, err := contextx.AuthTokenFromContext(ctx)
	if err != nil {
		return domain.NewError(errcodes.TokenMissing, "Bearer token is required")
	}

	prediction, err := s.predictionService.PredictScenarioFloors(ctx, scenarioID, token.String())
	if err != nil {
		return fmt.Errorf("predictionService.PredictScenarioFloors: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTScenarioPrediction(prediction))

	return nil
}

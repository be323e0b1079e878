package server

import (
	"github.com/samber/lo"

	"floor_predictor/internal/domain/entity"
	"floor_predictor/pkg/lox"
	"floor_predictor/pkg/rest"
)

func newDomainDescriptor(descriptor rest.BuildingDescriptor) entity.BuildingDescriptor {
	// Required fields are pointers for validation only; req.Read guarantees
	// they are set by the time we get here.
	isLiving := true
	if descriptor.IsLiving != nil {
		isLiving = *descriptor.IsLiving
	}

	return entity.BuildingDescriptor{
		Area:       *descriptor.Area,
		Footprint:  *descriptor.Footprint,
		Height:     descriptor.Height,
		YearBuilt:  descriptor.YearBuilt,
		IsLiving:   isLiving,
		Geometry:   descriptor.Geometry,
		Attributes: descriptor.Attributes,
	}
}

func newRESTPrediction(result entity.PredictionResult) rest.Prediction {
	return rest.Prediction{
		Floors:       result.Floors,
		Confidence:   result.Confidence,
		ModelVersion: result.ModelVersion,
	}
}

func newRESTScenarioPrediction(prediction entity.ScenarioPrediction) rest.ScenarioPrediction {
	features := lox.Map(prediction.Buildings, func(building entity.PredictedBuilding) rest.Feature {
		return rest.Feature{
			Type:     "Feature",
			Geometry: building.Descriptor.Geometry,
			Properties: rest.BuildingFloors{
				BuildingID:       building.Descriptor.BuildingID,
				IsScenarioObject: building.Descriptor.IsScenarioObject,
				IsLiving:         building.Descriptor.IsLiving,
				Storey:           building.Storey,
				IsPredicted:      building.IsPredicted,
			},
		}
	})

	summary := lo.FilterMap(prediction.Buildings, func(building entity.PredictedBuilding, _ int) (rest.BuildingSummary, bool) {
		if !building.IsPredicted {
			return rest.BuildingSummary{}, false
		}

		return rest.BuildingSummary{
			BuildingID:       building.Descriptor.BuildingID,
			IsScenarioObject: building.Descriptor.IsScenarioObject,
			Storey:           building.Storey,
		}, true
	})

	return rest.ScenarioPrediction{
		GeoJSON: rest.FeatureCollection{
			Type:     "FeatureCollection",
			Features: features,
		},
		Summary: summary,
	}
}

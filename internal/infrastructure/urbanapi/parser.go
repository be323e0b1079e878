package urbanapi

import (
	jsoniter "github.com/json-iterator/go"

	"floor_predictor/internal/domain/entity"
)

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry   jsoniter.RawMessage `json:"geometry"`
	Properties featureProperties   `json:"properties"`
}

type featureProperties struct {
	Building         *buildingProperties `json:"building"`
	IsScenarioObject bool                `json:"is_scenario_physical_object"`
}

type buildingProperties struct {
	ID         *int64         `json:"id"`
	Floors     *int           `json:"floors"`
	Properties map[string]any `json:"properties"`
}

// parseBuildings turns a feature collection into building descriptors.
// Features without a building id carry no usable object and are skipped.
func parseBuildings(collection featureCollection) []entity.BuildingDescriptor {
	buildings := make([]entity.BuildingDescriptor, 0, len(collection.Features))

	for _, f := range collection.Features {
		if f.Properties.Building == nil || f.Properties.Building.ID == nil {
			continue
		}

		building := f.Properties.Building

		buildings = append(buildings, entity.BuildingDescriptor{
			BuildingID:       *building.ID,
			Area:             floatProp(building.Properties, "building_area"),
			Footprint:        floatProp(building.Properties, "footprint_area"),
			Height:           floatPropPtr(building.Properties, "height"),
			YearBuilt:        intPropPtr(building.Properties, "year_built"),
			IsLiving:         true, // the request already filters by the living building type
			IsScenarioObject: f.Properties.IsScenarioObject,
			Storey:           building.Floors,
			Geometry:         f.Geometry,
		})
	}

	return buildings
}

func floatProp(props map[string]any, key string) float64 {
	if v := floatPropPtr(props, key); v != nil {
		return *v
	}

	return 0
}

func floatPropPtr(props map[string]any, key string) *float64 {
	if v, ok := props[key].(float64); ok {
		return &v
	}

	return nil
}

func intPropPtr(props map[string]any, key string) *int {
	if v, ok := props[key].(float64); ok {
		i := int(v)

		return &i
	}

	return nil
}

// Wire types for the public API. Kept in sync with the embedded OpenAPI
// document served at /openapi.
package rest

import "encoding/json"

// BuildingDescriptor describes one building for floor prediction. Required
// fields use pointers so that an absent field is distinguishable from zero.
type BuildingDescriptor struct {
	// Area is the total living area of the building, m^2.
	Area *float64 `json:"area" validate:"required,gt=0"`

	// Footprint is the ground-floor footprint area, m^2.
	Footprint *float64 `json:"footprint" validate:"required,gt=0"`

	// Height of the building, meters.
	Height *float64 `json:"height,omitempty" validate:"omitempty,gte=0"`

	YearBuilt *int  `json:"yearBuilt,omitempty" validate:"omitempty,gte=0"`
	IsLiving  *bool `json:"isLiving,omitempty"`

	// Geometry is an optional GeoJSON geometry, carried opaquely.
	Geometry json.RawMessage `json:"geometry,omitempty"`

	Attributes map[string]string `json:"attributes,omitempty"`
}

// Prediction is the predicted floor count with backend metadata.
type Prediction struct {
	Floors       int      `json:"floors"`
	Confidence   *float64 `json:"confidence,omitempty"`
	ModelVersion string   `json:"modelVersion,omitempty"`
}

// BuildingFloors are per-building properties in the scenario GeoJSON response.
type BuildingFloors struct {
	BuildingID       int64 `json:"building_id"`
	IsScenarioObject bool  `json:"is_scenario_object"`
	IsLiving         bool  `json:"is_living"`
	Storey           *int  `json:"storey"`
	IsPredicted      bool  `json:"is_predicted"`
}

// BuildingSummary lists buildings whose floor count was predicted.
type BuildingSummary struct {
	BuildingID       int64 `json:"building_id"`
	IsScenarioObject bool  `json:"is_scenario_object"`
	Storey           *int  `json:"storey"`
}

type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties BuildingFloors  `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// ScenarioPrediction is the scenario endpoint response.
type ScenarioPrediction struct {
	GeoJSON FeatureCollection `json:"geojson"`
	Summary []BuildingSummary `json:"summary"`
}

type Ping struct {
	Message string `json:"message"`
}

// Error is the error response model.
type Error struct {
	// Code is the stable error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

package entity

// PredictionResult holds a predicted floor count. Floors is never negative.
type PredictionResult struct {
	Floors       int
	Confidence   *float64
	ModelVersion string
}

// PredictedBuilding pairs a building with its (possibly predicted) floors.
type PredictedBuilding struct {
	Descriptor  BuildingDescriptor
	Storey      *int
	IsPredicted bool
}

// ScenarioPrediction is the outcome of a scenario-wide prediction run.
type ScenarioPrediction struct {
	Buildings []PredictedBuilding
}

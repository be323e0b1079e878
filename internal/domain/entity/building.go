package entity

// BuildingDescriptor is the immutable per-request input to the prediction
// pipeline. It is built once from the request payload (or from an Urban API
// feature) and discarded when the request completes.
type BuildingDescriptor struct {
	BuildingID       int64
	Area             float64
	Footprint        float64
	Height           *float64
	YearBuilt        *int
	IsLiving         bool
	IsScenarioObject bool

	// Storey is the known floor count, nil when it has to be predicted.
	Storey *int

	// Geometry is a raw GeoJSON geometry, carried opaquely through the
	// pipeline and echoed back in scenario responses.
	Geometry []byte

	Attributes map[string]string
}

// NeedsPrediction reports whether the building lacks a floor count.
func (d BuildingDescriptor) NeedsPrediction() bool {
	return d.Storey == nil
}

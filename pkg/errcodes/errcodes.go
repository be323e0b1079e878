package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	TokenMissing        failure.ErrorCode = "TokenMissing"

	// Prediction backend failures. Stable codes exposed to clients, raw
	// backend errors stay in server logs.
	BackendUnavailable      failure.ErrorCode = "BackendUnavailable"
	BackendComputationError failure.ErrorCode = "BackendComputationError"
	BackendTimeout          failure.ErrorCode = "BackendTimeout"

	// Urban API scenario pipeline.
	ScenarioNotFound    failure.ErrorCode = "ScenarioNotFound"
	NoBuildingsFound    failure.ErrorCode = "NoBuildingsFound"
	UrbanAPIUnavailable failure.ErrorCode = "UrbanAPIUnavailable"
	UrbanAPIError       failure.ErrorCode = "UrbanAPIError"

	InvalidScenarioID failure.ErrorCode = "InvalidScenarioID"
	InvalidArea       failure.ErrorCode = "InvalidArea"
	InvalidFootprint  failure.ErrorCode = "InvalidFootprint"
	InvalidHeight     failure.ErrorCode = "InvalidHeight"
	InvalidDescriptor failure.ErrorCode = "InvalidDescriptor"
)

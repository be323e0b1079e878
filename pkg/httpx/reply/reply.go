package reply

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"floor_predictor/pkg/contextx"
	"floor_predictor/pkg/errcodes"
	"floor_predictor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

// codedError is a domain error carrying a stable code and a message safe to
// expose to clients. The underlying cause never reaches the response body.
type codedError interface {
	ErrorCode() failure.ErrorCode
	SafeMessage() string
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	response := errorResponse{
		Code:      "",
		Message:   "",
		SupportID: supportID(ctx),
	}

	var coded codedError
	if errors.As(err, &coded) {
		response.Code = coded.ErrorCode().String()
		response.Message = coded.SafeMessage()

		JSON(ctx, w, statusForCode(coded.ErrorCode()), response)

		return
	}

	response.Code = failure.Code(err).String()
	response.Message = failure.Description(err)

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsUnauthorizedError(err):
		JSON(ctx, w, http.StatusUnauthorized, response)
	case failure.IsForbiddenError(err):
		response.WithDefaultCode(errcodes.Forbidden)
		JSON(ctx, w, http.StatusForbidden, response)
	default:
		// Unclassified errors must not leak internals.
		response.Code = errcodes.InternalServerError.String()
		response.Message = "Internal server error"
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func statusForCode(code failure.ErrorCode) int {
	switch code {
	case errcodes.BackendUnavailable, errcodes.UrbanAPIUnavailable:
		return http.StatusServiceUnavailable
	case errcodes.BackendTimeout, errcodes.TimeoutExceeded:
		return http.StatusGatewayTimeout
	case errcodes.BackendComputationError, errcodes.UrbanAPIError:
		return http.StatusBadGateway
	case errcodes.NotFound, errcodes.ScenarioNotFound, errcodes.NoBuildingsFound:
		return http.StatusNotFound
	case errcodes.TokenMissing:
		return http.StatusUnauthorized
	case errcodes.Forbidden:
		return http.StatusForbidden
	case errcodes.ValidationError, errcodes.InvalidScenarioID, errcodes.InvalidArea,
		errcodes.InvalidFootprint, errcodes.InvalidHeight, errcodes.InvalidDescriptor:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}

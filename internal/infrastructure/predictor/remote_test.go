package predictor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"floor_predictor/internal/config"
	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/entity"
	"floor_predictor/internal/infrastructure/predictor"
	"floor_predictor/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestRemotePredict(t *testing.T) {
	rq := require.New(t)

	var (
		gotAuthorization string
		gotRequest       map[string]any
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")

		json.NewDecoder(r.Body).Decode(&gotRequest) //nolint:errcheck

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"floors": 5.4, "confidence": 0.87, "model_version": "storey-v2"}`)) //nolint:errcheck
	}))
	defer server.Close()

	backend := predictor.NewRemote(config.Backend{
		Kind:      config.BackendKindRemote,
		Endpoint:  server.URL,
		AuthToken: "service-token",
		Timeout:   5 * time.Second,
	}, 1024)

	result, err := backend.Predict(context.Background(), entity.BuildingDescriptor{
		Area:      1000,
		Footprint: 200,
		IsLiving:  true,
	})
	rq.NoError(err)

	rq.Equal(5, result.Floors)
	rq.NotNil(result.Confidence)
	rq.InDelta(0.87, *result.Confidence, 0.001)
	rq.Equal("storey-v2", result.ModelVersion)
	rq.Equal("Bearer service-token", gotAuthorization)
	rq.InDelta(1000.0, gotRequest["area"], 0.001)
	rq.InDelta(200.0, gotRequest["footprint"], 0.001)
}

func TestRemotePredictComputationError(t *testing.T) {
	rq := require.New(t)

	const rawBackendError = "ValueError: matrix dimensions mismatch"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, rawBackendError, http.StatusInternalServerError)
	}))
	defer server.Close()

	backend := predictor.NewRemote(config.Backend{
		Kind:     config.BackendKindRemote,
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	}, 1024)

	_, err := backend.Predict(context.Background(), entity.BuildingDescriptor{Area: 1, Footprint: 1})
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.BackendComputationError, code)

	// Raw backend error text stays server-side.
	var appErr *domain.AppError
	rq.ErrorAs(err, &appErr)
	rq.NotContains(appErr.SafeMessage(), rawBackendError)
}

func TestRemotePredictUnavailable(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused

	backend := predictor.NewRemote(config.Backend{
		Kind:     config.BackendKindRemote,
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	}, 1024)

	_, err := backend.Predict(context.Background(), entity.BuildingDescriptor{Area: 1, Footprint: 1})
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.BackendUnavailable, code)
}

func TestRemotePredictTimeout(t *testing.T) {
	rq := require.New(t)

	const timeout = 100 * time.Millisecond

	block := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer server.Close()
	// Unblock the handler before the deferred server.Close, which waits
	// for in-flight requests to finish.
	defer close(block)

	backend := predictor.NewRemote(config.Backend{
		Kind:     config.BackendKindRemote,
		Endpoint: server.URL,
		Timeout:  timeout,
	}, 1024)

	start := time.Now()

	_, err := backend.Predict(context.Background(), entity.BuildingDescriptor{Area: 1, Footprint: 1})
	rq.Error(err)

	// Within the configured bound plus a scheduling margin.
	rq.Less(time.Since(start), timeout+2*time.Second)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.BackendTimeout, code)
}

func TestRemotePing(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	backend := predictor.NewRemote(config.Backend{
		Kind:           config.BackendKindRemote,
		Endpoint:       server.URL + "/predict",
		HealthEndpoint: server.URL + "/healthz",
		Timeout:        5 * time.Second,
	}, 1024)

	rq.NoError(backend.Ping(context.Background()))

	broken := predictor.NewRemote(config.Backend{
		Kind:           config.BackendKindRemote,
		Endpoint:       server.URL + "/predict",
		HealthEndpoint: server.URL + "/missing",
		Timeout:        5 * time.Second,
	}, 1024)

	rq.Error(broken.Ping(context.Background()))
}

package urbanapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"floor_predictor/internal/config"
	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/value"
	"floor_predictor/internal/infrastructure/urbanapi"
	"floor_predictor/pkg/errcodes"
)

const scenarioResponse = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[30.3, 59.9], [30.4, 59.9], [30.4, 60.0], [30.3, 59.9]]]},
			"properties": {
				"is_scenario_physical_object": true,
				"building": {
					"id": 101,
					"floors": null,
					"properties": {"building_area": 1000.0, "footprint_area": 200.0, "height": 15.5}
				}
			}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[30.1, 59.8], [30.2, 59.8], [30.2, 59.9], [30.1, 59.8]]]},
			"properties": {
				"is_scenario_physical_object": false,
				"building": {
					"id": 102,
					"floors": 9,
					"properties": {"building_area": 800.0, "footprint_area": 300.0, "year_built": 1975}
				}
			}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [30.0, 59.7]},
			"properties": {"is_scenario_physical_object": false, "building": null}
		}
	]
}`

func newUrbanAPIStub(t *testing.T, scenarioStatus int, scenarioBody string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var typeLookups atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/physical_object_types", func(w http.ResponseWriter, r *http.Request) {
		typeLookups.Add(1)

		if r.URL.Query().Get("name") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"physical_object_type_id": 4, "name": "living building"}]`)) //nolint:errcheck
	})
	mux.HandleFunc("/api/v1/scenarios/77/physical_objects_with_geometry", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer user-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(scenarioStatus)
		w.Write([]byte(scenarioBody)) //nolint:errcheck
	})
	mux.HandleFunc("/health_check/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Pong!"}`)) //nolint:errcheck
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &typeLookups
}

func newClient(host string) *urbanapi.Client {
	return urbanapi.NewClient(config.UrbanAPI{
		Host:             host,
		PingTimeout:      2 * time.Second,
		OperationTimeout: 5 * time.Second,
	}, 1024)
}

func TestScenarioLivingBuildings(t *testing.T) {
	rq := require.New(t)

	server, typeLookups := newUrbanAPIStub(t, http.StatusOK, scenarioResponse)
	client := newClient(server.URL)

	buildings, err := client.ScenarioLivingBuildings(context.Background(), value.ScenarioID(77), "user-token")
	rq.NoError(err)

	// The feature without a building object is dropped.
	rq.Len(buildings, 2)

	first := buildings[0]
	rq.Equal(int64(101), first.BuildingID)
	rq.InDelta(1000.0, first.Area, 0.001)
	rq.InDelta(200.0, first.Footprint, 0.001)
	rq.NotNil(first.Height)
	rq.InDelta(15.5, *first.Height, 0.001)
	rq.Nil(first.YearBuilt)
	rq.True(first.IsLiving)
	rq.True(first.IsScenarioObject)
	rq.Nil(first.Storey)
	rq.True(first.NeedsPrediction())
	rq.Contains(string(first.Geometry), "Polygon")

	second := buildings[1]
	rq.Equal(int64(102), second.BuildingID)
	rq.NotNil(second.Storey)
	rq.Equal(9, *second.Storey)
	rq.NotNil(second.YearBuilt)
	rq.Equal(1975, *second.YearBuilt)
	rq.False(second.NeedsPrediction())

	// The physical object type id is cached after the first lookup.
	_, err = client.ScenarioLivingBuildings(context.Background(), value.ScenarioID(77), "user-token")
	rq.NoError(err)
	rq.Equal(int32(1), typeLookups.Load())
}

func TestScenarioLivingBuildingsEmpty(t *testing.T) {
	rq := require.New(t)

	server, _ := newUrbanAPIStub(t, http.StatusOK, `{"type": "FeatureCollection", "features": []}`)
	client := newClient(server.URL)

	_, err := client.ScenarioLivingBuildings(context.Background(), value.ScenarioID(77), "user-token")
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.NoBuildingsFound, code)
}

func TestScenarioLivingBuildingsNotFound(t *testing.T) {
	rq := require.New(t)

	server, _ := newUrbanAPIStub(t, http.StatusNotFound, `{"detail": "scenario not found"}`)
	client := newClient(server.URL)

	_, err := client.ScenarioLivingBuildings(context.Background(), value.ScenarioID(77), "user-token")
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.ScenarioNotFound, code)
}

func TestScenarioLivingBuildingsForbidden(t *testing.T) {
	rq := require.New(t)

	server, _ := newUrbanAPIStub(t, http.StatusOK, scenarioResponse)
	client := newClient(server.URL)

	_, err := client.ScenarioLivingBuildings(context.Background(), value.ScenarioID(77), "wrong-token")
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.Forbidden, code)
}

func TestScenarioLivingBuildingsUnavailable(t *testing.T) {
	rq := require.New(t)

	server, _ := newUrbanAPIStub(t, http.StatusOK, scenarioResponse)
	server.Close()

	client := newClient(server.URL)

	_, err := client.ScenarioLivingBuildings(context.Background(), value.ScenarioID(77), "user-token")
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.UrbanAPIUnavailable, code)
}

func TestPing(t *testing.T) {
	rq := require.New(t)

	server, _ := newUrbanAPIStub(t, http.StatusOK, scenarioResponse)
	client := newClient(server.URL)

	rq.NoError(client.Ping(context.Background()))

	server.Close()
	rq.Error(client.Ping(context.Background()))
}

func TestHostNormalization(t *testing.T) {
	rq := require.New(t)

	server, _ := newUrbanAPIStub(t, http.StatusOK, scenarioResponse)

	// Schema-less host with a trailing slash still reaches the server.
	bare := server.URL[len("http://"):] + "/"
	client := newClient(bare)

	rq.NoError(client.Ping(context.Background()))
}

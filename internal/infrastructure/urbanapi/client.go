package urbanapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"floor_predictor/internal/config"
	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/entity"
	"floor_predictor/internal/domain/value"
	"floor_predictor/pkg/errcodes"
	"floor_predictor/pkg/httpx"
	"floor_predictor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	livingBuildingTypeName = "жилой дом"

	maxErrorBodyLen = 4096
)

// Client talks to the Urban API, the upstream holding project scenarios and
// their physical objects.
type Client struct {
	host             string
	pingTimeout      time.Duration
	operationTimeout time.Duration
	httpClient       *http.Client

	mu          sync.Mutex
	typeIDCache map[string]int64
}

func NewClient(cfg config.UrbanAPI, logFieldMaxLen int) *Client {
	host := strings.TrimRight(cfg.Host, "/")
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host
	}

	return &Client{
		host:             host,
		pingTimeout:      cfg.PingTimeout,
		operationTimeout: cfg.OperationTimeout,
		httpClient: &http.Client{ //nolint:exhaustruct
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
		},
		typeIDCache: make(map[string]int64),
	}
}

// ScenarioLivingBuildings fetches the scenario's living buildings with their
// geometry. The caller's bearer token is forwarded as-is.
func (c *Client) ScenarioLivingBuildings(
	ctx context.Context,
	scenarioID value.ScenarioID,
	token string,
) ([]entity.BuildingDescriptor, error) {
	typeID, err := c.physicalObjectTypeID(ctx, livingBuildingTypeName)
	if err != nil {
		return nil, fmt.Errorf("physicalObjectTypeID: %w", err)
	}

	path := fmt.Sprintf("/api/v1/scenarios/%d/physical_objects_with_geometry", scenarioID.Int64())
	query := url.Values{"physical_object_type_id": {fmt.Sprint(typeID)}}

	var collection featureCollection

	if err := c.getJSON(ctx, path, query, token, &collection); err != nil {
		return nil, err
	}

	buildings := parseBuildings(collection)
	if len(buildings) == 0 {
		return nil, domain.NewError(
			errcodes.NoBuildingsFound,
			"No living buildings were found in the scenario",
		)
	}

	return buildings, nil
}

// Ping reports whether the Urban API answers its health check. Used by the
// service watcher only.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/health_check/ping", http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var pong struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&pong); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	if pong.Message != "Pong!" {
		return fmt.Errorf("unexpected ping response %q", pong.Message)
	}

	return nil
}

func (c *Client) physicalObjectTypeID(ctx context.Context, name string) (int64, error) {
	c.mu.Lock()
	typeID, ok := c.typeIDCache[name]
	c.mu.Unlock()

	if ok {
		return typeID, nil
	}

	var types []struct {
		PhysicalObjectTypeID int64 `json:"physical_object_type_id"`
	}

	query := url.Values{"name": {name}}

	if err := c.getJSON(ctx, "/api/v1/physical_object_types", query, "", &types); err != nil {
		return 0, err
	}

	if len(types) != 1 {
		return 0, domain.NewError(
			errcodes.UrbanAPIError,
			"Urban API returned no unique physical object type for living buildings",
		)
	}

	typeID = types[0].PhysicalObjectTypeID

	c.mu.Lock()
	c.typeIDCache[name] = typeID
	c.mu.Unlock()

	return typeID, nil
}

func (c *Client) getJSON(
	ctx context.Context,
	path string,
	query url.Values,
	token string,
	out any,
) error {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout)
	defer cancel()

	endpoint := c.host + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.WrapError(err, errcodes.TimeoutExceeded, "Urban API timed out")
		}

		return domain.WrapError(err, errcodes.UrbanAPIUnavailable, "Urban API is unavailable")
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.WrapError(err, errcodes.UrbanAPIError, "Urban API returned a malformed response")
	}

	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen)) //nolint:errcheck

	cause := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domain.WrapError(cause, errcodes.ScenarioNotFound, "Scenario was not found")
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.WrapError(cause, errcodes.Forbidden, "Access to the scenario is forbidden")
	default:
		return domain.WrapError(cause, errcodes.UrbanAPIError, "Urban API request failed")
	}
}

package predictor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"floor_predictor/internal/config"
	"floor_predictor/internal/domain"
	"floor_predictor/internal/domain/entity"
	"floor_predictor/pkg/errcodes"
	"floor_predictor/pkg/httpx"
	"floor_predictor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const maxErrorBodyLen = 4096

// Remote calls an external model server over HTTP. It is the production
// prediction backend when BACKEND_KIND=remote.
type Remote struct {
	endpoint       string
	healthEndpoint string
	timeout        time.Duration
	httpClient     *http.Client
}

func NewRemote(cfg config.Backend, logFieldMaxLen int) *Remote {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	if cfg.AuthToken != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, staticTokenAuthenticator{token: cfg.AuthToken})
	}

	return &Remote{
		endpoint:       cfg.Endpoint,
		healthEndpoint: cfg.HealthEndpoint,
		timeout:        cfg.Timeout,
		httpClient:     &http.Client{Transport: transport}, //nolint:exhaustruct
	}
}

type remoteRequest struct {
	Area       float64           `json:"area"`
	Footprint  float64           `json:"footprint"`
	Height     *float64          `json:"height,omitempty"`
	YearBuilt  *int              `json:"year_built,omitempty"`
	IsLiving   bool              `json:"is_living"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type remoteResponse struct {
	Floors       float64  `json:"floors"`
	Confidence   *float64 `json:"confidence,omitempty"`
	ModelVersion string   `json:"model_version,omitempty"`
}

func (r *Remote) Predict(
	ctx context.Context,
	descriptor entity.BuildingDescriptor,
) (entity.PredictionResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	body, err := json.Marshal(remoteRequest{
		Area:       descriptor.Area,
		Footprint:  descriptor.Footprint,
		Height:     descriptor.Height,
		YearBuilt:  descriptor.YearBuilt,
		IsLiving:   descriptor.IsLiving,
		Attributes: descriptor.Attributes,
	})
	if err != nil {
		return entity.PredictionResult{}, fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return entity.PredictionResult{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return entity.PredictionResult{}, domain.WrapError(
				err, errcodes.BackendTimeout, "Prediction backend timed out",
			)
		}

		return entity.PredictionResult{}, domain.WrapError(
			err, errcodes.BackendUnavailable, "Prediction backend is unavailable",
		)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen)) //nolint:errcheck

		return entity.PredictionResult{}, domain.WrapError(
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody),
			errcodes.BackendComputationError,
			"Prediction backend failed to compute a result",
		)
	}

	var out remoteResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entity.PredictionResult{}, domain.WrapError(
			err, errcodes.BackendComputationError, "Prediction backend returned a malformed response",
		)
	}

	return entity.PredictionResult{
		Floors:       int(math.Round(out.Floors)),
		Confidence:   out.Confidence,
		ModelVersion: out.ModelVersion,
	}, nil
}

// Ping reports whether the model server answers on its health endpoint.
// Used by the service watcher only, never on the request path.
func (r *Remote) Ping(ctx context.Context) error {
	if r.healthEndpoint == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.healthEndpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

type staticTokenAuthenticator struct {
	token string
}

func (a staticTokenAuthenticator) Authenticate(context.Context) error {
	return nil
}

func (a staticTokenAuthenticator) BearerToken() string {
	return a.token
}

package httpx_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"floor_predictor/pkg/httpx"
	"floor_predictor/pkg/logx"
)

func TestLoggingRoundTripper(t *testing.T) {
	const testResponseBody = `{"floors":5,"token":"secret"}`

	rq := require.New(t)

	testCases := []struct {
		name         string
		handlerFunc  http.HandlerFunc
		statusCode   int
		responseBody string
	}{
		{
			name: "Status 200",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(testResponseBody)) //nolint:errcheck
			},
			statusCode:   http.StatusOK,
			responseBody: testResponseBody,
		},
		{
			name: "Status 502",
			handlerFunc: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			statusCode:   http.StatusBadGateway,
			responseBody: "",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(*testing.T) {
			server := httptest.NewServer(tc.handlerFunc)
			defer server.Close()

			client := &http.Client{
				Transport: httpx.NewLoggingRoundTripper(
					http.DefaultTransport,
					httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
					httpx.WithLogFieldMaxLen(1024),
				),
			}

			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			bodyBytes, err := io.ReadAll(resp.Body)
			rq.NoError(err)

			rq.Equal(tc.responseBody, string(bodyBytes))
		})
	}
}

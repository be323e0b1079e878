package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"floor_predictor/pkg/contextx"
	"floor_predictor/pkg/httpx/reply"
	"floor_predictor/pkg/logx"
	"floor_predictor/pkg/middlewarex"
)

// NewRouter assembles the router with the full middleware chain.
func NewRouter(s Server, logFieldMaxLen int) chi.Router {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.Metrics,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
		authToken,
	)

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Get("/", handler(s.redirectToDocs))
		r.Get("/docs", handler(s.getDocs))
		r.Get("/openapi", handler(s.getOpenAPI))
		r.Get("/health_check/ping", handler(s.getPing))

		r.Route("/api", func(r chi.Router) {
			r.Get("/", handler(s.redirectToDocs))

			r.Route("/v1", func(r chi.Router) {
				// unauthorized zone
				r.Post("/predict/floors", handler(s.postV1PredictFloors))

				// bearer token is forwarded to the Urban API
				r.Get("/scenarios/{scenario_id}/predict/floors", handler(s.getV1ScenarioPredictFloors))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}

// authToken puts the inbound bearer token into the context. Handlers that
// need one decide themselves whether its absence is an error.
func authToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			ctx := contextx.WithAuthToken(r.Context(), contextx.AuthToken(token))
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"floor_predictor/internal/config"
	service "floor_predictor/internal/domain/service/prediction"
	"floor_predictor/internal/infrastructure/predictor"
	"floor_predictor/internal/infrastructure/urbanapi"
	"floor_predictor/internal/server"
	"floor_predictor/internal/worker"
	"floor_predictor/pkg/application/modules"
	"floor_predictor/pkg/contextx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{ //nolint:exhaustruct
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", "error", err)
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error {
	// 1. Config. An invalid config means the process never serves traffic.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	log = newLogger(cfg.Log)
	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	// 2. Prediction backend
	backend, closeBackend, err := newPredictor(cfg.Backend, cfg.HTTP.LogFieldMaxLen)
	if err != nil {
		return fmt.Errorf("prediction backend: %w", err)
	}
	defer closeBackend()

	log.Info("prediction backend ready", "kind", cfg.Backend.Kind)

	// 3. Urban API client
	urbanClient := urbanapi.NewClient(cfg.UrbanAPI, cfg.HTTP.LogFieldMaxLen)

	// 4. Domain service and HTTP surface
	predictionService := service.NewPredictionService(backend, urbanClient)

	router := server.NewRouter(server.NewServer(
		server.NewPredictionServer(predictionService),
		server.NewSystemServer(),
	), cfg.HTTP.LogFieldMaxLen)

	// 5. Servers and workers
	g, gctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.Address,
	}.Run(gctx, g)

	if !cfg.Metrics.Disable {
		modules.MetricServer{
			ListenAddress: cfg.Metrics.Address,
		}.Run(gctx, g)
	}

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(gctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return gctx
		},
	})

	watcher := worker.NewServiceWatcher().Watch("urban-api", urbanClient)

	if remote, ok := backend.(*predictor.Remote); ok && cfg.Backend.HealthEndpoint != "" {
		watcher.Watch("prediction-backend", remote)
	}

	g.Go(func() error {
		return watcher.Run(gctx)
	})

	return g.Wait() //nolint:wrapcheck
}

func newLogger(cfg config.Log) *slog.Logger {
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{ //nolint:exhaustruct
			Level: cfg.SlogLevel(),
		}))
	}

	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{ //nolint:exhaustruct
		Level: cfg.SlogLevel(),
	}))
}

func newPredictor(cfg config.Backend, logFieldMaxLen int) (service.Predictor, func(), error) {
	switch cfg.Kind {
	case config.BackendKindONNX:
		onnx, err := predictor.NewONNX(cfg.ModelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("predictor.NewONNX: %w", err)
		}

		return onnx, onnx.Close, nil
	default:
		return predictor.NewRemote(cfg, logFieldMaxLen), func() {}, nil
	}
}

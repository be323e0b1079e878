package worker

import (
	"context"
	"log/slog"
	"time"

	"floor_predictor/pkg/contextx"
	"floor_predictor/pkg/logx"
	"floor_predictor/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultCheckInterval = 30 * time.Second

// Pinger is a health check of one external dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ServiceWatcher periodically pings external dependencies, keeps the
// external_service_up gauge and logs state transitions. It is purely
// observational, the request path never consults it.
type ServiceWatcher struct {
	interval time.Duration
	services map[string]Pinger
	lastUp   map[string]bool
}

func NewServiceWatcher() *ServiceWatcher {
	return &ServiceWatcher{
		interval: defaultCheckInterval,
		services: make(map[string]Pinger),
		lastUp:   make(map[string]bool),
	}
}

func (w *ServiceWatcher) WithInterval(interval time.Duration) *ServiceWatcher {
	if interval > 0 {
		w.interval = interval
	}

	return w
}

// Watch registers a dependency. Not safe to call after Run has started.
func (w *ServiceWatcher) Watch(name string, pinger Pinger) *ServiceWatcher {
	w.services[name] = pinger
	w.lastUp[name] = true

	return w
}

func (w *ServiceWatcher) Run(ctx context.Context) error {
	if len(w.services) == 0 {
		return nil
	}

	w.checkAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.checkAll(ctx)
		}
	}
}

func (w *ServiceWatcher) checkAll(ctx context.Context) {
	for name, pinger := range w.services {
		err := pinger.Ping(ctx)
		up := err == nil

		if up {
			metrics.ExternalServiceUp.WithLabelValues(name).Set(1)
		} else {
			metrics.ExternalServiceUp.WithLabelValues(name).Set(0)
		}

		if up != w.lastUp[name] {
			if up {
				logger(ctx).Info("external service is back up", slog.String(logx.FieldService, name))
			} else {
				logger(ctx).Warn(
					"external service is down",
					slog.String(logx.FieldService, name),
					logx.Error(err),
				)
			}
		}

		w.lastUp[name] = up
	}
}

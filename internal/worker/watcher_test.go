package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"floor_predictor/internal/worker"
	"floor_predictor/pkg/metrics"
)

type flakyPinger struct {
	calls   atomic.Int32
	healthy atomic.Bool
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls.Add(1)

	if p.healthy.Load() {
		return nil
	}

	return errors.New("connection refused")
}

func TestServiceWatcher(t *testing.T) {
	rq := require.New(t)

	pinger := &flakyPinger{}
	pinger.healthy.Store(true)

	watcher := worker.NewServiceWatcher().
		WithInterval(10 * time.Millisecond).
		Watch("urban-api", pinger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)

		rq.NoError(watcher.Run(ctx))
	}()

	rq.Eventually(func() bool {
		return pinger.calls.Load() >= 2 &&
			testutil.ToFloat64(metrics.ExternalServiceUp.WithLabelValues("urban-api")) == 1
	}, time.Second, 5*time.Millisecond)

	pinger.healthy.Store(false)

	rq.Eventually(func() bool {
		return testutil.ToFloat64(metrics.ExternalServiceUp.WithLabelValues("urban-api")) == 0
	}, time.Second, 5*time.Millisecond)

	pinger.healthy.Store(true)

	rq.Eventually(func() bool {
		return testutil.ToFloat64(metrics.ExternalServiceUp.WithLabelValues("urban-api")) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestServiceWatcherNoServices(t *testing.T) {
	rq := require.New(t)

	// Nothing registered, Run returns immediately.
	rq.NoError(worker.NewServiceWatcher().Run(context.Background()))
}

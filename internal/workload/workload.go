// Package workload drives a set of metrics from several goroutines so that
// `metricsdump run` has something to dump.
package workload

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/yndnr/metricsdump/internal/telemetry/logger"
	"github.com/yndnr/metricsdump/pkg/metrics"
)

// Names of the metrics the workload updates.
const (
	MetricRequests = "http_requests"
	MetricErrors   = "http_errors"
	MetricCPU      = "cpu_utilization"
	MetricInflight = "inflight_requests"
)

// Config configures a Generator.
type Config struct {
	Workers int
	Tick    time.Duration
	// ErrorRate is the probability in [0,1] that a request counts as failed.
	ErrorRate float64
}

// Generator updates request, error, cpu and inflight metrics.
type Generator struct {
	cfg    Config
	log    logger.Logger

	requests metrics.Counter
	errors   metrics.Counter
	cpu      metrics.Gauge
	inflight metrics.Gauge
}

// New resolves the workload metrics in the registry carried by ctx (or the
// default registry) and returns a Generator updating them. It logs through
// the logger carried by ctx.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	if cfg.ErrorRate == 0 {
		cfg.ErrorRate = 0.05
	}

	reg := metrics.FromContext(ctx)
	g := &Generator{cfg: cfg, log: logger.L(ctx).Named("workload")}

	var err error
	if g.requests, err = reg.Counter(MetricRequests); err != nil {
		return nil, err
	}
	if g.errors, err = reg.Counter(MetricErrors); err != nil {
		return nil, err
	}
	if g.cpu, err = reg.Gauge(MetricCPU); err != nil {
		return nil, err
	}
	if g.inflight, err = reg.Gauge(MetricInflight); err != nil {
		return nil, err
	}
	return g, nil
}

// Run starts the workers and blocks until ctx is done and all of them
// have returned.
func (g *Generator) Run(ctx context.Context) {
	if g.cfg.Workers <= 0 || g.cfg.Tick <= 0 {
		g.log.Info("workload disabled")
		<-ctx.Done()
		return
	}

	g.log.Info("workload started", "workers", g.cfg.Workers, "tick", g.cfg.Tick)

	var wg sync.WaitGroup
	for i := range g.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.worker(ctx, i)
		}()
	}
	wg.Wait()

	g.log.Info("workload stopped")
}

func (g *Generator) worker(ctx context.Context, id int) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(id)))

	ticker := time.NewTicker(g.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.step(rng)
		}
	}
}

// step simulates one request.
func (g *Generator) step(rng *rand.Rand) {
	g.inflight.Add(1)
	defer g.inflight.Sub(1)

	g.requests.Inc()
	if rng.Float64() < g.cfg.ErrorRate {
		g.errors.Inc()
	}
	g.cpu.Set(rng.Float64())
}

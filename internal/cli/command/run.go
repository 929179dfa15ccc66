package command

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/metricsdump/internal/config"
	"github.com/yndnr/metricsdump/internal/infra/confloader"
	"github.com/yndnr/metricsdump/internal/infra/shutdown"
	"github.com/yndnr/metricsdump/internal/telemetry/logger"
	"github.com/yndnr/metricsdump/internal/telemetry/metric"
	"github.com/yndnr/metricsdump/internal/workload"
	"github.com/yndnr/metricsdump/pkg/dumper"
	"github.com/yndnr/metricsdump/pkg/metrics"
)

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Dump metrics to a file until interrupted",
		Description: "Starts a dumper that writes every registered metric at a fixed interval.\n" +
			"Unless disabled, a synthetic workload updates request, error, cpu and inflight\n" +
			"metrics from several goroutines. The configuration file, if any, is watched:\n" +
			"log level and dump interval changes apply without a restart.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"f"},
				Usage:   "Dump file path (truncated on start)",
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Time between two dump lines",
			},
			&cli.StringFlag{
				Name:  "location",
				Usage: `Time zone of line timestamps ("local", "UTC", IANA name)`,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of workload goroutines",
			},
			&cli.DurationFlag{
				Name:  "tick",
				Usage: "Workload update period per goroutine",
			},
			&cli.BoolFlag{
				Name:  "no-workload",
				Usage: "Do not run the synthetic workload",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "Stop after this long (0 runs until interrupted)",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print dumper statistics on exit",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	extra := overrides(c, map[string]string{
		"path":     "dump.path",
		"interval": "dump.interval",
		"location": "dump.location",
		"workers":  "workload.workers",
		"tick":     "workload.tick",
	})
	if c.Bool("no-workload") {
		extra["workload.enabled"] = false
	}

	cfg, loader, err := loadConfig(c, extra)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := initLogger(c, cfg, c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := c.Context
	if d := c.Duration("duration"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	r, err := newRunner(cfg, log)
	if err != nil {
		return err
	}
	r.keepStats = c.Bool("stats")
	if err := r.start(ctx, loader); err != nil {
		_ = r.dumper.Close()
		return err
	}

	log.Info("metricsdump started", "path", cfg.Dump.Path, "interval", cfg.Dump.Interval)
	if err := r.shutdown.Wait(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("metricsdump stopped")

	if r.keepStats {
		return render(c, r.stats)
	}
	return nil
}

// runner holds everything `run` starts.
type runner struct {
	log      *slog.Logger
	registry *metrics.Registry
	prom     *prometheus.Registry
	dumper   *dumper.Dumper
	shutdown *shutdown.Handler

	// keepStats captures the self-metrics into stats just before the
	// dumper closes and unregisters them.
	keepStats bool
	stats     []metric.Sample

	mu  sync.Mutex
	cfg *config.Config
}

func newRunner(cfg *config.Config, log *slog.Logger) (*runner, error) {
	loc, err := cfg.Dump.TimeLocation()
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	prom := prometheus.NewRegistry()
	if err := prom.Register(metric.NewRegistryCollector(reg)); err != nil {
		return nil, err
	}

	d, err := dumper.New(cfg.Dump.Path,
		dumper.WithLogger(log),
		dumper.WithLocation(loc),
		dumper.WithPrometheus(prom),
	)
	if err != nil {
		return nil, err
	}

	sh := shutdown.NewHandler(10 * time.Second)
	sh.SetLogger(log)

	return &runner{
		log:      log,
		registry: reg,
		prom:     prom,
		dumper:   d,
		shutdown: sh,
		cfg:      cfg,
	}, nil
}

// start enables auto-write, the workload and the config watcher, and
// registers their shutdown hooks. Hooks run in reverse order, so the
// dumper, registered first, is closed last and sees the final values.
func (r *runner) start(ctx context.Context, loader *confloader.Loader) error {
	r.shutdown.OnShutdown("dumper", func(context.Context) error {
		r.dumper.DisableAutoWrite()
		if err := r.dumper.WriteRegistry(r.registry); err != nil {
			r.log.Warn("final dump failed", "error", err)
		}
		if r.keepStats {
			stats, err := metric.Summarize(r.prom)
			if err != nil {
				r.log.Warn("collect stats", "error", err)
			}
			r.stats = stats
		}
		return r.dumper.Close()
	})

	if _, err := r.dumper.EnableAutoWrite(r.registry, r.cfg.Dump.Interval); err != nil {
		return err
	}

	if r.cfg.Workload.Enabled {
		if err := r.startWorkload(ctx); err != nil {
			return err
		}
	}

	if path := loader.FilePath(); path != "" {
		if err := r.watchConfig(path, loader); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) startWorkload(ctx context.Context) error {
	gen, err := workload.New(metrics.WithRegistry(ctx, r.registry), workload.Config{
		Workers: r.cfg.Workload.Workers,
		Tick:    r.cfg.Workload.Tick,
	})
	if err != nil {
		return err
	}

	wctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		gen.Run(wctx)
	}()

	r.shutdown.OnShutdown("workload", func(ctx context.Context) error {
		cancel()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	return nil
}

func (r *runner) watchConfig(path string, loader *confloader.Loader) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(r.log))
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return fmt.Errorf("watch config: %w", err)
	}
	w.OnChange(func(string) { r.reload(loader) })
	w.StartAsync()

	r.shutdown.OnShutdown("config watcher", func(context.Context) error {
		return w.Stop()
	})
	return nil
}

// reload applies a changed configuration file. Only the log level and the
// dump interval can change at runtime; other changes are logged and need a
// restart.
func (r *runner) reload(loader *confloader.Loader) {
	next := config.Default()
	if err := loader.Reload(next); err != nil {
		r.log.Error("config reload failed", "error", err)
		return
	}
	next = config.Normalize(next)
	if err := config.Verify(next); err != nil {
		r.log.Error("config reload rejected", "error", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.cfg

	if next.Log.Level != prev.Log.Level {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			r.log.Error("apply log level", "error", err)
		} else {
			r.log.Info("log level changed", "level", next.Log.Level)
		}
	}

	if next.Dump.Interval != prev.Dump.Interval && r.dumper.AutoWriteEnabled() {
		r.dumper.DisableAutoWrite()
		if _, err := r.dumper.EnableAutoWrite(r.registry, next.Dump.Interval); err != nil {
			r.log.Error("restart auto write", "error", err)
			return
		}
		r.log.Info("dump interval changed", "interval", next.Dump.Interval)
	}

	if next.Dump.Path != prev.Dump.Path || next.Dump.Location != prev.Dump.Location || next.Workload != prev.Workload {
		r.log.Warn("configuration change needs a restart to take effect")
	}

	r.cfg = next
}

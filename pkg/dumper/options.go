package dumper

import (
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultFileMode is the permission used when the dump file is created.
const DefaultFileMode os.FileMode = 0o644

type options struct {
	logger     *slog.Logger
	location   *time.Location
	clock      func() time.Time
	fileMode   os.FileMode
	onError    func(error)
	registerer prometheus.Registerer
}

// Option configures a Dumper.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:   slog.Default(),
		location: time.Local,
		clock:    time.Now,
		fileMode: DefaultFileMode,
	}
}

// WithLogger sets the logger for lifecycle events and write failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLocation sets the time zone of the line timestamps. Default: local time.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithFileMode sets the permission used if the dump file has to be created.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) { o.fileMode = mode }
}

// WithErrorHandler registers a callback for write failures of the
// auto-write goroutine. It runs on that goroutine; it must not call
// DisableAutoWrite or Close.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// WithPrometheus registers the dumper's self-metrics with reg. They are
// unregistered again by Close.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

package dumper

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/metricsdump/internal/telemetry/metric"
	"github.com/yndnr/metricsdump/pkg/metrics"
)

// Dumper writes registry snapshots to a file it owns.
//
// All methods are safe for concurrent use. Writes are serialized, so the
// file never sees two writers at once.
type Dumper struct {
	st      *state
	cleanup runtime.Cleanup
}

// state is everything a Dumper owns. It never points back at the Dumper,
// which lets a garbage-collection cleanup receive it after the Dumper is
// gone.
type state struct {
	id    string
	path  string
	opts  options
	log   *slog.Logger
	stats *metric.DumperMetrics

	errLimit   *rate.Limiter
	suppressed atomic.Int64

	mu     sync.Mutex // serializes writes; guards sink, offset, closed
	sink   sink
	offset int64
	closed bool

	taskMu sync.Mutex // guards task; held across start and full stop
	task   *autoWriter
}

// New opens path for writing, truncating any existing content, and returns
// a Dumper that owns it. The Dumper is unusable if the file cannot be
// opened.
func New(path string, opts ...Option) (*Dumper, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	s, err := openSink(path, o.fileMode)
	if err != nil {
		return nil, err
	}
	return newDumper(path, s, o)
}

func newDumper(path string, s sink, o options) (*Dumper, error) {
	id := ulid.Make().String()

	var stats *metric.DumperMetrics
	if o.registerer != nil {
		var err error
		stats, err = metric.NewDumperMetrics(o.registerer, id)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	st := &state{
		id:       id,
		path:     path,
		opts:     o,
		log:      o.logger.With("component", "dumper", "dumper_id", id),
		stats:    stats,
		errLimit: rate.NewLimiter(rate.Every(10*time.Second), 3),
		sink:     s,
	}

	d := &Dumper{st: st}
	d.cleanup = runtime.AddCleanup(d, func(st *state) {
		st.log.Warn("dumper collected without Close")
		_ = st.shutdown()
	}, st)

	st.log.Debug("dump file opened", "path", path)
	return d, nil
}

// ID returns the unique identifier of the dumper, used in logs and
// self-metric labels.
func (d *Dumper) ID() string { return d.st.id }

// Path returns the path of the dump file.
func (d *Dumper) Path() string { return d.st.path }

// Write appends one line for snapshot and clears every metric it wrote.
// Entries are written in ascending name order.
func (d *Dumper) Write(snapshot map[string]metrics.Metric) error {
	return d.st.write(snapshot)
}

// WriteRegistry writes the current contents of reg.
func (d *Dumper) WriteRegistry(reg *metrics.Registry) error {
	if reg == nil {
		return ErrNilRegistry
	}
	return d.st.write(reg.Snapshot())
}

// Close stops auto-write, waits for it to finish and closes the file.
// Close is idempotent.
func (d *Dumper) Close() error {
	d.cleanup.Stop()
	return d.st.shutdown()
}

func (st *state) write(snapshot map[string]metrics.Metric) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return ErrClosed
	}

	entries := readSorted(snapshot)
	var buf bytes.Buffer
	appendLine(&buf, st.opts.clock().In(st.opts.location), entries)

	n, err := st.sink.Write(buf.Bytes())
	if err == nil && n < buf.Len() {
		err = fmt.Errorf("short write: %d of %d bytes", n, buf.Len())
	}
	if err != nil {
		st.stats.ObserveError()
		if n > 0 {
			if rerr := rollback(st.sink, st.offset); rerr != nil {
				return fmt.Errorf("write dump line: %w (rollback: %v)", err, rerr)
			}
		}
		return fmt.Errorf("write dump line: %w", err)
	}
	st.offset += int64(n)

	// the line is complete in the file from here on, so the written values
	// are cleared even if the flush below fails
	for _, e := range entries {
		e.reading.Clear()
	}

	if err := st.sink.Sync(); err != nil {
		st.stats.ObserveError()
		return fmt.Errorf("sync dump file: %w", err)
	}

	st.stats.ObserveWrite(len(entries), n, st.opts.clock())
	return nil
}

// reportError handles a failed auto-write cycle: it is counted, passed to
// the error handler and logged at a limited rate.
func (st *state) reportError(err error) {
	if st.opts.onError != nil {
		st.opts.onError(err)
	}
	if !st.errLimit.Allow() {
		st.suppressed.Add(1)
		return
	}
	st.log.Error("dump write failed",
		"error", err,
		"suppressed", st.suppressed.Swap(0),
	)
}

func (st *state) shutdown() error {
	st.stopTask()

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return nil
	}
	st.closed = true
	err := st.sink.Close()
	st.mu.Unlock()

	st.stats.Unregister()
	if err != nil {
		st.log.Error("failed to close dump file", "path", st.path, "error", err)
		return fmt.Errorf("close dump file %s: %w", st.path, err)
	}
	st.log.Debug("dump file closed", "path", st.path)
	return nil
}

func (st *state) isClosed() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.closed
}

// IsClosed reports whether err is ErrClosed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

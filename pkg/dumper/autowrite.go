package dumper

import (
	"context"
	"time"
	"weak"

	"github.com/yndnr/metricsdump/pkg/metrics"
)

type autoWriter struct {
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

// EnableAutoWrite starts a goroutine that writes reg immediately and then
// every interval until DisableAutoWrite or Close.
//
// It reports true if it started the goroutine. If one is already running
// it does nothing and reports false: a Dumper never runs two writers.
func (d *Dumper) EnableAutoWrite(reg *metrics.Registry, interval time.Duration) (bool, error) {
	if reg == nil {
		return false, ErrNilRegistry
	}
	if interval <= 0 {
		return false, ErrInvalidInterval
	}

	st := d.st
	st.taskMu.Lock()
	defer st.taskMu.Unlock()

	if st.isClosed() {
		return false, ErrClosed
	}
	if st.task != nil {
		select {
		case <-st.task.done:
			// exited on its own; replace it
		default:
			return false, nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &autoWriter{
		cancel:   cancel,
		done:     make(chan struct{}),
		interval: interval,
	}
	st.task = t

	// the goroutine must not keep d reachable
	go runAutoWrite(ctx, weak.Make(d), reg, interval, t.done)

	st.stats.SetAutoWrite(true)
	st.log.Info("auto write enabled", "interval", interval)
	return true, nil
}

// DisableAutoWrite stops the auto-write goroutine and waits until it has
// exited. It is a no-op when auto-write is not running.
func (d *Dumper) DisableAutoWrite() {
	d.st.stopTask()
}

// AutoWriteEnabled reports whether the auto-write goroutine is running.
func (d *Dumper) AutoWriteEnabled() bool {
	st := d.st
	st.taskMu.Lock()
	defer st.taskMu.Unlock()

	if st.task == nil {
		return false
	}
	select {
	case <-st.task.done:
		return false
	default:
		return true
	}
}

// AutoWriteInterval returns the interval of the running auto-write
// goroutine, or zero.
func (d *Dumper) AutoWriteInterval() time.Duration {
	if !d.AutoWriteEnabled() {
		return 0
	}
	st := d.st
	st.taskMu.Lock()
	defer st.taskMu.Unlock()
	if st.task == nil {
		return 0
	}
	return st.task.interval
}

func (st *state) stopTask() {
	st.taskMu.Lock()
	defer st.taskMu.Unlock()

	t := st.task
	if t == nil {
		return
	}
	st.task = nil
	t.cancel()
	<-t.done

	st.stats.SetAutoWrite(false)
	st.log.Info("auto write disabled")
}

func runAutoWrite(ctx context.Context, ref weak.Pointer[Dumper], reg *metrics.Registry, interval time.Duration, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !autoWriteOnce(ctx, ref, reg) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// autoWriteOnce performs one cycle and reports whether the loop should go
// on. The strong reference to the Dumper lives only for this call.
func autoWriteOnce(ctx context.Context, ref weak.Pointer[Dumper], reg *metrics.Registry) bool {
	if ctx.Err() != nil {
		return false
	}
	d := ref.Value()
	if d == nil {
		return false
	}
	err := d.st.write(reg.Snapshot())
	switch {
	case err == nil:
		return true
	case IsClosed(err):
		return false
	default:
		d.st.reportError(err)
		return true
	}
}

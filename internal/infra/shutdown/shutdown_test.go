package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestNewHandler(t *testing.T) {
	h := NewHandler(5 * time.Second)
	if h.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", h.timeout)
	}

	select {
	case <-h.Done():
		t.Error("Done channel should not be closed initially")
	default:
	}
}

func TestHandler_ReverseOrder(t *testing.T) {
	h := NewHandler(5 * time.Second)

	var mu sync.Mutex
	var order []int
	for i := 1; i <= 3; i++ {
		h.OnShutdown("hook", func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestHandler_JoinsErrors(t *testing.T) {
	h := NewHandler(time.Second)
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	ran := false
	h.OnShutdown("a", func(context.Context) error { return errA })
	h.OnShutdown("ok", func(context.Context) error { ran = true; return nil })
	h.OnShutdown("b", func(context.Context) error { return errB })

	err := h.Shutdown()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Shutdown() error = %v, want both hook errors", err)
	}
	if !ran {
		t.Error("a failing hook must not stop later hooks")
	}
}

func TestHandler_ShutdownOnce(t *testing.T) {
	h := NewHandler(time.Second)

	calls := 0
	h.OnShutdown("count", func(context.Context) error { calls++; return nil })

	_ = h.Shutdown()
	_ = h.Shutdown()
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Shutdown")
	}
}

func TestHandler_HookTimeout(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if err := h.Shutdown(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want DeadlineExceeded", err)
	}
}

func TestHandler_Wait_Context(t *testing.T) {
	h := NewHandler(time.Second)
	called := make(chan struct{})
	h.OnShutdown("hook", func(context.Context) error {
		close(called)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after cancel")
	}
	select {
	case <-called:
	default:
		t.Error("hook was not called")
	}
}

func TestHandler_Wait_Signal(t *testing.T) {
	h := NewHandler(time.Second)

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(context.Background()) }()

	// give Wait time to install the handler
	time.Sleep(50 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after SIGTERM")
	}
}

// Package shutdown runs cleanup hooks when the process is asked to stop.
//
// A Handler waits for SIGINT, SIGTERM or cancellation of a context, then
// runs the registered hooks in reverse order of registration under a
// shared timeout:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown("dumper", func(ctx context.Context) error { return d.Close() })
//	err := h.Wait(ctx)
package shutdown

// Package dumper periodically writes every metric of a metrics.Registry to
// a text file and clears what it wrote.
//
// Each write appends one line:
//
//	2024-05-01 12:00:00.250 "cpu" 0.97 "http_requests" 62
//
// The timestamp is followed by `"name" value` pairs in ascending name
// order. Counters print as unsigned integers and gauges in their shortest
// decimal form. Names are written verbatim and must not contain a double
// quote.
//
// Writing is read-and-clear: after a successful write every dumped metric
// has the written amount subtracted, so each line reports the change since
// the previous line rather than a lifetime total. A failed write clears
// nothing and leaves no partial line behind.
//
// # Lifecycle
//
// New opens (and truncates) the file. EnableAutoWrite starts one background
// goroutine writing at a fixed interval; calling it again while it runs is
// a no-op. DisableAutoWrite stops the goroutine and waits for it to exit.
// Close stops auto-write and closes the file.
//
// The background goroutine holds only a weak reference to its Dumper. If a
// Dumper is dropped without Close, the goroutine stops on its next tick and
// a cleanup closes the file once the Dumper has been garbage collected.
//
// The wait between writes is interruptible: DisableAutoWrite returns as
// soon as an in-flight write (if any) completes, independent of the
// interval.
package dumper

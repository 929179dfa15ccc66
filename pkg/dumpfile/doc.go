// Package dumpfile reads files written by package dumper.
//
// A dump file is a sequence of lines, one per write:
//
//	2024-05-01 12:00:00.250 "cpu" 0.97 "http_requests" 62
//
// ParseLine decodes a single line into a Record. Reader iterates over a
// whole file and Totals folds records into per-name sums, which is how the
// deltas of a read-and-clear dump add back up to lifetime totals.
package dumpfile

// Package command defines the metricsdump command line using urfave/cli/v2.
//
//   - root.go: application, global flags, logger and config setup
//   - run.go: run the dumper (with optional synthetic workload) until stopped
//   - inspect.go: summarize an existing dump file
//   - config.go: show or validate the effective configuration
//   - version.go: print build information
package command

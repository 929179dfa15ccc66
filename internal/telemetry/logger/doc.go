// Package logger provides structured logging for metricsdump.
//
// It wraps log/slog:
//
//   - logger.go: configuration, level parsing, the process default logger
//   - context.go: carrying a logger through a context.Context
//
// The level is held in a shared slog.LevelVar so a configuration reload can
// change it while the process runs.
package logger

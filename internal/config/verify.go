package config

import (
	"errors"
	"fmt"

	"github.com/yndnr/metricsdump/internal/telemetry/logger"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyDump(&cfg.Dump); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	return verifyWorkload(&cfg.Workload)
}

func verifyDump(cfg *DumpSection) error {
	if cfg.Path == "" {
		return fmt.Errorf("%w: dump.path is required", ErrInvalid)
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("%w: dump.interval must be positive, got %s", ErrInvalid, cfg.Interval)
	}
	if _, err := cfg.TimeLocation(); err != nil {
		return fmt.Errorf("%w: dump.location: %v", ErrInvalid, err)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, cfg.Format)
	}
	return nil
}

func verifyWorkload(cfg *WorkloadSection) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workload.workers must not be negative", ErrInvalid)
	}
	if cfg.Enabled && cfg.Tick <= 0 {
		return fmt.Errorf("%w: workload.tick must be positive", ErrInvalid)
	}
	return nil
}

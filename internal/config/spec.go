package config

import "time"

// Config is the root configuration for metricsdump.
type Config struct {
	Dump     DumpSection     `koanf:"dump" json:"dump" yaml:"dump"`
	Log      LogSection      `koanf:"log" json:"log" yaml:"log"`
	Workload WorkloadSection `koanf:"workload" json:"workload" yaml:"workload"`
}

// DumpSection configures the dump file writer.
type DumpSection struct {
	// Path of the dump file. It is truncated on start.
	Path string `koanf:"path" json:"path" yaml:"path"`

	// Interval between two lines.
	Interval time.Duration `koanf:"interval" json:"interval" yaml:"interval"`

	// Location is the time zone of line timestamps: "local", "UTC" or an
	// IANA name such as "Europe/Berlin".
	Location string `koanf:"location" json:"location" yaml:"location"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// WorkloadSection configures the synthetic workload of `metricsdump run`.
type WorkloadSection struct {
	Enabled bool `koanf:"enabled" json:"enabled" yaml:"enabled"`

	// Workers is the number of goroutines updating metrics.
	Workers int `koanf:"workers" json:"workers" yaml:"workers"`

	// Tick is how often each worker updates.
	Tick time.Duration `koanf:"tick" json:"tick" yaml:"tick"`
}

// TimeLocation resolves Dump.Location.
func (c *DumpSection) TimeLocation() (*time.Location, error) {
	switch c.Location {
	case "", "local", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Location)
	}
}

package config

import "time"

// Default configuration values.
const (
	DefaultDumpPath     = "metrics.log"
	DefaultDumpInterval = time.Second
	DefaultDumpLocation = "local"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultWorkers      = 4
	DefaultWorkloadTick = 10 * time.Millisecond
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dump: DumpSection{
			Path:     DefaultDumpPath,
			Interval: DefaultDumpInterval,
			Location: DefaultDumpLocation,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Workload: WorkloadSection{
			Enabled: true,
			Workers: DefaultWorkers,
			Tick:    DefaultWorkloadTick,
		},
	}
}

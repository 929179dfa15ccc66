package metric

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every self-metric name.
const Namespace = "metricsdump"

// DumperMetrics holds the self-metrics of one dumper.
// A nil *DumperMetrics is valid and records nothing.
type DumperMetrics struct {
	Writes          prometheus.Counter
	WriteErrors     prometheus.Counter
	MetricsDumped   prometheus.Counter
	BytesWritten    prometheus.Counter
	LastWrite       prometheus.Gauge
	AutoWriteActive prometheus.Gauge

	registerer prometheus.Registerer
}

// NewDumperMetrics creates the self-metrics of the dumper identified by
// dumperID and registers them with reg.
func NewDumperMetrics(reg prometheus.Registerer, dumperID string) (*DumperMetrics, error) {
	labels := prometheus.Labels{"dumper": dumperID}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   Namespace,
			Subsystem:   "dumper",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Subsystem:   "dumper",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	m := &DumperMetrics{
		Writes:          counter("writes_total", "Dump lines written successfully."),
		WriteErrors:     counter("write_errors_total", "Dump lines that failed to write."),
		MetricsDumped:   counter("metrics_dumped_total", "Metric values written and cleared."),
		BytesWritten:    counter("bytes_written_total", "Bytes appended to the dump file."),
		LastWrite:       gauge("last_write_timestamp_seconds", "Unix time of the last successful write."),
		AutoWriteActive: gauge("auto_write_active", "1 while the periodic writer is running."),
		registerer:      reg,
	}

	var registered []prometheus.Collector
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			return nil, fmt.Errorf("register dumper metrics: %w", err)
		}
		registered = append(registered, c)
	}
	return m, nil
}

func (m *DumperMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Writes,
		m.WriteErrors,
		m.MetricsDumped,
		m.BytesWritten,
		m.LastWrite,
		m.AutoWriteActive,
	}
}

// ObserveWrite records one successful dump line.
func (m *DumperMetrics) ObserveWrite(metrics, bytes int, at time.Time) {
	if m == nil {
		return
	}
	m.Writes.Inc()
	m.MetricsDumped.Add(float64(metrics))
	m.BytesWritten.Add(float64(bytes))
	m.LastWrite.Set(float64(at.UnixNano()) / float64(time.Second))
}

// ObserveError records one failed dump line.
func (m *DumperMetrics) ObserveError() {
	if m == nil {
		return
	}
	m.WriteErrors.Inc()
}

// SetAutoWrite records whether the periodic writer is running.
func (m *DumperMetrics) SetAutoWrite(active bool) {
	if m == nil {
		return
	}
	if active {
		m.AutoWriteActive.Set(1)
	} else {
		m.AutoWriteActive.Set(0)
	}
}

// Unregister removes the metrics from the registerer they were created with.
func (m *DumperMetrics) Unregister() {
	if m == nil || m.registerer == nil {
		return
	}
	for _, c := range m.collectors() {
		m.registerer.Unregister(c)
	}
}

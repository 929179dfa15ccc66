package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/metricsdump/pkg/metrics"
)

// RegistryCollector reports how many metrics a metrics.Registry holds,
// split by kind. It reads membership only and never touches values.
type RegistryCollector struct {
	reg  *metrics.Registry
	size *prometheus.Desc
}

// NewRegistryCollector creates a collector for reg.
func NewRegistryCollector(reg *metrics.Registry) *RegistryCollector {
	return &RegistryCollector{
		reg: reg,
		size: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "registry", "metrics"),
			"Metrics currently registered, by kind.",
			[]string{"kind"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *RegistryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
}

// Collect implements prometheus.Collector.
func (c *RegistryCollector) Collect(ch chan<- prometheus.Metric) {
	counts := map[metrics.Kind]int{
		metrics.KindCounter: 0,
		metrics.KindGauge:   0,
	}
	for _, m := range c.reg.Snapshot() {
		counts[m.Kind()]++
	}
	for kind, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(n), kind.String())
	}
}

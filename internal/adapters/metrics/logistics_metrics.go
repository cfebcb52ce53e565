package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LogisticsMetricsCollector handles supply network metrics
type LogisticsMetricsCollector struct {
	generationsTotal   *prometheus.CounterVec
	connections        *prometheus.GaugeVec
	supplyLineLength   *prometheus.GaugeVec
	generationDuration prometheus.Histogram
}

// NewLogisticsMetricsCollector creates a new supply network collector
func NewLogisticsMetricsCollector() *LogisticsMetricsCollector {
	return &LogisticsMetricsCollector{
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "supply_network_generations_total",
				Help:      "Total number of supply network generations per planet",
			},
			[]string{"planet"},
		),

		connections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "supply_connections",
				Help:      "Connections produced by the last generation per planet",
			},
			[]string{"planet"},
		),

		supplyLineLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "supply_line_length",
				Help:      "Total length of the last generated network per planet",
			},
			[]string{"planet"},
		),

		generationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "supply_network_generation_seconds",
				Help:      "Supply network generation duration distribution",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
}

// Register registers all logistics metrics with the Prometheus registry
func (c *LogisticsMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.generationsTotal,
		c.connections,
		c.supplyLineLength,
		c.generationDuration,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordNetworkGeneration records the outcome of one generation
func (c *LogisticsMetricsCollector) RecordNetworkGeneration(planet string, connections int, totalLength float64, duration time.Duration) {
	c.generationsTotal.WithLabelValues(planet).Inc()
	c.connections.WithLabelValues(planet).Set(float64(connections))
	c.supplyLineLength.WithLabelValues(planet).Set(totalLength)
	c.generationDuration.Observe(duration.Seconds())
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "spaceeconomy"
	// Subsystem for simulation metrics
	subsystem = "simulation"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalLogisticsCollector is the singleton supply network collector
	// Set by SetGlobalLogisticsCollector() when metrics are enabled
	globalLogisticsCollector LogisticsMetricsRecorder

	// globalEconomyCollector is the singleton stockpile/ledger collector
	// Set by SetGlobalEconomyCollector() when metrics are enabled
	globalEconomyCollector EconomyMetricsRecorder
)

// LogisticsMetricsRecorder defines the interface for recording supply network metrics
type LogisticsMetricsRecorder interface {
	RecordNetworkGeneration(planet string, connections int, totalLength float64, duration time.Duration)
}

// EconomyMetricsRecorder defines the interface for recording stockpile and ledger metrics
type EconomyMetricsRecorder interface {
	RecordTransfer(good string, amount float64, internal bool)
	RecordTransferFailure(good string, reason string)
	RecordTick(date int64)
	RecordPeriodClose(cities int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalLogisticsCollector sets the global supply network collector
func SetGlobalLogisticsCollector(collector LogisticsMetricsRecorder) {
	globalLogisticsCollector = collector
}

// RecordNetworkGeneration records a supply network generation globally
func RecordNetworkGeneration(planet string, connections int, totalLength float64, duration time.Duration) {
	if globalLogisticsCollector != nil {
		globalLogisticsCollector.RecordNetworkGeneration(planet, connections, totalLength, duration)
	}
}

// SetGlobalEconomyCollector sets the global economy collector
func SetGlobalEconomyCollector(collector EconomyMetricsRecorder) {
	globalEconomyCollector = collector
}

// RecordTransfer records a completed transfer globally
func RecordTransfer(good string, amount float64, internal bool) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordTransfer(good, amount, internal)
	}
}

// RecordTransferFailure records a refused transfer globally
func RecordTransferFailure(good string, reason string) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordTransferFailure(good, reason)
	}
}

// RecordTick records a simulation tick globally
func RecordTick(date int64) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordTick(date)
	}
}

// RecordPeriodClose records the end of a reporting period globally
func RecordPeriodClose(cities int) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordPeriodClose(cities)
	}
}

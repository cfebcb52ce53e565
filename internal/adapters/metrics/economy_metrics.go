package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	stockpileQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/queries"
)

// EconomyMetricsCollector handles stockpile, ledger and clock metrics
type EconomyMetricsCollector struct {
	// Dependencies
	mediator common.Mediator

	// Transfer metrics
	transfersTotal   *prometheus.CounterVec
	transferVolume   *prometheus.CounterVec
	transferFailures *prometheus.CounterVec

	// Balance metrics
	cityBalance *prometheus.GaugeVec

	// Clock metrics
	ticksTotal     prometheus.Counter
	starDate       prometheus.Gauge
	periodsClosed  prometheus.Counter
	citiesReported prometheus.Gauge

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewEconomyMetricsCollector creates a new economy collector
func NewEconomyMetricsCollector(mediator common.Mediator) *EconomyMetricsCollector {
	return &EconomyMetricsCollector{
		mediator: mediator,

		transfersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_total",
				Help:      "Completed transfers by good and scope (internal or external)",
			},
			[]string{"good", "scope"},
		),

		transferVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfer_volume_total",
				Help:      "Units moved by completed transfers",
			},
			[]string{"good", "scope"},
		),

		transferFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfer_failures_total",
				Help:      "Refused transfers by good and reason",
			},
			[]string{"good", "reason"},
		),

		cityBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "city_balance",
				Help:      "Current stockpile balance per city and good",
			},
			[]string{"city", "good"},
		),

		ticksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ticks_total",
				Help:      "Simulation ticks executed",
			},
		),

		starDate: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "star_date",
				Help:      "Current simulated date",
			},
		),

		periodsClosed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ledger_periods_closed_total",
				Help:      "Reporting periods closed by clearing city ledgers",
			},
		),

		citiesReported: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ledger_cities_cleared",
				Help:      "Cities cleared at the last period close",
			},
		),
	}
}

// Register registers all economy metrics with the Prometheus registry
func (c *EconomyMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.transfersTotal,
		c.transferVolume,
		c.transferFailures,
		c.cityBalance,
		c.ticksTotal,
		c.starDate,
		c.periodsClosed,
		c.citiesReported,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins polling city balances
func (c *EconomyMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollBalances(interval)
}

// Stop gracefully stops the collector
func (c *EconomyMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *EconomyMetricsCollector) pollBalances(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.updateBalances()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateBalances()
		}
	}
}

func (c *EconomyMetricsCollector) updateBalances() {
	if c.mediator == nil {
		return
	}

	resp, err := c.mediator.Send(c.ctx, &stockpileQueries.ListCityBalancesQuery{})
	if err != nil {
		log.Printf("economy metrics: failed to list city balances: %v", err)
		return
	}
	balances, ok := resp.(*stockpileQueries.ListCityBalancesResponse)
	if !ok {
		log.Printf("economy metrics: unexpected response type %T", resp)
		return
	}

	for _, b := range balances.Balances {
		c.cityBalance.WithLabelValues(b.CityName, b.Good).Set(b.Amount)
	}
}

// RecordTransfer records a completed transfer
func (c *EconomyMetricsCollector) RecordTransfer(good string, amount float64, internal bool) {
	scope := "external"
	if internal {
		scope = "internal"
	}
	c.transfersTotal.WithLabelValues(good, scope).Inc()
	c.transferVolume.WithLabelValues(good, scope).Add(amount)
}

// RecordTransferFailure records a refused transfer
func (c *EconomyMetricsCollector) RecordTransferFailure(good string, reason string) {
	c.transferFailures.WithLabelValues(good, reason).Inc()
}

// RecordTick records a simulation tick
func (c *EconomyMetricsCollector) RecordTick(date int64) {
	c.ticksTotal.Inc()
	c.starDate.Set(float64(date))
}

// RecordPeriodClose records the end of a reporting period
func (c *EconomyMetricsCollector) RecordPeriodClose(cities int) {
	c.periodsClosed.Inc()
	c.citiesReported.Set(float64(cities))
}

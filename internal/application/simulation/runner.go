package simulation

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	ledgerCmd "github.com/andrescamacho/spaceeconomy-go/internal/application/ledger/commands"
	stockpileCmd "github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/commands"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// Config controls tick pacing and reporting periods
type Config struct {
	// TickRate is the maximum number of ticks per second. Zero or less runs unpaced.
	TickRate float64

	// TicksPerPeriod is the length of a reporting period. Zero disables period closes.
	TicksPerPeriod int
}

// TickReport summarizes one tick
type TickReport struct {
	StarDate     int64
	Extractions  int
	Failures     int
	Extracted    map[string]float64 // by good identifier
	PeriodClosed bool
}

// RunSummary summarizes a Run
type RunSummary struct {
	Ticks         int
	Extractions   int
	Failures      int
	PeriodsClosed int
	Extracted     map[string]float64
	FinalStarDate int64
}

// Runner drives the world clock. Every tick advances the date by one, extracts each mine's
// accrued output into its owning city and, at the end of a reporting period, logs each
// city's ledger and clears it.
//
// All mutations go through the mediator so command metrics and logging apply.
type Runner struct {
	mediator       common.Mediator
	world          *world.World
	limiter        *rate.Limiter
	ticksPerPeriod int
	ticks          int64
}

// NewRunner creates a runner over w
func NewRunner(mediator common.Mediator, w *world.World, cfg Config) *Runner {
	limit := rate.Inf
	if cfg.TickRate > 0 {
		limit = rate.Limit(cfg.TickRate)
	}
	return &Runner{
		mediator:       mediator,
		world:          w,
		limiter:        rate.NewLimiter(limit, 1),
		ticksPerPeriod: cfg.TicksPerPeriod,
	}
}

// Ticks returns the number of ticks executed so far
func (r *Runner) Ticks() int64 {
	return r.ticks
}

// Tick executes a single tick. Extraction failures are logged and counted; only
// cancellation or a failed period close aborts the tick.
func (r *Runner) Tick(ctx context.Context) (*TickReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := common.LoggerFromContext(ctx)

	date := r.world.Clock().Advance(1)
	r.ticks++

	report := &TickReport{
		StarDate:  int64(date),
		Extracted: make(map[string]float64),
	}

	for _, site := range r.world.ProductionSites() {
		resp, err := r.mediator.Send(ctx, &stockpileCmd.ExtractProductionCommand{
			MineID: site.Mine.ID().String(),
		})
		if err != nil {
			report.Failures++
			logger.Log("WARNING", "Extraction failed", map[string]interface{}{
				"action": "extract_production",
				"mine":   site.Mine.ID().Short(),
				"city":   site.City.Name(),
				"error":  err.Error(),
			})
			continue
		}
		extraction := resp.(*stockpileCmd.ExtractProductionResponse)
		report.Extractions++
		report.Extracted[extraction.Good] += extraction.Extracted
	}

	metrics.RecordTick(int64(date))

	if r.ticksPerPeriod > 0 && r.ticks%int64(r.ticksPerPeriod) == 0 {
		if err := r.closePeriod(ctx); err != nil {
			return report, err
		}
		report.PeriodClosed = true
	}

	return report, nil
}

// Run executes ticks ticks, waiting on the rate limiter before each one
func (r *Runner) Run(ctx context.Context, ticks int) (*RunSummary, error) {
	summary := &RunSummary{Extracted: make(map[string]float64)}

	for i := 0; i < ticks; i++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("simulation interrupted after %d ticks: %w", summary.Ticks, err)
		}

		report, err := r.Tick(ctx)
		if report != nil {
			summary.Ticks++
			summary.Extractions += report.Extractions
			summary.Failures += report.Failures
			summary.FinalStarDate = report.StarDate
			for good, amount := range report.Extracted {
				summary.Extracted[good] += amount
			}
			if report.PeriodClosed {
				summary.PeriodsClosed++
			}
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// closePeriod logs every city's ledger and then clears them
func (r *Runner) closePeriod(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)
	catalog := r.world.Catalog()

	for _, c := range r.world.Cities() {
		snapshot := c.LedgerSnapshot()
		for _, t := range snapshot.Goods() {
			logger.Log("INFO", "Period ledger", map[string]interface{}{
				"city":    c.Name(),
				"good":    catalog.Name(t),
				"added":   snapshot.Added(t),
				"removed": snapshot.Removed(t),
				"net":     snapshot.Net(t),
				"balance": c.Amount(t),
			})
		}
	}

	if _, err := r.mediator.Send(ctx, &ledgerCmd.ClearLedgersCommand{}); err != nil {
		return fmt.Errorf("failed to close period: %w", err)
	}
	return nil
}

package simulation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/setup"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/simulation"
	"github.com/andrescamacho/spaceeconomy-go/test/helpers"
)

func newMediator(t *testing.T, f *helpers.WorldFixture) common.Mediator {
	t.Helper()
	m, err := setup.NewHandlerRegistry(f.World, nil, nil).CreateConfiguredMediator()
	require.NoError(t, err)
	return m
}

func TestRunner_ExtractsEveryTickAndClosesPeriods(t *testing.T) {
	// Arrange
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	beta := f.FoundCity(t, "Beta", 3, 0)
	_, err := f.World.BuildMine(alpha.ID(), f.Stratum.ID(), f.Ore.ID(), 2.0)
	require.NoError(t, err)
	_, err = f.World.BuildMine(beta.ID(), f.Stratum.ID(), f.Ore.ID(), 1.0)
	require.NoError(t, err)

	runner := simulation.NewRunner(newMediator(t, f), f.World, simulation.Config{TicksPerPeriod: 3})

	// Act
	summary, err := runner.Run(context.Background(), 7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Ticks)
	assert.Equal(t, 14, summary.Extractions)
	assert.Zero(t, summary.Failures)
	assert.Equal(t, 2, summary.PeriodsClosed)
	assert.Equal(t, int64(7), summary.FinalStarDate)
	assert.InDelta(t, 21.0, summary.Extracted["iron_ore"], 1e-9)
	assert.Equal(t, int64(7), runner.Ticks())

	assert.Equal(t, 14.0, alpha.Amount(f.Ore.ID()))
	assert.Equal(t, 7.0, beta.Amount(f.Ore.ID()))

	// Only the tick after the last close is still on the ledger
	assert.Equal(t, 2.0, alpha.LedgerSnapshot().Added(f.Ore.ID()))
}

func TestRunner_TickReport(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	_, err := f.World.BuildMine(alpha.ID(), f.Stratum.ID(), f.Ore.ID(), 1.5)
	require.NoError(t, err)

	runner := simulation.NewRunner(newMediator(t, f), f.World, simulation.Config{TicksPerPeriod: 1})

	report, err := runner.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.StarDate)
	assert.Equal(t, 1, report.Extractions)
	assert.Equal(t, 1.5, report.Extracted["iron_ore"])
	assert.True(t, report.PeriodClosed)
	assert.Empty(t, alpha.LedgerSnapshot().Goods())
}

func TestRunner_NoPeriodsWhenDisabled(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	f.FoundCity(t, "Alpha", 0, 0)

	runner := simulation.NewRunner(newMediator(t, f), f.World, simulation.Config{})
	summary, err := runner.Run(context.Background(), 5)

	require.NoError(t, err)
	assert.Zero(t, summary.PeriodsClosed)
	assert.Zero(t, summary.Extractions)
	assert.Equal(t, int64(5), summary.FinalStarDate)
}

func TestRunner_StopsOnCancellation(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	runner := simulation.NewRunner(newMediator(t, f), f.World, simulation.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := runner.Run(ctx, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, summary.Ticks)
	assert.Equal(t, int64(0), int64(f.Clock.Now()))
}

func TestRunner_RespectsTickRate(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	runner := simulation.NewRunner(newMediator(t, f), f.World, simulation.Config{TickRate: 50})

	start := time.Now()
	summary, err := runner.Run(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Ticks)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

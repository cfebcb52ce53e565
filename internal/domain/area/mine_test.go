package area_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

const (
	ore   goods.GoodID = 1
	water goods.GoodID = 2
)

func newMine(t *testing.T, clock shared.SimulationClock, productivity float64) *area.MineArea {
	t.Helper()
	mine, err := area.NewMineArea(shared.NewEntityID(), ore, productivity, clock)
	require.NoError(t, err)
	return mine
}

func TestMineArea_AccruesProductivityOverTime(t *testing.T) {
	clock := shared.NewGameClock(0)
	mine := newMine(t, clock, 2.0)

	assert.Equal(t, 0.0, mine.Amount(ore))

	clock.Advance(5)

	assert.Equal(t, 10.0, mine.Amount(ore))
	assert.Equal(t, 0.0, mine.Amount(water))
}

func TestMineArea_WithdrawalDrainsAccruedOutput(t *testing.T) {
	clock := shared.NewGameClock(0)
	mine := newMine(t, clock, 2.0)
	owner, err := city.NewCity("Owner", shared.NewEntityID(), shared.NewGeographicPoint(0, 0))
	require.NoError(t, err)
	require.NoError(t, owner.AddArea(mine))
	clock.Advance(5)

	err = stockpile.Transfer(mine, owner, ore, 4.0)

	require.NoError(t, err)
	assert.Equal(t, 0.0, mine.Amount(ore))
	assert.Equal(t, 4.0, owner.Amount(ore))
	assert.Equal(t, shared.StarDate(5), mine.LastExtraction())
}

func TestMineArea_AmountIsMonotoneUntilWithdrawal(t *testing.T) {
	clock := shared.NewGameClock(0)
	mine := newMine(t, clock, 1.5)

	previous := mine.Amount(ore)
	for i := 0; i < 10; i++ {
		clock.Advance(1)
		current := mine.Amount(ore)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}

func TestMineArea_RefusesOverdraftAndOtherGoods(t *testing.T) {
	clock := shared.NewGameClock(0)
	mine := newMine(t, clock, 1.0)
	owner, _ := city.NewCity("Owner", shared.NewEntityID(), shared.NewGeographicPoint(0, 0))
	clock.Advance(3)

	var insufficient *stockpile.ErrInsufficientResources
	assert.ErrorAs(t, stockpile.Transfer(mine, owner, ore, 3.5), &insufficient)
	assert.ErrorAs(t, stockpile.Transfer(mine, owner, water, 1), &insufficient)

	// A failed withdrawal keeps the accrual running
	assert.Equal(t, 3.0, mine.Amount(ore))
	assert.Equal(t, shared.StarDate(0), mine.LastExtraction())
}

func TestMineArea_RejectsDeposits(t *testing.T) {
	clock := shared.NewGameClock(0)
	mine := newMine(t, clock, 1.0)
	donor, _ := city.NewCity("Donor", shared.NewEntityID(), shared.NewGeographicPoint(0, 0))
	require.NoError(t, stockpile.Seed(donor, ore, 10))

	err := stockpile.Transfer(donor, mine, ore, 5)

	var cannotHold *stockpile.ErrCannotHold
	require.ErrorAs(t, err, &cannotHold)
	assert.Equal(t, 10.0, donor.Amount(ore))
}

func TestMineArea_StockpileQueries(t *testing.T) {
	mine := newMine(t, shared.NewGameClock(0), 1.0)

	assert.True(t, mine.Has(ore))
	assert.False(t, mine.Has(water))
	assert.Equal(t, []goods.GoodID{ore}, mine.HeldTypes())
	assert.False(t, mine.Debit(stockpile.Grant{}, ore, 0))
}

func TestMineArea_RestoredAccrualStartsAtLastExtraction(t *testing.T) {
	clock := shared.NewGameClock(20)

	mine, err := area.ReconstructMineArea(shared.NewEntityID(), shared.NewEntityID(), ore, 0.5, 10, clock)

	require.NoError(t, err)
	assert.Equal(t, 5.0, mine.Amount(ore))
}

func TestMineArea_ClockBehindLastExtractionYieldsNothing(t *testing.T) {
	clock := shared.NewGameClock(5)

	mine, err := area.ReconstructMineArea(shared.NewEntityID(), shared.NewEntityID(), ore, 2, 8, clock)

	require.NoError(t, err)
	assert.Equal(t, 0.0, mine.Amount(ore))
}

func TestNewMineArea_Validation(t *testing.T) {
	_, err := area.NewMineArea(shared.NewEntityID(), ore, -1, shared.NewGameClock(0))
	assert.Error(t, err)

	_, err = area.NewMineArea(shared.NewEntityID(), ore, 1, nil)
	assert.Error(t, err)
}

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/commands"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/test/helpers"
)

func TestExtractProduction_WithdrawsEverythingAccrued(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	mine, err := f.World.BuildMine(alpha.ID(), f.Stratum.ID(), f.Ore.ID(), 2.5)
	require.NoError(t, err)

	handler := commands.NewExtractProductionHandler(f.World, nil)

	f.Clock.Advance(4)
	resp, err := handler.Handle(context.Background(), &commands.ExtractProductionCommand{MineID: mine.ID().String()})
	require.NoError(t, err)

	result := resp.(*commands.ExtractProductionResponse)
	assert.Equal(t, alpha.ID().String(), result.CityID)
	assert.Equal(t, "iron_ore", result.Good)
	assert.Equal(t, 10.0, result.Extracted)
	assert.Equal(t, 10.0, result.CityBalance)
	assert.Equal(t, int64(4), result.StarDate)

	assert.Equal(t, 0.0, mine.Amount(f.Ore.ID()))
	assert.Equal(t, shared.StarDate(4), mine.LastExtraction())

	snapshot := alpha.LedgerSnapshot()
	assert.Equal(t, 10.0, snapshot.Added(f.Ore.ID()))
	assert.Empty(t, snapshot.Imports, "extraction from an owned mine is internal")
	assert.Contains(t, snapshot.PrimaryProduction, f.Ore.ID())
	assert.Equal(t, 10.0, snapshot.PreviousPeriodProduction[f.Ore.ID()])
}

func TestExtractProduction_PartialForfeitsRemainder(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	mine, err := f.World.BuildMine(alpha.ID(), f.Stratum.ID(), f.Ore.ID(), 1.0)
	require.NoError(t, err)

	handler := commands.NewExtractProductionHandler(f.World, nil)
	f.Clock.Advance(10)

	amount := 3.0
	_, err = handler.Handle(context.Background(), &commands.ExtractProductionCommand{
		MineID: mine.ID().String(),
		Amount: &amount,
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, alpha.Amount(f.Ore.ID()))
	assert.Equal(t, 0.0, mine.Amount(f.Ore.ID()))

	f.Clock.Advance(2)
	assert.Equal(t, 2.0, mine.Amount(f.Ore.ID()))
}

func TestExtractProduction_MoreThanAccruedIsRefused(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	mine, err := f.World.BuildMine(alpha.ID(), f.Stratum.ID(), f.Ore.ID(), 1.0)
	require.NoError(t, err)

	handler := commands.NewExtractProductionHandler(f.World, nil)
	f.Clock.Advance(2)

	amount := 5.0
	_, err = handler.Handle(context.Background(), &commands.ExtractProductionCommand{
		MineID: mine.ID().String(),
		Amount: &amount,
	})
	require.Error(t, err)

	var insufficient *stockpile.ErrInsufficientResources
	assert.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0.0, alpha.Amount(f.Ore.ID()))
	assert.Equal(t, 2.0, mine.Amount(f.Ore.ID()), "a refused extraction keeps the accrual")
}

func TestExtractProduction_RejectsOtherAreaKinds(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	market, err := f.World.BuildCommercialArea(alpha.ID(), 40, shared.EntityID{})
	require.NoError(t, err)

	handler := commands.NewExtractProductionHandler(f.World, nil)
	_, err = handler.Handle(context.Background(), &commands.ExtractProductionCommand{MineID: market.ID().String()})
	require.Error(t, err)

	var wrongKind *shared.WrongKindError
	assert.True(t, errors.As(err, &wrongKind))
}

func TestExtractProduction_UnknownMine(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	handler := commands.NewExtractProductionHandler(f.World, nil)

	_, err := handler.Handle(context.Background(), &commands.ExtractProductionCommand{MineID: shared.NewEntityID().String()})
	require.Error(t, err)

	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

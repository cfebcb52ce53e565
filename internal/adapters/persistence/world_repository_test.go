package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/persistence"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
	"github.com/andrescamacho/spaceeconomy-go/test/helpers"
)

func TestWorldRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWorldRepository(db)
	f := helpers.NewWorldFixture(t)

	a := f.FoundCity(t, "Alpha", 0, 0)
	b := f.FoundCity(t, "Beta", 3, 4)
	f.Seed(t, a, f.Ore, 120)
	f.Seed(t, b, f.Food, 7.5)
	a.SetEnergyNeeded(40)

	mine, err := f.World.BuildMine(a.ID(), f.Stratum.ID(), f.Ore.ID(), 2.5)
	require.NoError(t, err)
	mine.SetNecessaryGood(f.Food.ID(), 0.25)
	_, err = f.World.BuildPowerPlant(a.ID(), f.Food.ID(), 500, 30)
	require.NoError(t, err)
	logistics.ConnectSegments(a, b)

	f.Clock.Advance(9)

	// Act
	require.NoError(t, repo.Save(context.Background(), f.World))
	loaded, err := repo.Load(context.Background(), shared.NewGameClock(0))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shared.StarDate(9), loaded.Clock().Now())
	assert.Equal(t, 2, loaded.Catalog().Len())

	ore, err := loaded.Catalog().Lookup("iron_ore")
	require.NoError(t, err)
	assert.Equal(t, f.Ore.ID(), ore.ID())
	assert.Equal(t, []string{"ore"}, ore.Tags())

	planets := loaded.Planets()
	require.Len(t, planets, 1)
	assert.Equal(t, []shared.EntityID{a.ID(), b.ID()}, planets[0].CityIDs())

	la, err := loaded.City(a.ID())
	require.NoError(t, err)
	assert.Equal(t, 120.0, la.Amount(f.Ore.ID()))
	assert.Equal(t, 40, la.EnergyNeeded())
	assert.Equal(t, 30, la.EnergyProvided())
	assert.Equal(t, shared.NewGeographicPoint(0, 0), la.Location())
	require.Len(t, la.SupplyConnections(), 1)
	assert.True(t, la.SupplyConnections()[0].Equals(logistics.NewSupplyConnection(a.ID(), b.ID())))

	lb, err := loaded.City(b.ID())
	require.NoError(t, err)
	assert.Equal(t, 7.5, lb.Amount(f.Food.ID()))
	assert.Len(t, lb.SupplyConnections(), 1)

	require.Len(t, la.Areas(), 2)
	assert.Equal(t, area.KindMine, la.Areas()[0].Kind())
	assert.Equal(t, area.KindPowerPlant, la.Areas()[1].Kind())

	restored, ok := la.Areas()[0].(*area.MineArea)
	require.True(t, ok)
	assert.Equal(t, mine.ID(), restored.ID())
	assert.Equal(t, 2.5, restored.Productivity())
	assert.Equal(t, shared.StarDate(0), restored.LastExtraction())
	assert.Equal(t, 22.5, restored.Amount(f.Ore.ID()), "accrual survives the round trip")
	assert.Equal(t, 0.25, restored.NecessaryGoods()[f.Food.ID()])
	assert.True(t, loaded.IsInternal(mine.ID(), a.ID()))
}

func TestWorldRepository_SaveReplacesPreviousSnapshot(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWorldRepository(db)

	first := helpers.NewWorldFixture(t)
	first.FoundCity(t, "Old Town", 1, 1)
	require.NoError(t, repo.Save(context.Background(), first.World))

	second := helpers.NewWorldFixture(t)
	second.FoundCity(t, "New Town", 2, 2)

	// Act
	require.NoError(t, repo.Save(context.Background(), second.World))
	loaded, err := repo.Load(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	cities := loaded.Cities()
	require.Len(t, cities, 1)
	assert.Equal(t, "New Town", cities[0].Name())
}

func TestWorldRepository_LoadAppliesCityOptions(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWorldRepository(db)
	f := helpers.NewWorldFixture(t)
	f.FoundCity(t, "Alpha", 0, 0)
	require.NoError(t, repo.Save(context.Background(), f.World))

	// Act
	loaded, err := repo.Load(context.Background(), nil, world.WithCityOptions(city.WithLegacyDebit()))

	// Assert
	require.NoError(t, err)
	require.Len(t, loaded.Cities(), 1)
	assert.True(t, loaded.Cities()[0].LegacyDebit())
}

func TestWorldRepository_SaveCity(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWorldRepository(db)
	f := helpers.NewWorldFixture(t)
	c := f.FoundCity(t, "Alpha", 0, 0)
	f.Seed(t, c, f.Ore, 10)
	require.NoError(t, repo.Save(context.Background(), f.World))

	f.Seed(t, c, f.Ore, 5)
	f.Seed(t, c, f.Food, 3)
	c.SetEnergyNeeded(12)

	// Act
	require.NoError(t, repo.SaveCity(context.Background(), c))
	loaded, err := repo.Load(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	lc, err := loaded.City(c.ID())
	require.NoError(t, err)
	assert.Equal(t, 15.0, lc.Amount(f.Ore.ID()))
	assert.Equal(t, 3.0, lc.Amount(f.Food.ID()))
	assert.Equal(t, 12, lc.EnergyNeeded())
}

func TestWorldRepository_SaveCityUnknown(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWorldRepository(db)
	f := helpers.NewWorldFixture(t)
	c := f.FoundCity(t, "Unsaved", 0, 0)

	// Act
	err := repo.SaveCity(context.Background(), c)

	// Assert
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestWorldRepository_LoadEmptyDatabase(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWorldRepository(db)

	// Act
	loaded, err := repo.Load(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, loaded.Planets())
	assert.Equal(t, 0, loaded.Catalog().Len())
	assert.Equal(t, shared.StarDate(0), loaded.Clock().Now())
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// WorldFixture is a small world with one planet, one stratum and two goods
type WorldFixture struct {
	World   *world.World
	Clock   *shared.GameClock
	Planet  *planet.Planet
	Stratum *planet.Stratum
	Ore     *goods.Good
	Food    *goods.Good
}

// NewWorldFixture builds the fixture with the clock at date 0
func NewWorldFixture(t *testing.T, opts ...world.Option) *WorldFixture {
	t.Helper()

	clock := shared.NewGameClock(0)
	catalog := goods.NewCatalog(shared.NewIDAllocator(1))
	ore, err := catalog.Define("Iron Ore", "iron_ore", 1.0, 2.5, goods.WithTags("ore"))
	require.NoError(t, err)
	food, err := catalog.Define("Grain", "grain", 0.5, 0.8, goods.WithTags("food"), goods.Fractionable())
	require.NoError(t, err)

	w := world.New(clock, catalog, opts...)

	p, err := planet.NewPlanet("Terra", 100)
	require.NoError(t, err)
	require.NoError(t, w.AddPlanet(p))

	s, err := planet.NewStratum(p.ID(), "Crust", shared.NewGeographicPoint(0, 0), 50)
	require.NoError(t, err)
	s.SetDeposit(ore.ID(), 1.0)
	require.NoError(t, w.AddStratum(s))

	return &WorldFixture{
		World:   w,
		Clock:   clock,
		Planet:  p,
		Stratum: s,
		Ore:     ore,
		Food:    food,
	}
}

// FoundCity founds a city on the fixture planet
func (f *WorldFixture) FoundCity(t *testing.T, name string, x, y float64) *city.City {
	t.Helper()
	c, err := f.World.FoundCity(f.Planet.ID(), name, shared.NewGeographicPoint(x, y))
	require.NoError(t, err)
	return c
}

// Seed places an opening balance on a stockpile
func (f *WorldFixture) Seed(t *testing.T, target stockpile.ResourceStockpile, good *goods.Good, amount float64) {
	t.Helper()
	require.NoError(t, stockpile.Seed(target, good.ID(), amount))
}

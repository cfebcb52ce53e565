package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/queries"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/test/helpers"
)

func TestListCityBalances(t *testing.T) {
	f := helpers.NewWorldFixture(t)
	alpha := f.FoundCity(t, "Alpha", 0, 0)
	beta := f.FoundCity(t, "Beta", 3, 0)
	f.Seed(t, alpha, f.Food, 12)
	f.Seed(t, alpha, f.Ore, 3)
	f.Seed(t, beta, f.Food, 0)

	mars, err := planet.NewPlanet("Mars", 60)
	require.NoError(t, err)
	require.NoError(t, f.World.AddPlanet(mars))
	outpost, err := f.World.FoundCity(mars.ID(), "Outpost", shared.NewGeographicPoint(0, 0))
	require.NoError(t, err)
	f.Seed(t, outpost, f.Ore, 9)

	handler := queries.NewListCityBalancesHandler(f.World)

	t.Run("all planets", func(t *testing.T) {
		resp, err := handler.Handle(context.Background(), &queries.ListCityBalancesQuery{})
		require.NoError(t, err)

		balances := resp.(*queries.ListCityBalancesResponse).Balances
		require.Len(t, balances, 4)
		assert.Equal(t, queries.CityBalanceDTO{CityID: alpha.ID().String(), CityName: "Alpha", Good: "Iron Ore", Amount: 3}, balances[0])
		assert.Equal(t, queries.CityBalanceDTO{CityID: alpha.ID().String(), CityName: "Alpha", Good: "Grain", Amount: 12}, balances[1])
		assert.Equal(t, "Beta", balances[2].CityName)
		assert.Zero(t, balances[2].Amount)
		assert.Equal(t, "Outpost", balances[3].CityName)
	})

	t.Run("single planet", func(t *testing.T) {
		resp, err := handler.Handle(context.Background(), &queries.ListCityBalancesQuery{PlanetID: mars.ID().String()})
		require.NoError(t, err)

		balances := resp.(*queries.ListCityBalancesResponse).Balances
		require.Len(t, balances, 1)
		assert.Equal(t, 9.0, balances[0].Amount)
	})

	t.Run("unknown planet", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &queries.ListCityBalancesQuery{PlanetID: shared.NewEntityID().String()})
		assert.Error(t, err)
	})
}

package logistics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

type cityFixture struct {
	planet shared.EntityID
	cities map[shared.EntityID]*city.City
	sites  logistics.PlanetSites
}

func newCityFixture(t *testing.T, points ...shared.GeographicPoint) *cityFixture {
	t.Helper()
	f := &cityFixture{
		planet: shared.NewEntityID(),
		cities: make(map[shared.EntityID]*city.City),
	}
	f.sites = logistics.PlanetSites{
		PlanetID:  f.planet,
		Locations: make(map[shared.EntityID]shared.GeographicPoint),
	}
	for i, p := range points {
		c, err := city.NewCity(string(rune('A'+i)), f.planet, p)
		require.NoError(t, err)
		f.cities[c.ID()] = c
		f.sites.CityIDs = append(f.sites.CityIDs, c.ID())
		f.sites.Locations[c.ID()] = p
	}
	return f
}

func (f *cityFixture) resolver() logistics.NodeResolver {
	return logistics.NodeResolverFunc(func(id shared.EntityID) (logistics.SupplyNode, bool) {
		c, ok := f.cities[id]
		return c, ok
	})
}

func (f *cityFixture) city(i int) *city.City {
	return f.cities[f.sites.CityIDs[i]]
}

func TestSupplyLineGenerator_SquarePlanet(t *testing.T) {
	f := newCityFixture(t,
		shared.NewGeographicPoint(0, 0),
		shared.NewGeographicPoint(3, 0),
		shared.NewGeographicPoint(3, 4),
		shared.NewGeographicPoint(0, 4),
	)

	result, err := logistics.NewSupplyLineGenerator().Generate(context.Background(), f.sites, f.resolver())

	require.NoError(t, err)
	assert.Len(t, result.Connections, 3)
	assert.InDelta(t, 10.0, result.TotalWeight, 1e-9)
	assert.Equal(t, 6, result.CandidateEdges)

	// Diagonals are A-C and B-D
	diagonals := []logistics.SupplyConnection{
		logistics.NewSupplyConnection(f.city(0).ID(), f.city(2).ID()),
		logistics.NewSupplyConnection(f.city(1).ID(), f.city(3).ID()),
	}
	for _, conn := range result.Connections {
		for _, d := range diagonals {
			assert.False(t, conn.Equals(d), "diagonal %s selected", conn)
		}
	}

	degree := 0
	for i := 0; i < 4; i++ {
		degree += len(f.city(i).SupplyConnections())
	}
	assert.Equal(t, 6, degree)
}

func TestSupplyLineGenerator_SingleCity(t *testing.T) {
	f := newCityFixture(t, shared.NewGeographicPoint(10, 10))

	result, err := logistics.NewSupplyLineGenerator().Generate(context.Background(), f.sites, f.resolver())

	require.NoError(t, err)
	assert.Empty(t, result.Connections)
	assert.Empty(t, f.city(0).SupplyConnections())
}

func TestSupplyLineGenerator_EmptyPlanet(t *testing.T) {
	f := newCityFixture(t)

	result, err := logistics.NewSupplyLineGenerator().Generate(context.Background(), f.sites, f.resolver())

	require.NoError(t, err)
	assert.Empty(t, result.Connections)
	assert.Equal(t, 0.0, result.TotalWeight)
}

func TestSupplyLineGenerator_RerunAppendsUnlessCleared(t *testing.T) {
	f := newCityFixture(t, shared.NewGeographicPoint(0, 0), shared.NewGeographicPoint(1, 0))
	gen := logistics.NewSupplyLineGenerator()

	_, err := gen.Generate(context.Background(), f.sites, f.resolver())
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), f.sites, f.resolver())
	require.NoError(t, err)

	assert.Len(t, f.city(0).SupplyConnections(), 2)

	for _, c := range f.cities {
		c.ClearSupplyConnections()
	}
	_, err = gen.Generate(context.Background(), f.sites, f.resolver())
	require.NoError(t, err)

	assert.Len(t, f.city(0).SupplyConnections(), 1)
}

func TestSupplyLineGenerator_UnresolvableCityLeavesNodesUntouched(t *testing.T) {
	f := newCityFixture(t, shared.NewGeographicPoint(0, 0), shared.NewGeographicPoint(1, 0))
	ghost := shared.NewEntityID()
	f.sites.CityIDs = append(f.sites.CityIDs, ghost)
	f.sites.Locations[ghost] = shared.NewGeographicPoint(5, 5)

	_, err := logistics.NewSupplyLineGenerator().Generate(context.Background(), f.sites, f.resolver())

	var notFound *logistics.ErrNodeNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ghost.String(), notFound.ID)
	assert.Empty(t, f.city(0).SupplyConnections())
}

func TestSupplyLineGenerator_MissingLocation(t *testing.T) {
	f := newCityFixture(t, shared.NewGeographicPoint(0, 0), shared.NewGeographicPoint(1, 0))
	delete(f.sites.Locations, f.sites.CityIDs[1])

	_, err := logistics.NewSupplyLineGenerator().Generate(context.Background(), f.sites, f.resolver())

	var missing *logistics.ErrMissingLocation
	assert.ErrorAs(t, err, &missing)
}

func TestSupplyLineGenerator_DuplicateCity(t *testing.T) {
	f := newCityFixture(t, shared.NewGeographicPoint(0, 0))
	f.sites.CityIDs = append(f.sites.CityIDs, f.sites.CityIDs[0])

	_, err := logistics.NewSupplyLineGenerator().Generate(context.Background(), f.sites, f.resolver())

	var dup *logistics.ErrDuplicateSite
	assert.ErrorAs(t, err, &dup)
}

func TestSupplyLineGenerator_CancelledContext(t *testing.T) {
	f := newCityFixture(t, shared.NewGeographicPoint(0, 0), shared.NewGeographicPoint(1, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := logistics.NewSupplyLineGenerator().Generate(ctx, f.sites, f.resolver())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSupplyConnection_EqualityIgnoresOrder(t *testing.T) {
	a, b, c := shared.NewEntityID(), shared.NewEntityID(), shared.NewEntityID()

	assert.True(t, logistics.NewSupplyConnection(a, b).Equals(logistics.NewSupplyConnection(b, a)))
	assert.False(t, logistics.NewSupplyConnection(a, b).Equals(logistics.NewSupplyConnection(a, c)))

	other, ok := logistics.NewSupplyConnection(a, b).Other(a)
	assert.True(t, ok)
	assert.True(t, other.Equals(b))

	_, ok = logistics.NewSupplyConnection(a, b).Other(c)
	assert.False(t, ok)
}

package common

import (
	"context"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// WorldRepository persists the object store of a world session
type WorldRepository interface {
	// Save writes every planet, stratum, city, balance, area and supply connection
	Save(ctx context.Context, w *world.World) error

	// Load rebuilds a world, including its goods catalog, onto the given clock
	Load(ctx context.Context, clock *shared.GameClock, opts ...world.Option) (*world.World, error)

	// SaveCity writes a single city's balances and energy figures
	SaveCity(ctx context.Context, c *city.City) error
}

// SupplyNetworkRepository persists generated supply networks
type SupplyNetworkRepository interface {
	// ReplaceNetwork swaps the stored connections of a planet for conns
	ReplaceNetwork(ctx context.Context, planetID shared.EntityID, conns []logistics.SupplyConnection) error

	// AppendNetwork stores conns in addition to whatever the planet already has
	AppendNetwork(ctx context.Context, planetID shared.EntityID, conns []logistics.SupplyConnection) error

	// FindByPlanet returns the stored connections of a planet
	FindByPlanet(ctx context.Context, planetID shared.EntityID) ([]logistics.SupplyConnection, error)
}

// SupplyConnectionDTO is the outward shape of a supply connection
type SupplyConnectionDTO struct {
	CityA  string  `json:"city_a"`
	CityB  string  `json:"city_b"`
	NameA  string  `json:"name_a"`
	NameB  string  `json:"name_b"`
	Length float64 `json:"length"`
}

// LedgerLineDTO is one resource line of a city ledger report
type LedgerLineDTO struct {
	Good     string  `json:"good"`
	Balance  float64 `json:"balance"`
	Added    float64 `json:"added"`
	Removed  float64 `json:"removed"`
	Net      float64 `json:"net"`
	Imported float64 `json:"imported"`
	Exported float64 `json:"exported"`
}

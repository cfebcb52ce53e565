package steps

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/persistence"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/setup"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/database"
)

// sharedApplicationContext holds the world and command pipeline of one scenario.
// The mediator is built lazily so Given steps can finish shaping the world first.
type sharedApplicationContext struct {
	db       *gorm.DB
	clock    *shared.GameClock
	catalog  *goods.Catalog
	world    *world.World
	entries  *persistence.GormResourceFlowRepository
	networks *persistence.GormSupplyNetworkRepository
	mediator common.Mediator

	lastResponse common.Response
	lastErr      error
}

func newSharedApplicationContext() *sharedApplicationContext {
	return &sharedApplicationContext{}
}

// reset opens a fresh in-memory database and an empty world
func (ctx *sharedApplicationContext) reset() error {
	ctx.close()

	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}
	ctx.db = db
	ctx.entries = persistence.NewGormResourceFlowRepository(db)
	ctx.networks = persistence.NewGormSupplyNetworkRepository(db)
	ctx.clock = shared.NewGameClock(0)
	ctx.catalog = goods.NewCatalog(shared.NewIDAllocator(1))
	ctx.world = world.New(ctx.clock, ctx.catalog)
	ctx.mediator = nil
	ctx.lastResponse = nil
	ctx.lastErr = nil
	return nil
}

func (ctx *sharedApplicationContext) close() {
	if ctx.db != nil {
		database.Close(ctx.db)
		ctx.db = nil
	}
}

func (ctx *sharedApplicationContext) pipeline() (common.Mediator, error) {
	if ctx.mediator != nil {
		return ctx.mediator, nil
	}
	m, err := setup.NewHandlerRegistry(ctx.world, ctx.entries, ctx.networks).CreateConfiguredMediator()
	if err != nil {
		return nil, err
	}
	ctx.mediator = m
	return m, nil
}

func (ctx *sharedApplicationContext) city(name string) (*city.City, error) {
	return ctx.world.FindCityByName(name)
}

func (ctx *sharedApplicationContext) planet(name string) (*planet.Planet, error) {
	return ctx.world.FindPlanetByName(name)
}

func (ctx *sharedApplicationContext) good(identifier string) (*goods.Good, error) {
	return ctx.catalog.Lookup(identifier)
}

func (ctx *sharedApplicationContext) record(resp common.Response, err error) {
	ctx.lastResponse = resp
	ctx.lastErr = err
}

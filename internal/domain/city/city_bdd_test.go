package city_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

func TestResourceTransferFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeResourceTransferScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type transferContext struct {
	clock   *shared.GameClock
	catalog *goods.Catalog
	planet  shared.EntityID
	cities  map[string]*city.City
	mines   map[string]*area.MineArea
	err     error
}

func (tc *transferContext) reset() {
	tc.clock = shared.NewGameClock(0)
	tc.catalog = goods.NewCatalog(shared.NewIDAllocator(1))
	tc.planet = shared.NewEntityID()
	tc.cities = make(map[string]*city.City)
	tc.mines = make(map[string]*area.MineArea)
	tc.err = nil
}

func (tc *transferContext) good(identifier string) (goods.GoodID, error) {
	if g, err := tc.catalog.Lookup(identifier); err == nil {
		return g.ID(), nil
	}
	g, err := tc.catalog.Define(identifier, identifier, 1, 1)
	if err != nil {
		return 0, err
	}
	return g.ID(), nil
}

func (tc *transferContext) city(name string) (*city.City, error) {
	c, ok := tc.cities[name]
	if !ok {
		return nil, fmt.Errorf("unknown city %s", name)
	}
	return c, nil
}

func (tc *transferContext) mine(name string) (*area.MineArea, error) {
	m, ok := tc.mines[name]
	if !ok {
		return nil, fmt.Errorf("city %s runs no mine", name)
	}
	return m, nil
}

// Given steps

func (tc *transferContext) theStarDateIs(date int) error {
	tc.clock.SetDate(shared.StarDate(date))
	return nil
}

func (tc *transferContext) aCity(name string) error {
	c, err := city.NewCity(name, tc.planet, shared.NewGeographicPoint(0, 0))
	if err != nil {
		return err
	}
	tc.cities[name] = c
	return nil
}

func (tc *transferContext) cityHoldsUnitsOf(name string, amount float64, identifier string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	return stockpile.Seed(c, t, amount)
}

func (tc *transferContext) cityRunsAMineProducingAtPerTick(name, identifier string, productivity float64) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	m, err := area.NewMineArea(shared.NewEntityID(), t, productivity, tc.clock)
	if err != nil {
		return err
	}
	if err := c.AddArea(m); err != nil {
		return err
	}
	tc.mines[name] = m
	return nil
}

// When steps

func (tc *transferContext) unitsOfAreTransferredFromTo(amount float64, identifier, from, to string) error {
	src, err := tc.city(from)
	if err != nil {
		return err
	}
	dst, err := tc.city(to)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	tc.err = stockpile.Transfer(src, dst, t, amount)
	return nil
}

func (tc *transferContext) ticksPass(ticks int) error {
	tc.clock.Advance(int64(ticks))
	return nil
}

func (tc *transferContext) unitsOfAreExtractedFromTheMineOf(amount float64, identifier, name string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	m, err := tc.mine(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	tc.err = stockpile.Transfer(m, c, t, amount)
	return nil
}

func (tc *transferContext) theLedgersOfEveryCityAreCleared() error {
	for _, c := range tc.cities {
		c.ClearLedgers()
	}
	return nil
}

// Then steps

func (tc *transferContext) theTransferShouldSucceed() error {
	if tc.err != nil {
		return fmt.Errorf("expected transfer to succeed, got: %v", tc.err)
	}
	return nil
}

func (tc *transferContext) theTransferShouldFailWithInsufficientResources() error {
	var insufficient *stockpile.ErrInsufficientResources
	if !errors.As(tc.err, &insufficient) {
		return fmt.Errorf("expected insufficient resources error, got: %v", tc.err)
	}
	return nil
}

func (tc *transferContext) theTransferShouldFailWithAnInvalidAmount() error {
	var invalid *stockpile.ErrInvalidAmount
	if !errors.As(tc.err, &invalid) {
		return fmt.Errorf("expected invalid amount error, got: %v", tc.err)
	}
	return nil
}

func (tc *transferContext) cityShouldHoldUnitsOf(name string, expected float64, identifier string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	return expectAmount(fmt.Sprintf("%s balance of %s", name, identifier), expected, c.Amount(t))
}

func (tc *transferContext) cityShouldNotTrack(name, identifier string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	if c.Has(t) {
		return fmt.Errorf("expected %s not to track %s", name, identifier)
	}
	return nil
}

func (tc *transferContext) cityShouldHaveExportedUnitsOfTo(name string, expected float64, identifier, counterpart string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	other, err := tc.city(counterpart)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	return expectAmount("exports", expected, c.LedgerSnapshot().Exports[other.ID()][t])
}

func (tc *transferContext) cityShouldHaveImportedUnitsOfFrom(name string, expected float64, identifier, counterpart string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	other, err := tc.city(counterpart)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	return expectAmount("imports", expected, c.LedgerSnapshot().Imports[other.ID()][t])
}

func (tc *transferContext) cityLedgerShouldShowAddedAndRemovedOf(name string, added, removed float64, identifier string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	snap := c.LedgerSnapshot()
	if err := expectAmount("added", added, snap.Added(t)); err != nil {
		return err
	}
	return expectAmount("removed", removed, snap.Removed(t))
}

func (tc *transferContext) cityShouldHaveNoImports(name string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	if n := len(c.LedgerSnapshot().Imports); n != 0 {
		return fmt.Errorf("expected no imports, got %d counterparts", n)
	}
	return nil
}

func (tc *transferContext) cityShouldHaveNoExports(name string) error {
	c, err := tc.city(name)
	if err != nil {
		return err
	}
	if n := len(c.LedgerSnapshot().Exports); n != 0 {
		return fmt.Errorf("expected no exports, got %d counterparts", n)
	}
	return nil
}

func (tc *transferContext) theMineOfShouldHaveUnitsOfAvailable(name string, expected float64, identifier string) error {
	m, err := tc.mine(name)
	if err != nil {
		return err
	}
	t, err := tc.good(identifier)
	if err != nil {
		return err
	}
	return expectAmount("mine output", expected, m.Amount(t))
}

func expectAmount(what string, expected, actual float64) error {
	if math.Abs(expected-actual) > 1e-9 {
		return fmt.Errorf("expected %s to be %g, got %g", what, expected, actual)
	}
	return nil
}

func InitializeResourceTransferScenario(ctx *godog.ScenarioContext) {
	tc := &transferContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the star date is (\d+)$`, tc.theStarDateIs)
	ctx.Step(`^a city "([^"]*)"$`, tc.aCity)
	ctx.Step(`^city "([^"]*)" holds (-?[0-9.]+) units of "([^"]*)"$`, tc.cityHoldsUnitsOf)
	ctx.Step(`^city "([^"]*)" runs a mine producing "([^"]*)" at ([0-9.]+) per tick$`, tc.cityRunsAMineProducingAtPerTick)

	// When steps
	ctx.Step(`^(-?[0-9.]+) units of "([^"]*)" are transferred from "([^"]*)" to "([^"]*)"$`, tc.unitsOfAreTransferredFromTo)
	ctx.Step(`^(\d+) ticks pass$`, tc.ticksPass)
	ctx.Step(`^(-?[0-9.]+) units of "([^"]*)" are extracted from the mine of "([^"]*)"$`, tc.unitsOfAreExtractedFromTheMineOf)
	ctx.Step(`^the ledgers of every city are cleared$`, tc.theLedgersOfEveryCityAreCleared)

	// Then steps
	ctx.Step(`^the transfer should succeed$`, tc.theTransferShouldSucceed)
	ctx.Step(`^the transfer should fail with insufficient resources$`, tc.theTransferShouldFailWithInsufficientResources)
	ctx.Step(`^the transfer should fail with an invalid amount$`, tc.theTransferShouldFailWithAnInvalidAmount)
	ctx.Step(`^city "([^"]*)" should hold (-?[0-9.]+) units of "([^"]*)"$`, tc.cityShouldHoldUnitsOf)
	ctx.Step(`^city "([^"]*)" should not track "([^"]*)"$`, tc.cityShouldNotTrack)
	ctx.Step(`^city "([^"]*)" should have exported (-?[0-9.]+) units of "([^"]*)" to "([^"]*)"$`, tc.cityShouldHaveExportedUnitsOfTo)
	ctx.Step(`^city "([^"]*)" should have imported (-?[0-9.]+) units of "([^"]*)" from "([^"]*)"$`, tc.cityShouldHaveImportedUnitsOfFrom)
	ctx.Step(`^city "([^"]*)" ledger should show ([0-9.]+) added and ([0-9.]+) removed of "([^"]*)"$`, tc.cityLedgerShouldShowAddedAndRemovedOf)
	ctx.Step(`^city "([^"]*)" should have no imports$`, tc.cityShouldHaveNoImports)
	ctx.Step(`^city "([^"]*)" should have no exports$`, tc.cityShouldHaveNoExports)
	ctx.Step(`^the mine of "([^"]*)" should have ([0-9.]+) units of "([^"]*)" available$`, tc.theMineOfShouldHaveUnitsOfAvailable)
}

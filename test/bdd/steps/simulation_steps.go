package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	ledgerQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/ledger/queries"
	logisticsCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/commands"
	logisticsQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/queries"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/simulation"
	stockpileCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/commands"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

type simulationContext struct {
	app     *sharedApplicationContext
	strata  map[shared.EntityID]*planet.Stratum
	summary *simulation.RunSummary
}

func (s *simulationContext) reset() error {
	s.strata = make(map[shared.EntityID]*planet.Stratum)
	s.summary = nil
	return s.app.reset()
}

// Given

func (s *simulationContext) aWorldStartingAtStarDateWithGoods(date int, table *godog.Table) error {
	s.app.clock.SetDate(shared.StarDate(date))

	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		identifier := row.Cells[0].Value
		name := row.Cells[1].Value
		var opts []goods.GoodOption
		if fractionable, _ := strconv.ParseBool(row.Cells[2].Value); fractionable {
			opts = append(opts, goods.Fractionable())
		}
		if _, err := s.app.catalog.Define(name, identifier, 1, 1, opts...); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulationContext) aPlanetWithCities(name string, table *godog.Table) error {
	p, err := planet.NewPlanet(name, 100)
	if err != nil {
		return err
	}
	if err := s.app.world.AddPlanet(p); err != nil {
		return err
	}

	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		x, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return err
		}
		y, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		if _, err := s.app.world.FoundCity(p.ID(), row.Cells[0].Value, shared.NewGeographicPoint(x, y)); err != nil {
			return err
		}
	}
	return nil
}

func (s *simulationContext) cityRunsAMineProducingAtPerTick(name, identifier string, productivity float64) error {
	c, err := s.app.city(name)
	if err != nil {
		return err
	}
	good, err := s.app.good(identifier)
	if err != nil {
		return err
	}

	stratum, ok := s.strata[c.PlanetID()]
	if !ok {
		stratum, err = planet.NewStratum(c.PlanetID(), "Crust", shared.NewGeographicPoint(0, 0), 100)
		if err != nil {
			return err
		}
		if err := s.app.world.AddStratum(stratum); err != nil {
			return err
		}
		s.strata[c.PlanetID()] = stratum
	}
	stratum.SetDeposit(good.ID(), 1.0)

	_, err = s.app.world.BuildMine(c.ID(), stratum.ID(), good.ID(), productivity)
	return err
}

func (s *simulationContext) cityHoldsUnitsOf(name string, amount float64, identifier string) error {
	c, err := s.app.city(name)
	if err != nil {
		return err
	}
	good, err := s.app.good(identifier)
	if err != nil {
		return err
	}
	return stockpile.Seed(c, good.ID(), amount)
}

// When

func (s *simulationContext) theSimulationRunsForTicksWithPeriodsOfTicks(ticks, period int) error {
	m, err := s.app.pipeline()
	if err != nil {
		return err
	}
	runner := simulation.NewRunner(m, s.app.world, simulation.Config{TicksPerPeriod: period})
	s.summary, err = runner.Run(context.Background(), ticks)
	return err
}

func (s *simulationContext) sendsUnitsOfTo(from string, amount float64, identifier, to string) error {
	m, err := s.app.pipeline()
	if err != nil {
		return err
	}
	source, err := s.app.city(from)
	if err != nil {
		return err
	}
	destination, err := s.app.city(to)
	if err != nil {
		return err
	}
	s.app.record(m.Send(context.Background(), &stockpileCommands.TransferResourceCommand{
		FromID: source.ID().String(),
		ToID:   destination.ID().String(),
		Good:   identifier,
		Amount: amount,
	}))
	return nil
}

func (s *simulationContext) theSupplyNetworkOfIsGenerated(name string) error {
	m, err := s.app.pipeline()
	if err != nil {
		return err
	}
	p, err := s.app.planet(name)
	if err != nil {
		return err
	}
	s.app.record(m.Send(context.Background(), &logisticsCommands.GenerateSupplyNetworkCommand{
		PlanetID: p.ID().String(),
		Rebuild:  true,
	}))
	return s.app.lastErr
}

// Then

func (s *simulationContext) theStarDateShouldBe(expected int) error {
	if got := int(s.app.clock.Now()); got != expected {
		return fmt.Errorf("expected star date %d, got %d", expected, got)
	}
	return nil
}

func (s *simulationContext) extractionsShouldHaveBeenMade(expected int) error {
	if s.summary == nil {
		return fmt.Errorf("the simulation has not run")
	}
	if s.summary.Extractions != expected {
		return fmt.Errorf("expected %d extractions, got %d", expected, s.summary.Extractions)
	}
	return nil
}

func (s *simulationContext) periodsShouldHaveBeenClosed(expected int) error {
	if s.summary == nil {
		return fmt.Errorf("the simulation has not run")
	}
	if s.summary.PeriodsClosed != expected {
		return fmt.Errorf("expected %d closed periods, got %d", expected, s.summary.PeriodsClosed)
	}
	return nil
}

func (s *simulationContext) cityShouldHoldUnitsOf(name string, expected float64, identifier string) error {
	c, err := s.app.city(name)
	if err != nil {
		return err
	}
	good, err := s.app.good(identifier)
	if err != nil {
		return err
	}
	return expectFloat(fmt.Sprintf("balance of %s in %s", identifier, name), expected, c.Amount(good.ID()))
}

func (s *simulationContext) theLedgerOfShouldShowAddedOf(name string, expected float64, identifier string) error {
	c, err := s.app.city(name)
	if err != nil {
		return err
	}
	good, err := s.app.good(identifier)
	if err != nil {
		return err
	}
	snapshot := c.LedgerSnapshot()
	return expectFloat(fmt.Sprintf("%s added to %s", identifier, name), expected, snapshot.Added(good.ID()))
}

func (s *simulationContext) theJournalOfShouldContainEntries(name string, expected int) error {
	c, err := s.app.city(name)
	if err != nil {
		return err
	}
	count, err := s.app.entries.CountByEntity(context.Background(), c.ID(), ledger.DefaultQueryOptions())
	if err != nil {
		return err
	}
	if count != expected {
		return fmt.Errorf("expected %d journal entries for %s, got %d", expected, name, count)
	}
	return nil
}

func (s *simulationContext) theLatestJournalEntryOfShouldBeAnOfFrom(name, direction string, amount float64, counterpart string) error {
	m, err := s.app.pipeline()
	if err != nil {
		return err
	}
	resp, err := m.Send(context.Background(), &ledgerQueries.GetCityLedgerQuery{CityName: name, Limit: 1})
	if err != nil {
		return err
	}
	report := resp.(*ledgerQueries.GetCityLedgerResponse)
	if len(report.Entries) == 0 {
		return fmt.Errorf("no journal entries for %s", name)
	}

	other, err := s.app.city(counterpart)
	if err != nil {
		return err
	}
	entry := report.Entries[0]
	if entry.Direction != direction {
		return fmt.Errorf("expected direction %s, got %s", direction, entry.Direction)
	}
	if entry.Counterpart != other.ID().String() {
		return fmt.Errorf("expected counterpart %s, got %s", counterpart, entry.Counterpart)
	}
	return expectFloat("journal amount", amount, entry.Amount)
}

func (s *simulationContext) theCommandShouldSucceed() error {
	if s.app.lastErr != nil {
		return fmt.Errorf("expected success, got: %v", s.app.lastErr)
	}
	return nil
}

func (s *simulationContext) theCommandShouldFailWith(fragment string) error {
	if s.app.lastErr == nil {
		return fmt.Errorf("expected an error containing %q, got success", fragment)
	}
	if !strings.Contains(s.app.lastErr.Error(), fragment) {
		return fmt.Errorf("expected an error containing %q, got: %v", fragment, s.app.lastErr)
	}
	return nil
}

func (s *simulationContext) planetShouldHaveSupplyConnectionsWithTotalLength(name string, expected int, length float64) error {
	m, err := s.app.pipeline()
	if err != nil {
		return err
	}
	p, err := s.app.planet(name)
	if err != nil {
		return err
	}
	resp, err := m.Send(context.Background(), &logisticsQueries.GetSupplyNetworkQuery{PlanetID: p.ID().String()})
	if err != nil {
		return err
	}
	network := resp.(*logisticsQueries.GetSupplyNetworkResponse)
	if len(network.Connections) != expected {
		return fmt.Errorf("expected %d connections, got %d", expected, len(network.Connections))
	}
	return expectFloat("total supply line length", length, network.TotalLength)
}

func (s *simulationContext) theStoredNetworkOfShouldHaveConnections(name string, expected int) error {
	p, err := s.app.planet(name)
	if err != nil {
		return err
	}
	stored, err := s.app.networks.FindByPlanet(context.Background(), p.ID())
	if err != nil {
		return err
	}
	if len(stored) != expected {
		return fmt.Errorf("expected %d stored connections, got %d", expected, len(stored))
	}
	return nil
}

func expectFloat(what string, expected, actual float64) error {
	if math.Abs(expected-actual) > 1e-9 {
		return fmt.Errorf("expected %s to be %g, got %g", what, expected, actual)
	}
	return nil
}

// InitializeSimulationScenario registers the simulation steps
func InitializeSimulationScenario(sc *godog.ScenarioContext) {
	s := &simulationContext{app: newSharedApplicationContext()}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		s.app.close()
		return ctx, nil
	})

	sc.Step(`^a world starting at star date (\d+) with goods:$`, s.aWorldStartingAtStarDateWithGoods)
	sc.Step(`^a planet "([^"]*)" with cities:$`, s.aPlanetWithCities)
	sc.Step(`^city "([^"]*)" runs a mine producing "([^"]*)" at ([0-9.]+) per tick$`, s.cityRunsAMineProducingAtPerTick)
	sc.Step(`^city "([^"]*)" holds ([0-9.]+) units of "([^"]*)"$`, s.cityHoldsUnitsOf)

	sc.Step(`^the simulation runs for (\d+) ticks with periods of (\d+) ticks$`, s.theSimulationRunsForTicksWithPeriodsOfTicks)
	sc.Step(`^"([^"]*)" sends ([0-9.]+) units of "([^"]*)" to "([^"]*)"$`, s.sendsUnitsOfTo)
	sc.Step(`^the supply network of "([^"]*)" is generated$`, s.theSupplyNetworkOfIsGenerated)

	sc.Step(`^the star date should be (\d+)$`, s.theStarDateShouldBe)
	sc.Step(`^(\d+) extractions should have been made$`, s.extractionsShouldHaveBeenMade)
	sc.Step(`^(\d+) periods should have been closed$`, s.periodsShouldHaveBeenClosed)
	sc.Step(`^city "([^"]*)" should hold ([0-9.]+) units of "([^"]*)"$`, s.cityShouldHoldUnitsOf)
	sc.Step(`^the ledger of "([^"]*)" should show ([0-9.]+) added of "([^"]*)"$`, s.theLedgerOfShouldShowAddedOf)
	sc.Step(`^the journal of "([^"]*)" should contain (\d+) entries$`, s.theJournalOfShouldContainEntries)
	sc.Step(`^the latest journal entry of "([^"]*)" should be an "([^"]*)" of (-?[0-9.]+) from "([^"]*)"$`, s.theLatestJournalEntryOfShouldBeAnOfFrom)
	sc.Step(`^the command should succeed$`, s.theCommandShouldSucceed)
	sc.Step(`^the command should fail with "([^"]*)"$`, s.theCommandShouldFailWith)
	sc.Step(`^planet "([^"]*)" should have (\d+) supply connections with total length ([0-9.]+)$`, s.planetShouldHaveSupplyConnectionsWithTotalLength)
	sc.Step(`^the stored network of "([^"]*)" should have (\d+) connections$`, s.theStoredNetworkOfShouldHaveConnections)
}

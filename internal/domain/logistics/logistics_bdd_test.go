package logistics_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

func TestSupplyNetworkFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeSupplyNetworkScenario,
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

type supplyNetworkContext struct {
	planet     shared.EntityID
	sites      logistics.PlanetSites
	byName     map[string]*city.City
	byID       map[shared.EntityID]*city.City
	generator  *logistics.SupplyLineGenerator
	lastResult *logistics.GenerationResult
}

func (s *supplyNetworkContext) reset() {
	s.planet = shared.NewEntityID()
	s.sites = logistics.PlanetSites{
		PlanetID:  s.planet,
		Locations: make(map[shared.EntityID]shared.GeographicPoint),
	}
	s.byName = make(map[string]*city.City)
	s.byID = make(map[shared.EntityID]*city.City)
	s.generator = logistics.NewSupplyLineGenerator()
	s.lastResult = nil
}

func (s *supplyNetworkContext) addCity(name string, x, y float64) error {
	point := shared.NewGeographicPoint(x, y)
	c, err := city.NewCity(name, s.planet, point)
	if err != nil {
		return err
	}
	s.byName[name] = c
	s.byID[c.ID()] = c
	s.sites.CityIDs = append(s.sites.CityIDs, c.ID())
	s.sites.Locations[c.ID()] = point
	return nil
}

// Given steps

func (s *supplyNetworkContext) aPlanetWithCities(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		x, err := strconv.ParseFloat(cellValue(table, row, "x"), 64)
		if err != nil {
			return err
		}
		y, err := strconv.ParseFloat(cellValue(table, row, "y"), 64)
		if err != nil {
			return err
		}
		if err := s.addCity(cellValue(table, row, "name"), x, y); err != nil {
			return err
		}
	}
	return nil
}

func (s *supplyNetworkContext) aPlanetWithCitiesAtRandomPositions(count int) error {
	rng := rand.New(rand.NewSource(int64(count)))
	for i := 0; i < count; i++ {
		if err := s.addCity(fmt.Sprintf("City-%d", i), rng.Float64()*1000, rng.Float64()*1000); err != nil {
			return err
		}
	}
	return nil
}

// When steps

func (s *supplyNetworkContext) theSupplyNetworkIsGenerated() error {
	resolver := logistics.NodeResolverFunc(func(id shared.EntityID) (logistics.SupplyNode, bool) {
		c, ok := s.byID[id]
		return c, ok
	})

	result, err := s.generator.Generate(context.Background(), s.sites, resolver)
	if err != nil {
		return err
	}
	s.lastResult = result
	return nil
}

func (s *supplyNetworkContext) everyCitysSupplyConnectionsAreCleared() error {
	for _, c := range s.byID {
		c.ClearSupplyConnections()
	}
	return nil
}

// Then steps

func (s *supplyNetworkContext) supplyConnectionsShouldExist(expected int) error {
	if s.lastResult == nil {
		return fmt.Errorf("no network has been generated")
	}
	if got := len(s.lastResult.Connections); got != expected {
		return fmt.Errorf("expected %d connections, got %d", expected, got)
	}
	return nil
}

func (s *supplyNetworkContext) theTotalSupplyLineLengthShouldBe(expected float64) error {
	if math.Abs(s.lastResult.TotalWeight-expected) > 1e-9 {
		return fmt.Errorf("expected total length %g, got %g", expected, s.lastResult.TotalWeight)
	}
	return nil
}

func (s *supplyNetworkContext) connected(a, b string) (bool, error) {
	ca, ok := s.byName[a]
	if !ok {
		return false, fmt.Errorf("unknown city %s", a)
	}
	cb, ok := s.byName[b]
	if !ok {
		return false, fmt.Errorf("unknown city %s", b)
	}
	want := logistics.NewSupplyConnection(ca.ID(), cb.ID())
	for _, conn := range ca.SupplyConnections() {
		if conn.Equals(want) {
			return true, nil
		}
	}
	return false, nil
}

func (s *supplyNetworkContext) citiesShouldBeConnected(a, b string) error {
	ok, err := s.connected(a, b)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected %s and %s to be connected", a, b)
	}
	return nil
}

func (s *supplyNetworkContext) citiesShouldNotBeConnected(a, b string) error {
	ok, err := s.connected(a, b)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected %s and %s not to be connected", a, b)
	}
	return nil
}

func (s *supplyNetworkContext) cityShouldHaveSupplyConnections(name string, expected int) error {
	c, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("unknown city %s", name)
	}
	if got := len(c.SupplyConnections()); got != expected {
		return fmt.Errorf("expected %s to have %d connections, got %d", name, expected, got)
	}
	return nil
}

func (s *supplyNetworkContext) theSupplyNetworkShouldReachEveryCity() error {
	if len(s.sites.CityIDs) == 0 {
		return nil
	}

	start := s.sites.CityIDs[0]
	visited := map[shared.EntityID]bool{start: true}
	queue := []shared.EntityID{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, conn := range s.byID[current].SupplyConnections() {
			next, _ := conn.Other(current)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	if len(visited) != len(s.sites.CityIDs) {
		return fmt.Errorf("network reaches %d of %d cities", len(visited), len(s.sites.CityIDs))
	}
	return nil
}

// cellValue returns the value in row under the header named column
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func InitializeSupplyNetworkScenario(ctx *godog.ScenarioContext) {
	s := &supplyNetworkContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a planet with cities:$`, s.aPlanetWithCities)
	ctx.Step(`^a planet with (\d+) cities at random positions$`, s.aPlanetWithCitiesAtRandomPositions)

	// When steps
	ctx.Step(`^the supply network is generated$`, s.theSupplyNetworkIsGenerated)
	ctx.Step(`^every city's supply connections are cleared$`, s.everyCitysSupplyConnectionsAreCleared)

	// Then steps
	ctx.Step(`^(\d+) supply connections should exist$`, s.supplyConnectionsShouldExist)
	ctx.Step(`^the total supply line length should be ([0-9.]+)$`, s.theTotalSupplyLineLengthShouldBe)
	ctx.Step(`^cities "([^"]*)" and "([^"]*)" should be connected$`, s.citiesShouldBeConnected)
	ctx.Step(`^cities "([^"]*)" and "([^"]*)" should not be connected$`, s.citiesShouldNotBeConnected)
	ctx.Step(`^city "([^"]*)" should have (\d+) supply connections$`, s.cityShouldHaveSupplyConnections)
	ctx.Step(`^the supply network should reach every city$`, s.theSupplyNetworkShouldReachEveryCity)
}

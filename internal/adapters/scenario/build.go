package scenario

import (
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// BuildOptions controls how a scenario is turned into a world
type BuildOptions struct {
	// Catalog goods are defined before the scenario's own goods
	Catalog *Catalog

	// Clock defaults to a new clock at the scenario's start date
	Clock *shared.GameClock

	WorldOptions []world.Option
}

// Build creates a world from the scenario. Goods get ids in file order starting at 1.
func (s *Scenario) Build(opts BuildOptions) (*world.World, error) {
	clock := opts.Clock
	if clock == nil {
		clock = shared.NewGameClock(shared.StarDate(s.StartDate))
	} else {
		clock.SetDate(shared.StarDate(s.StartDate))
	}

	catalog := goods.NewCatalog(shared.NewIDAllocator(1))
	var defs []GoodSpec
	if opts.Catalog != nil {
		defs = append(defs, opts.Catalog.Goods...)
	}
	defs = append(defs, s.Goods...)
	for _, g := range defs {
		if err := defineGood(catalog, g); err != nil {
			return nil, err
		}
	}

	w := world.New(clock, catalog, opts.WorldOptions...)
	for _, ps := range s.Planets {
		if err := buildPlanet(w, ps); err != nil {
			return nil, fmt.Errorf("planet %s: %w", ps.Name, err)
		}
	}
	return w, nil
}

func defineGood(catalog *goods.Catalog, g GoodSpec) error {
	var gopts []goods.GoodOption
	if len(g.Tags) > 0 {
		gopts = append(gopts, goods.WithTags(g.Tags...))
	}
	if g.Fractionable {
		gopts = append(gopts, goods.Fractionable())
	}
	if _, err := catalog.Define(g.Name, g.Identifier, g.Volume, g.Mass, gopts...); err != nil {
		return fmt.Errorf("good %s: %w", g.Identifier, err)
	}
	return nil
}

func buildPlanet(w *world.World, ps PlanetSpec) error {
	p, err := planet.NewPlanet(ps.Name, ps.Radius)
	if err != nil {
		return err
	}
	if err := w.AddPlanet(p); err != nil {
		return err
	}

	strata := make(map[string]shared.EntityID, len(ps.Strata))
	for _, ss := range ps.Strata {
		st, err := planet.NewStratum(p.ID(), ss.Name, shared.NewGeographicPoint(ss.X, ss.Y), ss.Radius)
		if err != nil {
			return fmt.Errorf("stratum %s: %w", ss.Name, err)
		}
		for ident, richness := range ss.Deposits {
			good, err := w.Catalog().Lookup(ident)
			if err != nil {
				return fmt.Errorf("stratum %s: %w", ss.Name, err)
			}
			st.SetDeposit(good.ID(), richness)
		}
		if err := w.AddStratum(st); err != nil {
			return err
		}
		strata[ss.Name] = st.ID()
	}

	for _, cs := range ps.Cities {
		if err := buildCity(w, p.ID(), strata, cs); err != nil {
			return fmt.Errorf("city %s: %w", cs.Name, err)
		}
	}
	return nil
}

func buildCity(w *world.World, planetID shared.EntityID, strata map[string]shared.EntityID, cs CitySpec) error {
	c, err := w.FoundCity(planetID, cs.Name, shared.NewGeographicPoint(cs.X, cs.Y))
	if err != nil {
		return err
	}
	c.SetEnergyNeeded(cs.EnergyNeeded)

	for ident, amount := range cs.Resources {
		good, err := w.Catalog().Lookup(ident)
		if err != nil {
			return err
		}
		if err := stockpile.Seed(c, good.ID(), amount); err != nil {
			return fmt.Errorf("resource %s: %w", ident, err)
		}
	}

	for i, as := range cs.Areas {
		if err := buildArea(w, c.ID(), strata, as); err != nil {
			return fmt.Errorf("area %d (%s): %w", i, as.Kind, err)
		}
	}
	return nil
}

func buildArea(w *world.World, cityID shared.EntityID, strata map[string]shared.EntityID, as AreaSpec) error {
	switch as.Kind {
	case "MINE":
		good, err := w.Catalog().Lookup(as.Resource)
		if err != nil {
			return err
		}
		stratumID, ok := strata[as.Stratum]
		if !ok {
			return shared.NewNotFoundError("stratum", as.Stratum)
		}
		mine, err := w.BuildMine(cityID, stratumID, good.ID(), as.Productivity)
		if err != nil {
			return err
		}
		for ident, perTick := range as.NecessaryGoods {
			need, err := w.Catalog().Lookup(ident)
			if err != nil {
				return err
			}
			mine.SetNecessaryGood(need.ID(), perTick)
		}
		return nil

	case "COMMERCIAL":
		var currency shared.EntityID
		if as.Currency != "" {
			id, err := shared.ParseEntityID(as.Currency)
			if err != nil {
				return fmt.Errorf("currency: %w", err)
			}
			currency = id
		}
		_, err := w.BuildCommercialArea(cityID, as.TradeValue, currency)
		return err

	case "POWER_PLANT":
		fuel, err := w.Catalog().Lookup(as.Fuel)
		if err != nil {
			return err
		}
		_, err = w.BuildPowerPlant(cityID, fuel.ID(), as.MaxVolume, as.Capacity)
		return err
	}
	return fmt.Errorf("unknown area kind: %s", as.Kind)
}

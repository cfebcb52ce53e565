package cli

import (
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/config"
)

// resolvePlanet picks the planet to operate on
// Priority: --planet flag > user config default > the only planet of the world
func resolvePlanet(w *world.World) (*planet.Planet, error) {
	name := planetName
	if name == "" {
		if handler, err := config.NewUserConfigHandler(); err == nil {
			if userCfg, err := handler.Load(); err == nil {
				name = userCfg.DefaultPlanet
			}
		}
	}

	if name != "" {
		p, err := w.FindPlanetByName(name)
		if err != nil {
			return nil, fmt.Errorf("planet %q: %w", name, err)
		}
		return p, nil
	}

	planets := w.Planets()
	if len(planets) == 1 {
		return planets[0], nil
	}
	return nil, fmt.Errorf("no planet specified: use --planet, or set a default with 'spaceeconomy config set-planet'")
}

// resolveStockpileRef accepts a city name or an entity id (city or area) and returns the id
func resolveStockpileRef(w *world.World, ref string) (string, error) {
	if c, err := w.FindCityByName(ref); err == nil {
		return c.ID().String(), nil
	}
	id, err := shared.ParseEntityID(ref)
	if err != nil {
		return "", fmt.Errorf("%q is neither a city name nor an entity id", ref)
	}
	return id.String(), nil
}

// nameOf returns a display name for a city or area id
func nameOf(w *world.World, id string) string {
	eid, err := shared.ParseEntityID(id)
	if err != nil {
		return id
	}
	if c, err := w.City(eid); err == nil {
		return c.Name()
	}
	if a, err := w.Area(eid); err == nil {
		if owner, err := w.AreaOwner(eid); err == nil {
			return fmt.Sprintf("%s %s (%s)", owner.Name(), a.Kind(), eid.Short())
		}
		return fmt.Sprintf("%s (%s)", a.Kind(), eid.Short())
	}
	return eid.Short()
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}

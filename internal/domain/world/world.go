package world

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

// World is the session context: the clock, the goods catalog and every planet, stratum,
// city and area of one simulation. It resolves entities by identity for the logistics
// and stockpile services.
type World struct {
	mu sync.RWMutex

	clock   *shared.GameClock
	catalog *goods.Catalog

	planets     map[shared.EntityID]*planet.Planet
	planetOrder []shared.EntityID
	strata      map[shared.EntityID]*planet.Stratum
	cities      map[shared.EntityID]*city.City
	areas       map[shared.EntityID]area.Area
	areaOwners  map[shared.EntityID]shared.EntityID

	cityOptions []city.Option
}

// Option configures a World
type Option func(*World)

// WithCityOptions applies opts to every city founded or restored in the world
func WithCityOptions(opts ...city.Option) Option {
	return func(w *World) {
		w.cityOptions = append(w.cityOptions, opts...)
	}
}

// New creates an empty world
func New(clock *shared.GameClock, catalog *goods.Catalog, opts ...Option) *World {
	w := &World{
		clock:      clock,
		catalog:    catalog,
		planets:    make(map[shared.EntityID]*planet.Planet),
		strata:     make(map[shared.EntityID]*planet.Stratum),
		cities:     make(map[shared.EntityID]*city.City),
		areas:      make(map[shared.EntityID]area.Area),
		areaOwners: make(map[shared.EntityID]shared.EntityID),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Clock() *shared.GameClock { return w.clock }
func (w *World) Catalog() *goods.Catalog { return w.catalog }

// CityOptions returns the options applied to cities of this world
func (w *World) CityOptions() []city.Option {
	result := make([]city.Option, len(w.cityOptions))
	copy(result, w.cityOptions)
	return result
}

// Planets

func (w *World) AddPlanet(p *planet.Planet) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.planets[p.ID()]; exists {
		return fmt.Errorf("planet %s already exists", p.ID())
	}
	w.planets[p.ID()] = p
	w.planetOrder = append(w.planetOrder, p.ID())
	return nil
}

func (w *World) Planet(id shared.EntityID) (*planet.Planet, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	p, ok := w.planets[id]
	if !ok {
		return nil, shared.NewNotFoundError("planet", id.String())
	}
	return p, nil
}

// Planets returns every planet in insertion order
func (w *World) Planets() []*planet.Planet {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := make([]*planet.Planet, 0, len(w.planetOrder))
	for _, id := range w.planetOrder {
		result = append(result, w.planets[id])
	}
	return result
}

// FindPlanetByName returns the first planet with the given name
func (w *World) FindPlanetByName(name string) (*planet.Planet, error) {
	for _, p := range w.Planets() {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, shared.NewNotFoundError("planet", name)
}

// Strata

// AddStratum registers s and attaches it to its planet
func (w *World) AddStratum(s *planet.Stratum) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.planets[s.PlanetID()]
	if !ok {
		return shared.NewNotFoundError("planet", s.PlanetID().String())
	}
	if _, exists := w.strata[s.ID()]; exists {
		return fmt.Errorf("stratum %s already exists", s.ID())
	}
	w.strata[s.ID()] = s
	p.AddStratum(s.ID())
	return nil
}

func (w *World) Stratum(id shared.EntityID) (*planet.Stratum, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s, ok := w.strata[id]
	if !ok {
		return nil, shared.NewNotFoundError("stratum", id.String())
	}
	return s, nil
}

// Cities

// FoundCity creates a city on a planet and appends it to the planet's colonization order
func (w *World) FoundCity(planetID shared.EntityID, name string, location shared.GeographicPoint) (*city.City, error) {
	c, err := city.NewCity(name, planetID, location, w.cityOptions...)
	if err != nil {
		return nil, err
	}
	if err := w.AddCity(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddCity registers an existing city and appends it to its planet's colonization order
// unless the planet already lists it
func (w *World) AddCity(c *city.City) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.planets[c.PlanetID()]
	if !ok {
		return shared.NewNotFoundError("planet", c.PlanetID().String())
	}
	if _, exists := w.cities[c.ID()]; exists {
		return fmt.Errorf("city %s already exists", c.ID())
	}

	listed := false
	for _, id := range p.CityIDs() {
		if id.Equals(c.ID()) {
			listed = true
			break
		}
	}
	if !listed {
		if err := p.AddCity(c.ID()); err != nil {
			return err
		}
	}
	w.cities[c.ID()] = c
	return nil
}

func (w *World) City(id shared.EntityID) (*city.City, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, ok := w.cities[id]
	if !ok {
		return nil, shared.NewNotFoundError("city", id.String())
	}
	return c, nil
}

// FindCityByName returns the first city with the given name, searching planets in order
func (w *World) FindCityByName(name string) (*city.City, error) {
	for _, c := range w.Cities() {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, shared.NewNotFoundError("city", name)
}

// CitiesOn returns a planet's cities in colonization order
func (w *World) CitiesOn(planetID shared.EntityID) ([]*city.City, error) {
	p, err := w.Planet(planetID)
	if err != nil {
		return nil, err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := p.CityIDs()
	result := make([]*city.City, 0, len(ids))
	for _, id := range ids {
		c, ok := w.cities[id]
		if !ok {
			return nil, shared.NewNotFoundError("city", id.String())
		}
		result = append(result, c)
	}
	return result, nil
}

// Cities returns every city, planet by planet in colonization order
func (w *World) Cities() []*city.City {
	var result []*city.City
	for _, p := range w.Planets() {
		cities, err := w.CitiesOn(p.ID())
		if err != nil {
			continue
		}
		result = append(result, cities...)
	}
	return result
}

// Areas

// BuildMine constructs a mine on a stratum of the city's planet and gives it to the city
func (w *World) BuildMine(cityID, stratumID shared.EntityID, resource goods.GoodID, productivity float64) (*area.MineArea, error) {
	c, err := w.City(cityID)
	if err != nil {
		return nil, err
	}
	s, err := w.Stratum(stratumID)
	if err != nil {
		return nil, err
	}
	if !s.PlanetID().Equals(c.PlanetID()) {
		return nil, fmt.Errorf("stratum %s is not on the planet of city %s", s.Name(), c.Name())
	}
	if _, ok := w.catalog.Get(resource); !ok {
		return nil, shared.NewNotFoundError("good", resource.String())
	}

	mine, err := area.NewMineArea(stratumID, resource, productivity, w.clock)
	if err != nil {
		return nil, err
	}
	if err := w.AttachArea(cityID, mine); err != nil {
		return nil, err
	}
	return mine, nil
}

// BuildCommercialArea constructs a marketplace owned by the city
func (w *World) BuildCommercialArea(cityID shared.EntityID, tradeValue int, currency shared.EntityID) (*area.CommercialArea, error) {
	commercial, err := area.NewCommercialArea(tradeValue, currency)
	if err != nil {
		return nil, err
	}
	if err := w.AttachArea(cityID, commercial); err != nil {
		return nil, err
	}
	return commercial, nil
}

// BuildPowerPlant constructs a plant owned by the city and refreshes the city's energy supply
func (w *World) BuildPowerPlant(cityID shared.EntityID, fuel goods.GoodID, maxVolume float64, capacity int) (*area.PowerPlantArea, error) {
	if _, ok := w.catalog.Get(fuel); !ok {
		return nil, shared.NewNotFoundError("good", fuel.String())
	}
	plant, err := area.NewPowerPlantArea(fuel, maxVolume, capacity)
	if err != nil {
		return nil, err
	}
	if err := w.AttachArea(cityID, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// AttachArea registers a and transfers its ownership to the city
func (w *World) AttachArea(cityID shared.EntityID, a area.Area) error {
	c, err := w.City(cityID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.areas[a.ID()]; exists {
		return fmt.Errorf("area %s already exists", a.ID())
	}
	if err := c.AddArea(a); err != nil {
		return err
	}
	w.areas[a.ID()] = a
	w.areaOwners[a.ID()] = cityID

	if a.Kind() == area.KindPowerPlant {
		c.RecomputeEnergyProvided()
	}
	return nil
}

func (w *World) Area(id shared.EntityID) (area.Area, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	a, ok := w.areas[id]
	if !ok {
		return nil, shared.NewNotFoundError("area", id.String())
	}
	return a, nil
}

// AreaOwner returns the city owning an area
func (w *World) AreaOwner(areaID shared.EntityID) (*city.City, error) {
	w.mu.RLock()
	owner, ok := w.areaOwners[areaID]
	w.mu.RUnlock()
	if !ok {
		return nil, shared.NewNotFoundError("area", areaID.String())
	}
	return w.City(owner)
}

// IsInternal reports whether a movement between a and b stays within one city, that is
// one of them is an area owned by the other
func (w *World) IsInternal(a, b shared.EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if owner, ok := w.areaOwners[a]; ok && owner.Equals(b) {
		return true
	}
	if owner, ok := w.areaOwners[b]; ok && owner.Equals(a) {
		return true
	}
	return false
}

// ProductionSite pairs a mine with the city it delivers to
type ProductionSite struct {
	Mine *area.MineArea
	City *city.City
}

// ProductionSites returns every mine with its owning city, cities in world order and
// mines in construction order
func (w *World) ProductionSites() []ProductionSite {
	var sites []ProductionSite
	for _, c := range w.Cities() {
		owner := c
		collect := area.DispatchTable{
			Mine: func(m *area.MineArea) {
				sites = append(sites, ProductionSite{Mine: m, City: owner})
			},
		}
		for _, a := range c.Areas() {
			a.Accept(collect)
		}
	}
	return sites
}

// Resolution

// SupplyNode resolves a city id for the supply line generator
func (w *World) SupplyNode(id shared.EntityID) (logistics.SupplyNode, bool) {
	c, err := w.City(id)
	if err != nil {
		return nil, false
	}
	return c, true
}

// Stockpile resolves a city or a mine by id
func (w *World) Stockpile(id shared.EntityID) (stockpile.ResourceStockpile, error) {
	if c, err := w.City(id); err == nil {
		return c, nil
	}

	a, err := w.Area(id)
	if err != nil {
		return nil, shared.NewNotFoundError("stockpile", id.String())
	}
	s, ok := a.(stockpile.ResourceStockpile)
	if !ok {
		return nil, shared.NewWrongKindError(id.String(), "resource stockpile")
	}
	return s, nil
}

// PlanetSites returns the generator input for a planet: its city ids in colonization order
// and each city's location
func (w *World) PlanetSites(planetID shared.EntityID) (logistics.PlanetSites, error) {
	p, err := w.Planet(planetID)
	if err != nil {
		return logistics.PlanetSites{}, err
	}

	ids := p.CityIDs()
	sites := logistics.PlanetSites{
		PlanetID:  planetID,
		CityIDs:   ids,
		Locations: make(map[shared.EntityID]shared.GeographicPoint, len(ids)),
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, id := range ids {
		if c, ok := w.cities[id]; ok {
			sites.Locations[id] = c.Location()
		}
	}
	return sites, nil
}

var _ logistics.NodeResolver = (*World)(nil)

package planet

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Planet holds its cities in colonization order. That order fixes the vertex numbering
// used when the supply network is generated.
type Planet struct {
	mu sync.RWMutex

	id      shared.EntityID
	name    string
	radius  float64
	cityIDs []shared.EntityID
	strata  []shared.EntityID
}

// NewPlanet creates a planet with no cities
func NewPlanet(name string, radius float64) (*Planet, error) {
	return ReconstructPlanet(shared.NewEntityID(), name, radius, nil, nil)
}

// ReconstructPlanet rebuilds a planet from persisted state
func ReconstructPlanet(id shared.EntityID, name string, radius float64, cityIDs, strata []shared.EntityID) (*Planet, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if radius < 0 {
		return nil, shared.NewValidationError("radius", fmt.Sprintf("cannot be negative: %g", radius))
	}

	p := &Planet{id: id, name: name, radius: radius}
	p.cityIDs = append(p.cityIDs, cityIDs...)
	p.strata = append(p.strata, strata...)
	return p, nil
}

func (p *Planet) ID() shared.EntityID { return p.id }
func (p *Planet) Name() string { return p.name }
func (p *Planet) Radius() float64 { return p.radius }

// AddCity appends a city to the colonization order
func (p *Planet) AddCity(id shared.EntityID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.cityIDs {
		if existing.Equals(id) {
			return fmt.Errorf("city %s already on planet %s", id.Short(), p.name)
		}
	}
	p.cityIDs = append(p.cityIDs, id)
	return nil
}

// CityIDs returns the cities in colonization order
func (p *Planet) CityIDs() []shared.EntityID {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]shared.EntityID, len(p.cityIDs))
	copy(result, p.cityIDs)
	return result
}

func (p *Planet) CityCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cityIDs)
}

func (p *Planet) AddStratum(id shared.EntityID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.strata = append(p.strata, id)
}

func (p *Planet) StratumIDs() []shared.EntityID {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]shared.EntityID, len(p.strata))
	copy(result, p.strata)
	return result
}

func (p *Planet) String() string {
	return fmt.Sprintf("Planet[%s, %s, cities=%d]", p.id.Short(), p.name, p.CityCount())
}

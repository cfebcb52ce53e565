package planet

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Stratum is a geological layer of a planet that mines draw from
type Stratum struct {
	id       shared.EntityID
	planetID shared.EntityID
	name     string
	location shared.GeographicPoint
	radius   float64
	deposits map[goods.GoodID]float64 // relative richness per resource
}

// NewStratum creates a stratum on planetID
func NewStratum(planetID shared.EntityID, name string, location shared.GeographicPoint, radius float64) (*Stratum, error) {
	return ReconstructStratum(shared.NewEntityID(), planetID, name, location, radius, nil)
}

// ReconstructStratum rebuilds a stratum from persisted state
func ReconstructStratum(
	id shared.EntityID,
	planetID shared.EntityID,
	name string,
	location shared.GeographicPoint,
	radius float64,
	deposits map[goods.GoodID]float64,
) (*Stratum, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if planetID.IsZero() {
		return nil, shared.NewValidationError("planet_id", "cannot be empty")
	}
	if radius < 0 {
		return nil, shared.NewValidationError("radius", fmt.Sprintf("cannot be negative: %g", radius))
	}

	s := &Stratum{
		id:       id,
		planetID: planetID,
		name:     name,
		location: location,
		radius:   radius,
		deposits: make(map[goods.GoodID]float64, len(deposits)),
	}
	for t, v := range deposits {
		s.deposits[t] = v
	}
	return s, nil
}

func (s *Stratum) ID() shared.EntityID { return s.id }
func (s *Stratum) PlanetID() shared.EntityID { return s.planetID }
func (s *Stratum) Name() string { return s.name }
func (s *Stratum) Location() shared.GeographicPoint { return s.location }
func (s *Stratum) Radius() float64 { return s.radius }

// SetDeposit records the richness of a resource in the stratum
func (s *Stratum) SetDeposit(t goods.GoodID, richness float64) {
	s.deposits[t] = richness
}

// Deposit returns the richness of t, 0 when absent
func (s *Stratum) Deposit(t goods.GoodID) float64 {
	return s.deposits[t]
}

// Resources returns the resources present in the stratum ordered by id
func (s *Stratum) Resources() []goods.GoodID {
	ids := make([]goods.GoodID, 0, len(s.deposits))
	for t := range s.deposits {
		ids = append(ids, t)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Deposits returns a copy of the deposit map
func (s *Stratum) Deposits() map[goods.GoodID]float64 {
	result := make(map[goods.GoodID]float64, len(s.deposits))
	for t, v := range s.deposits {
		result[t] = v
	}
	return result
}

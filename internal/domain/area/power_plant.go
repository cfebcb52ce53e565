package area

import (
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// PowerPlantArea burns a fuel good to supply energy to its city
type PowerPlantArea struct {
	id              shared.EntityID
	fuel            goods.GoodID
	maxVolume       float64
	currentCapacity int
}

// NewPowerPlantArea creates a plant providing currentCapacity energy units
func NewPowerPlantArea(fuel goods.GoodID, maxVolume float64, currentCapacity int) (*PowerPlantArea, error) {
	return ReconstructPowerPlantArea(shared.NewEntityID(), fuel, maxVolume, currentCapacity)
}

// ReconstructPowerPlantArea rebuilds a power plant from persisted state
func ReconstructPowerPlantArea(id shared.EntityID, fuel goods.GoodID, maxVolume float64, currentCapacity int) (*PowerPlantArea, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if maxVolume < 0 {
		return nil, shared.NewValidationError("max_volume", fmt.Sprintf("cannot be negative: %g", maxVolume))
	}
	if currentCapacity < 0 {
		return nil, shared.NewValidationError("current_capacity", fmt.Sprintf("cannot be negative: %d", currentCapacity))
	}
	return &PowerPlantArea{id: id, fuel: fuel, maxVolume: maxVolume, currentCapacity: currentCapacity}, nil
}

func (p *PowerPlantArea) ID() shared.EntityID { return p.id }
func (p *PowerPlantArea) Kind() Kind { return KindPowerPlant }
func (p *PowerPlantArea) JobClassification() JobType { return JobTypePowerWorker }
func (p *PowerPlantArea) Accept(d Dispatcher) { d.DispatchPowerPlant(p) }
func (p *PowerPlantArea) Fuel() goods.GoodID { return p.fuel }
func (p *PowerPlantArea) MaxVolume() float64 { return p.maxVolume }
func (p *PowerPlantArea) CurrentCapacity() int { return p.currentCapacity }

func (p *PowerPlantArea) String() string {
	return fmt.Sprintf("PowerPlant[%s, %s, capacity=%d]", p.id.Short(), p.fuel, p.currentCapacity)
}

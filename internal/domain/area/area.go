package area

import (
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Kind is the closed set of area kinds a city can own
type Kind string

const (
	KindMine       Kind = "MINE"
	KindCommercial Kind = "COMMERCIAL"
	KindPowerPlant Kind = "POWER_PLANT"
)

// AllKinds returns every area kind
func AllKinds() []Kind {
	return []Kind{KindMine, KindCommercial, KindPowerPlant}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindMine, KindCommercial, KindPowerPlant:
		return true
	default:
		return false
	}
}

// ParseKind parses a string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid area kind: %s", s)
	}
	return k, nil
}

// JobType is the job classification of the people working an area
type JobType string

const (
	JobTypeMiner       JobType = "MINER"
	JobTypeIndependent JobType = "INDEPENDENT"
	JobTypePowerWorker JobType = "POWER_WORKER"
)

// Area is implemented by every area kind. The set of implementations is closed:
// Accept dispatches to exactly one Dispatcher method per kind.
type Area interface {
	ID() shared.EntityID
	Kind() Kind
	JobClassification() JobType
	Accept(d Dispatcher)
}

// Dispatcher receives an area through its concrete kind
type Dispatcher interface {
	DispatchMine(a *MineArea)
	DispatchCommercial(a *CommercialArea)
	DispatchPowerPlant(a *PowerPlantArea)
}

// DispatchTable adapts one function per kind to the Dispatcher interface.
// Nil entries ignore areas of that kind.
type DispatchTable struct {
	Mine       func(a *MineArea)
	Commercial func(a *CommercialArea)
	PowerPlant func(a *PowerPlantArea)
}

func (t DispatchTable) DispatchMine(a *MineArea) {
	if t.Mine != nil {
		t.Mine(a)
	}
}

func (t DispatchTable) DispatchCommercial(a *CommercialArea) {
	if t.Commercial != nil {
		t.Commercial(a)
	}
}

func (t DispatchTable) DispatchPowerPlant(a *PowerPlantArea) {
	if t.PowerPlant != nil {
		t.PowerPlant(a)
	}
}

package area

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

// MineArea is a production-model stockpile. It stores nothing: its balance is the output
// accrued since the last extraction, productivity × (now − lastExtraction), with no cap.
//
// A successful debit resets lastExtraction to now and so discards the whole accrued
// surplus, not just the amount withdrawn.
type MineArea struct {
	mu sync.RWMutex

	id             shared.EntityID
	stratum        shared.EntityID
	resource       goods.GoodID
	productivity   float64 // units per tick
	lastExtraction shared.StarDate
	necessaryGoods map[goods.GoodID]float64

	clock shared.SimulationClock
}

// NewMineArea creates a mine drawing resource from stratum. Accrual starts at the
// clock's current date.
func NewMineArea(
	stratum shared.EntityID,
	resource goods.GoodID,
	productivity float64,
	clock shared.SimulationClock,
) (*MineArea, error) {
	if clock == nil {
		return nil, fmt.Errorf("mine area requires a simulation clock")
	}
	return ReconstructMineArea(shared.NewEntityID(), stratum, resource, productivity, clock.Now(), clock)
}

// ReconstructMineArea rebuilds a mine from persisted state
func ReconstructMineArea(
	id shared.EntityID,
	stratum shared.EntityID,
	resource goods.GoodID,
	productivity float64,
	lastExtraction shared.StarDate,
	clock shared.SimulationClock,
) (*MineArea, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if productivity < 0 {
		return nil, shared.NewValidationError("productivity", fmt.Sprintf("cannot be negative: %g", productivity))
	}
	if clock == nil {
		return nil, fmt.Errorf("mine area requires a simulation clock")
	}

	return &MineArea{
		id:             id,
		stratum:        stratum,
		resource:       resource,
		productivity:   productivity,
		lastExtraction: lastExtraction,
		necessaryGoods: make(map[goods.GoodID]float64),
		clock:          clock,
	}, nil
}

// Getters

func (m *MineArea) ID() shared.EntityID { return m.id }
func (m *MineArea) Kind() Kind { return KindMine }
func (m *MineArea) JobClassification() JobType { return JobTypeMiner }
func (m *MineArea) Accept(d Dispatcher) { d.DispatchMine(m) }
func (m *MineArea) StratumID() shared.EntityID { return m.stratum }
func (m *MineArea) ResourceMined() goods.GoodID { return m.resource }
func (m *MineArea) Productivity() float64 { return m.productivity }

// LastExtraction returns the date of the last successful withdrawal
func (m *MineArea) LastExtraction() shared.StarDate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastExtraction
}

// SetNecessaryGood records an input the mine consumes per tick of operation
func (m *MineArea) SetNecessaryGood(t goods.GoodID, perTick float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.necessaryGoods[t] = perTick
}

// NecessaryGoods returns a copy of the mine's inputs
func (m *MineArea) NecessaryGoods() map[goods.GoodID]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[goods.GoodID]float64, len(m.necessaryGoods))
	for t, v := range m.necessaryGoods {
		result[t] = v
	}
	return result
}

// ResourceStockpile implementation

// RegisterType is a no-op: a mine only ever holds the resource it produces
func (m *MineArea) RegisterType(t goods.GoodID) {}

// Amount returns the output accrued since the last extraction
func (m *MineArea) Amount(t goods.GoodID) float64 {
	if t != m.resource {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accruedUnsafe()
}

func (m *MineArea) accruedUnsafe() float64 {
	elapsed := m.clock.Now().Since(m.lastExtraction)
	if elapsed <= 0 {
		return 0
	}
	return m.productivity * float64(elapsed)
}

// Credit is a no-op: mined resources are generated, never deposited
func (m *MineArea) Credit(g stockpile.Grant, t goods.GoodID, amount float64) {}

// Debit succeeds when t is the mined resource and amount does not exceed the accrued
// output. On success the accrual clock restarts at now.
func (m *MineArea) Debit(g stockpile.Grant, t goods.GoodID, amount float64) bool {
	if !g.Valid() || t != m.resource {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if amount > m.accruedUnsafe() {
		return false
	}
	m.lastExtraction = m.clock.Now()
	return true
}

// CanHold is false for every type since credits would be discarded
func (m *MineArea) CanHold(t goods.GoodID) bool {
	return false
}

func (m *MineArea) Has(t goods.GoodID) bool {
	return t == m.resource
}

func (m *MineArea) HeldTypes() []goods.GoodID {
	return []goods.GoodID{m.resource}
}

func (m *MineArea) BeforeTransfer(t goods.GoodID, signedAmount float64, counterpart stockpile.ResourceStockpile) {
}

func (m *MineArea) AfterTransfer(t goods.GoodID, signedAmount float64, counterpart stockpile.ResourceStockpile) {
}

func (m *MineArea) String() string {
	return fmt.Sprintf("Mine[%s, %s @ %g/tick]", m.id.Short(), m.resource, m.productivity)
}

var _ stockpile.ResourceStockpile = (*MineArea)(nil)

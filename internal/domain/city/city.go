package city

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
)

// City is a settlement on a planet. It is a balance stockpile with its own ledger, a node
// in the planet's supply network and the owner of a set of areas.
//
// Thread-Safety:
// All state is guarded by a mutex. Getters return copies.
//
// Invariants:
// - A resource has a balance only once registered (Has false and Amount 0 before)
// - Balances never go negative through Debit
// - Transfers with owned areas are tallied but never appear as imports or exports
type City struct {
	mu sync.RWMutex

	id       shared.EntityID
	name     string
	planetID shared.EntityID
	location shared.GeographicPoint

	resources         map[goods.GoodID]float64
	ledger            *ledger.ResourceLedger
	supplyConnections []logistics.SupplyConnection
	areas             []area.Area

	energyProvided int
	energyNeeded   int

	legacyDebit bool
}

// Option configures a City
type Option func(*City)

// WithLegacyDebit makes successful debits leave the balance unchanged, matching the
// historical economy in which city stockpiles were never decremented.
func WithLegacyDebit() Option {
	return func(c *City) {
		c.legacyDebit = true
	}
}

// NewCity founds a city on planetID at location
func NewCity(name string, planetID shared.EntityID, location shared.GeographicPoint, opts ...Option) (*City, error) {
	return ReconstructCity(shared.NewEntityID(), name, planetID, location, opts...)
}

// ReconstructCity rebuilds a city from persisted state. Balances are restored
// with stockpile.Seed.
func ReconstructCity(
	id shared.EntityID,
	name string,
	planetID shared.EntityID,
	location shared.GeographicPoint,
	opts ...Option,
) (*City, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if planetID.IsZero() {
		return nil, shared.NewValidationError("planet_id", "cannot be empty")
	}

	c := &City{
		id:        id,
		name:      name,
		planetID:  planetID,
		location:  location,
		resources: make(map[goods.GoodID]float64),
		ledger:    ledger.NewResourceLedger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Getters

func (c *City) ID() shared.EntityID { return c.id }
func (c *City) Name() string { return c.name }
func (c *City) PlanetID() shared.EntityID { return c.planetID }
func (c *City) Location() shared.GeographicPoint { return c.location }
func (c *City) LegacyDebit() bool { return c.legacyDebit }

// Balances returns a copy of every tracked balance
func (c *City) Balances() map[goods.GoodID]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[goods.GoodID]float64, len(c.resources))
	for t, v := range c.resources {
		result[t] = v
	}
	return result
}

// ResourceStockpile implementation

func (c *City) RegisterType(t goods.GoodID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.resources[t]; !ok {
		c.resources[t] = 0
	}
}

func (c *City) Amount(t goods.GoodID) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resources[t]
}

// Credit adds amount to the balance of t, registering t if needed
func (c *City) Credit(g stockpile.Grant, t goods.GoodID, amount float64) {
	if !g.Valid() || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[t] += amount
}

// Debit removes amount from the balance of t. It fails when t is not tracked or the
// balance is short.
func (c *City) Debit(g stockpile.Grant, t goods.GoodID, amount float64) bool {
	if !g.Valid() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	balance, ok := c.resources[t]
	if !ok || amount > balance {
		return false
	}
	if !c.legacyDebit {
		c.resources[t] = balance - amount
	}
	return true
}

func (c *City) CanHold(t goods.GoodID) bool {
	return true
}

func (c *City) Has(t goods.GoodID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.resources[t]
	return ok
}

// HeldTypes returns the tracked resources ordered by id
func (c *City) HeldTypes() []goods.GoodID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	types := make([]goods.GoodID, 0, len(c.resources))
	for t := range c.resources {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (c *City) BeforeTransfer(t goods.GoodID, signedAmount float64, counterpart stockpile.ResourceStockpile) {
}

// AfterTransfer books the movement in the city's ledger
func (c *City) AfterTransfer(t goods.GoodID, signedAmount float64, counterpart stockpile.ResourceStockpile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	counterpartID := counterpart.ID()
	c.ledger.Record(t, signedAmount, counterpartID, c.ownsAreaUnsafe(counterpartID))
}

// Ledger

// LedgerSnapshot returns a copy of the current period's ledger
func (c *City) LedgerSnapshot() ledger.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger.Snapshot()
}

// ClearLedgers resets the ledger at the end of a reporting period
func (c *City) ClearLedgers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.Clear()
}

func (c *City) MarkPrimaryProduction(t goods.GoodID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.MarkPrimaryProduction(t)
}

func (c *City) RecordPeriodProduction(t goods.GoodID, amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger.RecordPeriodProduction(t, amount)
}

// Supply network

func (c *City) SupplyConnections() []logistics.SupplyConnection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]logistics.SupplyConnection, len(c.supplyConnections))
	copy(result, c.supplyConnections)
	return result
}

func (c *City) AddSupplyConnection(conn logistics.SupplyConnection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supplyConnections = append(c.supplyConnections, conn)
}

func (c *City) ClearSupplyConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supplyConnections = nil
}

// Areas

// AddArea places an area under the city's ownership
func (c *City) AddArea(a area.Area) error {
	if a == nil {
		return shared.NewValidationError("area", "cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ownsAreaUnsafe(a.ID()) {
		return fmt.Errorf("area %s already owned by city %s", a.ID().Short(), c.name)
	}
	c.areas = append(c.areas, a)
	return nil
}

func (c *City) Areas() []area.Area {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]area.Area, len(c.areas))
	copy(result, c.areas)
	return result
}

// OwnsArea reports whether id names one of the city's areas
func (c *City) OwnsArea(id shared.EntityID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ownsAreaUnsafe(id)
}

func (c *City) ownsAreaUnsafe(id shared.EntityID) bool {
	for _, a := range c.areas {
		if a.ID().Equals(id) {
			return true
		}
	}
	return false
}

// Energy

func (c *City) EnergyProvided() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.energyProvided
}

func (c *City) SetEnergyProvided(units int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.energyProvided = units
}

func (c *City) EnergyNeeded() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.energyNeeded
}

func (c *City) SetEnergyNeeded(units int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.energyNeeded = units
}

// RecomputeEnergyProvided sets the energy provided to the combined capacity of the
// city's power plants and returns it
func (c *City) RecomputeEnergyProvided() int {
	total := 0
	counter := area.DispatchTable{
		PowerPlant: func(p *area.PowerPlantArea) {
			total += p.CurrentCapacity()
		},
	}
	for _, a := range c.Areas() {
		a.Accept(counter)
	}

	c.SetEnergyProvided(total)
	return total
}

// HasEnergyShortfall reports whether demand exceeds what the city's plants provide
func (c *City) HasEnergyShortfall() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.energyNeeded > c.energyProvided
}

func (c *City) String() string {
	return fmt.Sprintf("City[%s, %s at %s]", c.id.Short(), c.name, c.location)
}

var _ stockpile.ResourceStockpile = (*City)(nil)
var _ logistics.SupplyNode = (*City)(nil)

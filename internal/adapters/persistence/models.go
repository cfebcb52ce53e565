package persistence

import (
	"time"
)

// WorldStateModel represents the world_state table (a single row holding the clock)
type WorldStateModel struct {
	ID        int       `gorm:"column:id;primaryKey"`
	StarDate  int64     `gorm:"column:star_date;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (WorldStateModel) TableName() string {
	return "world_state"
}

// GoodModel represents the goods table
type GoodModel struct {
	ID           int     `gorm:"column:id;primaryKey;autoIncrement:false"`
	Identifier   string  `gorm:"column:identifier;unique;not null"`
	Name         string  `gorm:"column:name;not null"`
	Volume       float64 `gorm:"column:volume;not null"`
	Mass         float64 `gorm:"column:mass;not null"`
	Tags         string  `gorm:"column:tags;type:text"`                   // JSON array as text
	Fractionable int     `gorm:"column:fractionable;not null;default:0"` // 0 or 1 (SQLite compatible)
}

func (GoodModel) TableName() string {
	return "goods"
}

// PlanetModel represents the planets table
type PlanetModel struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Name     string  `gorm:"column:name;not null"`
	Radius   float64 `gorm:"column:radius;not null"`
	Position int     `gorm:"column:position;not null"` // insertion order
}

func (PlanetModel) TableName() string {
	return "planets"
}

// StratumModel represents the strata table
type StratumModel struct {
	ID       string       `gorm:"column:id;primaryKey"`
	PlanetID string       `gorm:"column:planet_id;not null;index"`
	Planet   *PlanetModel `gorm:"foreignKey:PlanetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name     string       `gorm:"column:name"`
	X        float64      `gorm:"column:x;not null"`
	Y        float64      `gorm:"column:y;not null"`
	Radius   float64      `gorm:"column:radius;not null"`
	Deposits string       `gorm:"column:deposits;type:text"` // JSON object good id -> richness
}

func (StratumModel) TableName() string {
	return "strata"
}

// CityModel represents the cities table
type CityModel struct {
	ID             string       `gorm:"column:id;primaryKey"`
	PlanetID       string       `gorm:"column:planet_id;not null;index"`
	Planet         *PlanetModel `gorm:"foreignKey:PlanetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name           string       `gorm:"column:name;not null"`
	X              float64      `gorm:"column:x;not null"`
	Y              float64      `gorm:"column:y;not null"`
	Position       int          `gorm:"column:position;not null"` // colonization order on the planet
	EnergyNeeded   int          `gorm:"column:energy_needed;not null;default:0"`
	EnergyProvided int          `gorm:"column:energy_provided;not null;default:0"`
}

func (CityModel) TableName() string {
	return "cities"
}

// CityResourceModel represents the city_resources table
type CityResourceModel struct {
	CityID string     `gorm:"column:city_id;primaryKey"`
	City   *CityModel `gorm:"foreignKey:CityID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GoodID int        `gorm:"column:good_id;primaryKey"`
	Amount float64    `gorm:"column:amount;not null;default:0"`
}

func (CityResourceModel) TableName() string {
	return "city_resources"
}

// AreaModel represents the areas table. Columns that do not apply to an area's kind
// are left at their zero value.
type AreaModel struct {
	ID       string     `gorm:"column:id;primaryKey"`
	CityID   string     `gorm:"column:city_id;not null;index"`
	City     *CityModel `gorm:"foreignKey:CityID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Kind     string     `gorm:"column:kind;not null"`
	Position int        `gorm:"column:position;not null"` // construction order within the city

	// Mine
	StratumID      string  `gorm:"column:stratum_id"`
	Resource       int     `gorm:"column:resource"`
	Productivity   float64 `gorm:"column:productivity"`
	LastExtraction int64   `gorm:"column:last_extraction"`
	NecessaryGoods string  `gorm:"column:necessary_goods;type:text"` // JSON object good id -> per tick

	// Commercial
	TradeValue int    `gorm:"column:trade_value"`
	Currency   string `gorm:"column:currency"`

	// Power plant
	Fuel            int     `gorm:"column:fuel"`
	MaxVolume       float64 `gorm:"column:max_volume"`
	CurrentCapacity int     `gorm:"column:current_capacity"`
}

func (AreaModel) TableName() string {
	return "areas"
}

// SupplyConnectionModel represents the supply_connections table. Each connection is
// stored once even though both endpoint cities hold it.
type SupplyConnectionModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	PlanetID  string    `gorm:"column:planet_id;not null;index"`
	CityA     string    `gorm:"column:city_a;not null"`
	CityB     string    `gorm:"column:city_b;not null"`
	Length    float64   `gorm:"column:length;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (SupplyConnectionModel) TableName() string {
	return "supply_connections"
}

// ResourceFlowModel represents the resource_flows table (the transfer journal)
type ResourceFlowModel struct {
	ID            string  `gorm:"column:id;primaryKey"`
	EntityID      string  `gorm:"column:entity_id;not null;index:idx_flow_entity_date"`
	CounterpartID string  `gorm:"column:counterpart_id;not null"`
	GoodID        int     `gorm:"column:good_id;not null"`
	Amount        float64 `gorm:"column:amount;not null"`
	Direction     string  `gorm:"column:direction;not null"`
	StarDate      int64   `gorm:"column:star_date;not null;index:idx_flow_entity_date"`
}

func (ResourceFlowModel) TableName() string {
	return "resource_flows"
}

// AllModels lists every model for migration
func AllModels() []interface{} {
	return []interface{}{
		&WorldStateModel{},
		&GoodModel{},
		&PlanetModel{},
		&StratumModel{},
		&CityModel{},
		&CityResourceModel{},
		&AreaModel{},
		&SupplyConnectionModel{},
		&ResourceFlowModel{},
	}
}

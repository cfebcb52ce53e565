package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/planet"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

const worldStateID = 1

// GormWorldRepository persists a whole world session as a snapshot
type GormWorldRepository struct {
	db *gorm.DB
}

// NewGormWorldRepository creates a new GORM world repository
func NewGormWorldRepository(db *gorm.DB) *GormWorldRepository {
	return &GormWorldRepository{db: db}
}

// Save replaces the stored world with w. Goods are upserted and the journal is left alone.
func (r *GormWorldRepository) Save(ctx context.Context, w *world.World) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveCatalog(tx, w.Catalog()); err != nil {
			return err
		}

		state := WorldStateModel{ID: worldStateID, StarDate: int64(w.Clock().Now()), UpdatedAt: time.Now()}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&state).Error; err != nil {
			return fmt.Errorf("failed to save world state: %w", err)
		}

		// Children first so cascades never matter
		for _, model := range []interface{}{
			&SupplyConnectionModel{}, &AreaModel{}, &CityResourceModel{},
			&CityModel{}, &StratumModel{}, &PlanetModel{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		for i, p := range w.Planets() {
			if err := savePlanet(tx, w, p, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveCity updates one city's energy figures and balances
func (r *GormWorldRepository) SaveCity(ctx context.Context, c *city.City) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CityModel{}).Where("id = ?", c.ID().String()).Updates(map[string]interface{}{
			"energy_needed":   c.EnergyNeeded(),
			"energy_provided": c.EnergyProvided(),
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update city: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError("city", c.ID().String())
		}

		if err := tx.Where("city_id = ?", c.ID().String()).Delete(&CityResourceModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear city resources: %w", err)
		}
		return createAll(tx, cityResourceModels(c))
	})
}

// Load rebuilds the stored world onto clock. A nil clock starts a new one.
func (r *GormWorldRepository) Load(ctx context.Context, clock *shared.GameClock, opts ...world.Option) (*world.World, error) {
	db := r.db.WithContext(ctx)

	if clock == nil {
		clock = shared.NewGameClock(0)
	}
	var state WorldStateModel
	err := db.Where("id = ?", worldStateID).First(&state).Error
	switch {
	case err == nil:
		clock.SetDate(shared.StarDate(state.StarDate))
	case err != gorm.ErrRecordNotFound:
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	catalog, err := loadCatalog(db)
	if err != nil {
		return nil, err
	}
	w := world.New(clock, catalog, opts...)

	if err := loadPlanets(db, w); err != nil {
		return nil, err
	}
	if err := loadCities(db, w); err != nil {
		return nil, err
	}
	if err := loadAreas(db, w, clock); err != nil {
		return nil, err
	}
	if err := loadConnections(db, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Save helpers

func saveCatalog(tx *gorm.DB, catalog *goods.Catalog) error {
	all := catalog.All()
	models := make([]GoodModel, 0, len(all))
	for _, g := range all {
		tags, err := json.Marshal(g.Tags())
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		fractionable := 0
		if g.IsFractionable() {
			fractionable = 1
		}
		models = append(models, GoodModel{
			ID:           int(g.ID()),
			Identifier:   g.Identifier(),
			Name:         g.Name(),
			Volume:       g.Volume(),
			Mass:         g.Mass(),
			Tags:         string(tags),
			Fractionable: fractionable,
		})
	}
	if len(models) == 0 {
		return nil
	}
	if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save goods: %w", err)
	}
	return nil
}

func savePlanet(tx *gorm.DB, w *world.World, p *planet.Planet, position int) error {
	if err := tx.Create(&PlanetModel{
		ID:       p.ID().String(),
		Name:     p.Name(),
		Radius:   p.Radius(),
		Position: position,
	}).Error; err != nil {
		return fmt.Errorf("failed to save planet %s: %w", p.Name(), err)
	}

	for _, sid := range p.StratumIDs() {
		s, err := w.Stratum(sid)
		if err != nil {
			return err
		}
		deposits, err := json.Marshal(s.Deposits())
		if err != nil {
			return fmt.Errorf("failed to marshal deposits: %w", err)
		}
		loc := s.Location()
		if err := tx.Create(&StratumModel{
			ID:       s.ID().String(),
			PlanetID: p.ID().String(),
			Name:     s.Name(),
			X:        loc.X,
			Y:        loc.Y,
			Radius:   s.Radius(),
			Deposits: string(deposits),
		}).Error; err != nil {
			return fmt.Errorf("failed to save stratum: %w", err)
		}
	}

	cities, err := w.CitiesOn(p.ID())
	if err != nil {
		return err
	}
	for i, c := range cities {
		if err := saveCity(tx, w, p.ID(), c, i); err != nil {
			return err
		}
	}
	return nil
}

func saveCity(tx *gorm.DB, w *world.World, planetID shared.EntityID, c *city.City, position int) error {
	loc := c.Location()
	if err := tx.Create(&CityModel{
		ID:             c.ID().String(),
		PlanetID:       planetID.String(),
		Name:           c.Name(),
		X:              loc.X,
		Y:              loc.Y,
		Position:       position,
		EnergyNeeded:   c.EnergyNeeded(),
		EnergyProvided: c.EnergyProvided(),
	}).Error; err != nil {
		return fmt.Errorf("failed to save city %s: %w", c.Name(), err)
	}

	if err := createAll(tx, cityResourceModels(c)); err != nil {
		return err
	}

	areas := make([]AreaModel, 0)
	for i, a := range c.Areas() {
		model, err := areaToModel(c.ID(), a, i)
		if err != nil {
			return err
		}
		areas = append(areas, model)
	}
	if err := createAll(tx, areas); err != nil {
		return err
	}

	// Both endpoints hold each connection; store it from the A side only
	var conns []SupplyConnectionModel
	for _, conn := range c.SupplyConnections() {
		if !conn.A.Equals(c.ID()) {
			continue
		}
		other, err := w.City(conn.B)
		if err != nil {
			return err
		}
		conns = append(conns, SupplyConnectionModel{
			PlanetID:  planetID.String(),
			CityA:     conn.A.String(),
			CityB:     conn.B.String(),
			Length:    loc.DistanceTo(other.Location()),
			CreatedAt: time.Now(),
		})
	}
	return createAll(tx, conns)
}

func cityResourceModels(c *city.City) []CityResourceModel {
	balances := c.Balances()
	models := make([]CityResourceModel, 0, len(balances))
	for _, t := range c.HeldTypes() {
		models = append(models, CityResourceModel{
			CityID: c.ID().String(),
			GoodID: int(t),
			Amount: balances[t],
		})
	}
	return models
}

func areaToModel(cityID shared.EntityID, a area.Area, position int) (AreaModel, error) {
	model := AreaModel{
		ID:       a.ID().String(),
		CityID:   cityID.String(),
		Kind:     a.Kind().String(),
		Position: position,
	}

	var err error
	a.Accept(area.DispatchTable{
		Mine: func(m *area.MineArea) {
			var necessary []byte
			necessary, err = json.Marshal(m.NecessaryGoods())
			model.StratumID = m.StratumID().String()
			model.Resource = int(m.ResourceMined())
			model.Productivity = m.Productivity()
			model.LastExtraction = int64(m.LastExtraction())
			model.NecessaryGoods = string(necessary)
		},
		Commercial: func(c *area.CommercialArea) {
			model.TradeValue = c.TradeValue()
			model.Currency = c.Currency().String()
		},
		PowerPlant: func(p *area.PowerPlantArea) {
			model.Fuel = int(p.Fuel())
			model.MaxVolume = p.MaxVolume()
			model.CurrentCapacity = p.CurrentCapacity()
		},
	})
	if err != nil {
		return AreaModel{}, fmt.Errorf("failed to marshal area %s: %w", a.ID().Short(), err)
	}
	return model, nil
}

// createAll inserts a batch, skipping empty batches which GORM rejects
func createAll[T any](tx *gorm.DB, models []T) error {
	if len(models) == 0 {
		return nil
	}
	if err := tx.Create(&models).Error; err != nil {
		return fmt.Errorf("failed to insert %T: %w", models, err)
	}
	return nil
}

// Load helpers

func loadCatalog(db *gorm.DB) (*goods.Catalog, error) {
	var models []GoodModel
	if err := db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load goods: %w", err)
	}

	catalog := goods.NewCatalog(shared.NewIDAllocator(0))
	for _, m := range models {
		var tags []string
		if m.Tags != "" {
			if err := json.Unmarshal([]byte(m.Tags), &tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags of %s: %w", m.Identifier, err)
			}
		}
		opts := []goods.GoodOption{goods.WithTags(tags...)}
		if m.Fractionable == 1 {
			opts = append(opts, goods.Fractionable())
		}
		good, err := goods.NewGood(goods.GoodID(m.ID), m.Name, m.Identifier, m.Volume, m.Mass, opts...)
		if err != nil {
			return nil, err
		}
		if err := catalog.Restore(good); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func loadPlanets(db *gorm.DB, w *world.World) error {
	var planets []PlanetModel
	if err := db.Order("position ASC").Find(&planets).Error; err != nil {
		return fmt.Errorf("failed to load planets: %w", err)
	}
	for _, m := range planets {
		id, err := shared.ParseEntityID(m.ID)
		if err != nil {
			return err
		}
		p, err := planet.ReconstructPlanet(id, m.Name, m.Radius, nil, nil)
		if err != nil {
			return err
		}
		if err := w.AddPlanet(p); err != nil {
			return err
		}
	}

	var strata []StratumModel
	if err := db.Order("id ASC").Find(&strata).Error; err != nil {
		return fmt.Errorf("failed to load strata: %w", err)
	}
	for _, m := range strata {
		id, err := shared.ParseEntityID(m.ID)
		if err != nil {
			return err
		}
		planetID, err := shared.ParseEntityID(m.PlanetID)
		if err != nil {
			return err
		}
		var deposits map[goods.GoodID]float64
		if m.Deposits != "" {
			if err := json.Unmarshal([]byte(m.Deposits), &deposits); err != nil {
				return fmt.Errorf("failed to unmarshal deposits: %w", err)
			}
		}
		s, err := planet.ReconstructStratum(id, planetID, m.Name, shared.NewGeographicPoint(m.X, m.Y), m.Radius, deposits)
		if err != nil {
			return err
		}
		if err := w.AddStratum(s); err != nil {
			return err
		}
	}
	return nil
}

func loadCities(db *gorm.DB, w *world.World) error {
	var cities []CityModel
	if err := db.Order("planet_id ASC, position ASC").Find(&cities).Error; err != nil {
		return fmt.Errorf("failed to load cities: %w", err)
	}

	var resources []CityResourceModel
	if err := db.Order("good_id ASC").Find(&resources).Error; err != nil {
		return fmt.Errorf("failed to load city resources: %w", err)
	}
	byCity := make(map[string][]CityResourceModel)
	for _, r := range resources {
		byCity[r.CityID] = append(byCity[r.CityID], r)
	}

	for _, m := range cities {
		id, err := shared.ParseEntityID(m.ID)
		if err != nil {
			return err
		}
		planetID, err := shared.ParseEntityID(m.PlanetID)
		if err != nil {
			return err
		}
		c, err := city.ReconstructCity(id, m.Name, planetID, shared.NewGeographicPoint(m.X, m.Y), w.CityOptions()...)
		if err != nil {
			return err
		}
		c.SetEnergyNeeded(m.EnergyNeeded)
		c.SetEnergyProvided(m.EnergyProvided)

		for _, r := range byCity[m.ID] {
			if err := stockpile.Seed(c, goods.GoodID(r.GoodID), r.Amount); err != nil {
				return fmt.Errorf("failed to restore balance of %s: %w", m.Name, err)
			}
		}
		if err := w.AddCity(c); err != nil {
			return err
		}
	}
	return nil
}

func loadAreas(db *gorm.DB, w *world.World, clock shared.SimulationClock) error {
	var models []AreaModel
	if err := db.Order("city_id ASC, position ASC").Find(&models).Error; err != nil {
		return fmt.Errorf("failed to load areas: %w", err)
	}

	for i := range models {
		a, err := modelToArea(&models[i], clock)
		if err != nil {
			return err
		}
		cityID, err := shared.ParseEntityID(models[i].CityID)
		if err != nil {
			return err
		}
		if err := w.AttachArea(cityID, a); err != nil {
			return err
		}
	}
	return nil
}

func modelToArea(m *AreaModel, clock shared.SimulationClock) (area.Area, error) {
	id, err := shared.ParseEntityID(m.ID)
	if err != nil {
		return nil, err
	}
	kind, err := area.ParseKind(m.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case area.KindMine:
		stratumID, err := shared.ParseEntityID(m.StratumID)
		if err != nil {
			return nil, err
		}
		mine, err := area.ReconstructMineArea(
			id, stratumID, goods.GoodID(m.Resource), m.Productivity,
			shared.StarDate(m.LastExtraction), clock,
		)
		if err != nil {
			return nil, err
		}
		if m.NecessaryGoods != "" {
			var necessary map[goods.GoodID]float64
			if err := json.Unmarshal([]byte(m.NecessaryGoods), &necessary); err != nil {
				return nil, fmt.Errorf("failed to unmarshal necessary goods: %w", err)
			}
			for t, v := range necessary {
				mine.SetNecessaryGood(t, v)
			}
		}
		return mine, nil

	case area.KindCommercial:
		var currency shared.EntityID
		if m.Currency != "" {
			if currency, err = shared.ParseEntityID(m.Currency); err != nil {
				return nil, err
			}
		}
		return area.ReconstructCommercialArea(id, m.TradeValue, currency)

	default:
		return area.ReconstructPowerPlantArea(id, goods.GoodID(m.Fuel), m.MaxVolume, m.CurrentCapacity)
	}
}

func loadConnections(db *gorm.DB, w *world.World) error {
	var models []SupplyConnectionModel
	if err := db.Order("id ASC").Find(&models).Error; err != nil {
		return fmt.Errorf("failed to load supply connections: %w", err)
	}

	for _, m := range models {
		conn, err := modelToConnection(&m)
		if err != nil {
			return err
		}
		a, err := w.City(conn.A)
		if err != nil {
			return err
		}
		b, err := w.City(conn.B)
		if err != nil {
			return err
		}
		logistics.ConnectSegments(a, b)
	}
	return nil
}

func modelToConnection(m *SupplyConnectionModel) (logistics.SupplyConnection, error) {
	a, err := shared.ParseEntityID(m.CityA)
	if err != nil {
		return logistics.SupplyConnection{}, err
	}
	b, err := shared.ParseEntityID(m.CityB)
	if err != nil {
		return logistics.SupplyConnection{}, err
	}
	return logistics.NewSupplyConnection(a, b), nil
}

package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// GormSupplyNetworkRepository stores generated supply networks per planet
type GormSupplyNetworkRepository struct {
	db *gorm.DB
}

// NewGormSupplyNetworkRepository creates a new GORM supply network repository
func NewGormSupplyNetworkRepository(db *gorm.DB) *GormSupplyNetworkRepository {
	return &GormSupplyNetworkRepository{db: db}
}

// ReplaceNetwork deletes the planet's stored connections and writes conns in their place
func (r *GormSupplyNetworkRepository) ReplaceNetwork(ctx context.Context, planetID shared.EntityID, conns []logistics.SupplyConnection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("planet_id = ?", planetID.String()).Delete(&SupplyConnectionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear supply network: %w", err)
		}
		return r.insert(tx, planetID, conns)
	})
}

// AppendNetwork writes conns next to whatever the planet already has
func (r *GormSupplyNetworkRepository) AppendNetwork(ctx context.Context, planetID shared.EntityID, conns []logistics.SupplyConnection) error {
	return r.insert(r.db.WithContext(ctx), planetID, conns)
}

// FindByPlanet returns the planet's connections in the order they were stored
func (r *GormSupplyNetworkRepository) FindByPlanet(ctx context.Context, planetID shared.EntityID) ([]logistics.SupplyConnection, error) {
	var models []SupplyConnectionModel
	if err := r.db.WithContext(ctx).
		Where("planet_id = ?", planetID.String()).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find supply network: %w", err)
	}

	conns := make([]logistics.SupplyConnection, len(models))
	for i := range models {
		conn, err := modelToConnection(&models[i])
		if err != nil {
			return nil, err
		}
		conns[i] = conn
	}
	return conns, nil
}

// insert writes conns, taking lengths from the stored city coordinates when available
func (r *GormSupplyNetworkRepository) insert(tx *gorm.DB, planetID shared.EntityID, conns []logistics.SupplyConnection) error {
	if len(conns) == 0 {
		return nil
	}

	var cities []CityModel
	if err := tx.Where("planet_id = ?", planetID.String()).Find(&cities).Error; err != nil {
		return fmt.Errorf("failed to load city locations: %w", err)
	}
	locations := make(map[string]shared.GeographicPoint, len(cities))
	for _, c := range cities {
		locations[c.ID] = shared.NewGeographicPoint(c.X, c.Y)
	}

	now := time.Now()
	models := make([]SupplyConnectionModel, len(conns))
	for i, conn := range conns {
		model := SupplyConnectionModel{
			PlanetID:  planetID.String(),
			CityA:     conn.A.String(),
			CityB:     conn.B.String(),
			CreatedAt: now,
		}
		a, okA := locations[model.CityA]
		b, okB := locations[model.CityB]
		if okA && okB {
			model.Length = a.DistanceTo(b)
		}
		models[i] = model
	}
	return createAll(tx, models)
}

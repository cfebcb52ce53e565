package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// GormResourceFlowRepository implements ledger.EntryRepository using GORM
type GormResourceFlowRepository struct {
	db *gorm.DB
}

// NewGormResourceFlowRepository creates a new GORM journal repository
func NewGormResourceFlowRepository(db *gorm.DB) *GormResourceFlowRepository {
	return &GormResourceFlowRepository{db: db}
}

// Create persists new entries in a single batch
func (r *GormResourceFlowRepository) Create(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]ResourceFlowModel, len(entries))
	for i, e := range entries {
		models[i] = entryToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to create journal entries: %w", err)
	}
	return nil
}

// FindByID retrieves an entry by its ID
func (r *GormResourceFlowRepository) FindByID(ctx context.Context, id ledger.EntryID) (*ledger.Entry, error) {
	var model ResourceFlowModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, &ledger.ErrEntryNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find journal entry: %w", result.Error)
	}

	return modelToEntry(&model)
}

// FindByEntity retrieves entries recorded by an entity with optional filtering
func (r *GormResourceFlowRepository) FindByEntity(ctx context.Context, entityID shared.EntityID, opts ledger.QueryOptions) ([]*ledger.Entry, error) {
	query := r.db.WithContext(ctx).Where("entity_id = ?", entityID.String())
	query = r.applyFilters(query, opts)

	orderBy := "star_date DESC"
	if opts.OrderBy != "" {
		orderBy = opts.OrderBy
	}
	query = query.Order(orderBy)

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []ResourceFlowModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find journal entries: %w", err)
	}

	entries := make([]*ledger.Entry, len(models))
	for i := range models {
		e, err := modelToEntry(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert journal entry: %w", err)
		}
		entries[i] = e
	}
	return entries, nil
}

// CountByEntity returns the count of entries matching the criteria
func (r *GormResourceFlowRepository) CountByEntity(ctx context.Context, entityID shared.EntityID, opts ledger.QueryOptions) (int, error) {
	query := r.db.WithContext(ctx).Model(&ResourceFlowModel{}).Where("entity_id = ?", entityID.String())
	query = r.applyFilters(query, opts)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return int(count), nil
}

func (r *GormResourceFlowRepository) applyFilters(query *gorm.DB, opts ledger.QueryOptions) *gorm.DB {
	if opts.FromDate != nil {
		query = query.Where("star_date >= ?", int64(*opts.FromDate))
	}
	if opts.ToDate != nil {
		query = query.Where("star_date <= ?", int64(*opts.ToDate))
	}
	if opts.Good != nil {
		query = query.Where("good_id = ?", int(*opts.Good))
	}
	if opts.Direction != nil {
		query = query.Where("direction = ?", opts.Direction.String())
	}
	return query
}

func entryToModel(e *ledger.Entry) ResourceFlowModel {
	return ResourceFlowModel{
		ID:            e.ID().String(),
		EntityID:      e.EntityID().String(),
		CounterpartID: e.CounterpartID().String(),
		GoodID:        int(e.Good()),
		Amount:        e.Amount(),
		Direction:     e.Direction().String(),
		StarDate:      int64(e.Date()),
	}
}

func modelToEntry(m *ResourceFlowModel) (*ledger.Entry, error) {
	id, err := ledger.NewEntryIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	entityID, err := shared.ParseEntityID(m.EntityID)
	if err != nil {
		return nil, err
	}
	counterpart, err := shared.ParseEntityID(m.CounterpartID)
	if err != nil {
		return nil, err
	}
	direction := ledger.FlowDirection(m.Direction)
	if !direction.IsValid() {
		return nil, fmt.Errorf("invalid flow direction: %s", m.Direction)
	}

	return ledger.ReconstructEntry(
		id,
		entityID,
		counterpart,
		goods.GoodID(m.GoodID),
		m.Amount,
		direction,
		shared.StarDate(m.StarDate),
	), nil
}

var _ ledger.EntryRepository = (*GormResourceFlowRepository)(nil)

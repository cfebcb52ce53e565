package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// GetCityLedgerQuery reads a city's current-period ledger and, when a journal is
// configured, its most recent journal entries
type GetCityLedgerQuery struct {
	CityID   string // either CityID or CityName
	CityName string
	Limit    int // journal entries; 0 uses the default
}

// GetCityLedgerResponse is the period report of one city
type GetCityLedgerResponse struct {
	CityID            string
	CityName          string
	StarDate          int64
	Lines             []common.LedgerLineDTO
	PrimaryProduction []string
	PeriodProduction  map[string]float64
	Entries           []*EntryDTO
}

// EntryDTO is a journal entry data transfer object
type EntryDTO struct {
	ID          string
	Counterpart string
	Good        string
	Amount      float64
	Direction   string
	StarDate    int64
}

// GetCityLedgerHandler handles the GetCityLedger query
type GetCityLedgerHandler struct {
	world   *world.World
	entries ledger.EntryRepository // optional
}

// NewGetCityLedgerHandler creates a new GetCityLedgerHandler. entries may be nil.
func NewGetCityLedgerHandler(w *world.World, entries ledger.EntryRepository) *GetCityLedgerHandler {
	return &GetCityLedgerHandler{
		world:   w,
		entries: entries,
	}
}

// Handle executes the GetCityLedger query
func (h *GetCityLedgerHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetCityLedgerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCityLedgerQuery")
	}

	c, err := h.resolveCity(query)
	if err != nil {
		return nil, err
	}

	catalog := h.world.Catalog()
	snapshot := c.LedgerSnapshot()
	balances := c.Balances()

	response := &GetCityLedgerResponse{
		CityID:           c.ID().String(),
		CityName:         c.Name(),
		StarDate:         int64(h.world.Clock().Now()),
		PeriodProduction: make(map[string]float64, len(snapshot.PreviousPeriodProduction)),
	}

	for _, t := range ledgerGoods(snapshot, balances) {
		imported, exported := bucketTotals(snapshot, t)
		response.Lines = append(response.Lines, common.LedgerLineDTO{
			Good:     catalog.Name(t),
			Balance:  balances[t],
			Added:    snapshot.Added(t),
			Removed:  snapshot.Removed(t),
			Net:      snapshot.Net(t),
			Imported: imported,
			Exported: exported,
		})
	}
	for _, t := range snapshot.PrimaryProduction {
		response.PrimaryProduction = append(response.PrimaryProduction, catalog.Name(t))
	}
	for t, v := range snapshot.PreviousPeriodProduction {
		response.PeriodProduction[catalog.Name(t)] = v
	}

	if h.entries != nil {
		opts := ledger.DefaultQueryOptions()
		if query.Limit > 0 {
			opts.Limit = query.Limit
		}
		entries, err := h.entries.FindByEntity(ctx, c.ID(), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to query journal: %w", err)
		}
		for _, e := range entries {
			response.Entries = append(response.Entries, h.toDTO(e))
		}
	}

	return response, nil
}

func (h *GetCityLedgerHandler) resolveCity(query *GetCityLedgerQuery) (*city.City, error) {
	if query.CityID != "" {
		id, err := shared.ParseEntityID(query.CityID)
		if err != nil {
			return nil, fmt.Errorf("invalid city ID: %w", err)
		}
		return h.world.City(id)
	}
	if query.CityName != "" {
		return h.world.FindCityByName(query.CityName)
	}
	return nil, shared.NewValidationError("city", "either city ID or city name must be provided")
}

func (h *GetCityLedgerHandler) toDTO(e *ledger.Entry) *EntryDTO {
	return &EntryDTO{
		ID:          e.ID().String(),
		Counterpart: e.CounterpartID().String(),
		Good:        h.world.Catalog().Name(e.Good()),
		Amount:      e.Amount(),
		Direction:   e.Direction().String(),
		StarDate:    int64(e.Date()),
	}
}

// ledgerGoods merges the goods with a tally and the goods with a balance, ordered by id
func ledgerGoods(snapshot ledger.Snapshot, balances map[goods.GoodID]float64) []goods.GoodID {
	seen := make(map[goods.GoodID]bool)
	var ids []goods.GoodID
	for _, t := range snapshot.Goods() {
		seen[t] = true
		ids = append(ids, t)
	}
	for t := range balances {
		if !seen[t] {
			ids = append(ids, t)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func bucketTotals(snapshot ledger.Snapshot, t goods.GoodID) (imported, exported float64) {
	for _, bucket := range snapshot.Imports {
		imported += bucket[t]
	}
	for _, bucket := range snapshot.Exports {
		exported += bucket[t]
	}
	return imported, exported
}

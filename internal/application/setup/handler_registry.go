package setup

import (
	"reflect"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	ledgerCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/ledger/queries"
	logisticsCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/commands"
	logisticsQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/queries"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/mediator"
	stockpileCommands "github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/commands"
	stockpileQueries "github.com/andrescamacho/spaceeconomy-go/internal/application/stockpile/queries"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	world       *world.World
	transferrer *stockpile.Transferrer
	generator   *logistics.SupplyLineGenerator

	// Optional persistence
	entryRepo   ledger.EntryRepository
	networkRepo common.SupplyNetworkRepository
}

// NewHandlerRegistry creates a new handler registry. entryRepo and networkRepo may be nil,
// in which case transfers are not journaled and networks are kept in memory only.
func NewHandlerRegistry(
	w *world.World,
	entryRepo ledger.EntryRepository,
	networkRepo common.SupplyNetworkRepository,
) *HandlerRegistry {
	transferrer := stockpile.NewTransferrer(w.Clock())
	if entryRepo != nil {
		transferrer.AddObserver(ledgerCommands.NewFlowJournal(entryRepo, w))
	}

	return &HandlerRegistry{
		world:       w,
		transferrer: transferrer,
		generator:   logistics.NewSupplyLineGenerator(),
		entryRepo:   entryRepo,
		networkRepo: networkRepo,
	}
}

// Transferrer returns the shared transferrer so callers can attach more observers
func (r *HandlerRegistry) Transferrer() *stockpile.Transferrer {
	return r.transferrer
}

// RegisterStockpileHandlers registers all stockpile command and query handlers
//
// This method registers:
//   - TransferResourceCommand → TransferResourceHandler
//   - ExtractProductionCommand → ExtractProductionHandler (used by the simulation runner)
//   - ListCityBalancesQuery → ListCityBalancesHandler (used by the economy metrics poller)
func (r *HandlerRegistry) RegisterStockpileHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&stockpileCommands.TransferResourceCommand{}),
		stockpileCommands.NewTransferResourceHandler(r.world, r.transferrer),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&stockpileCommands.ExtractProductionCommand{}),
		stockpileCommands.NewExtractProductionHandler(r.world, r.transferrer),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&stockpileQueries.ListCityBalancesQuery{}),
		stockpileQueries.NewListCityBalancesHandler(r.world),
	)
}

// RegisterLedgerHandlers registers all ledger command and query handlers
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&ledgerCommands.ClearLedgersCommand{}),
		ledgerCommands.NewClearLedgersHandler(r.world),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&ledgerQueries.GetCityLedgerQuery{}),
		ledgerQueries.NewGetCityLedgerHandler(r.world, r.entryRepo),
	)
}

// RegisterLogisticsHandlers registers the supply network command and query handlers
func (r *HandlerRegistry) RegisterLogisticsHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&logisticsCommands.GenerateSupplyNetworkCommand{}),
		logisticsCommands.NewGenerateSupplyNetworkHandler(r.world, r.generator, r.networkRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&logisticsQueries.GetSupplyNetworkQuery{}),
		logisticsQueries.NewGetSupplyNetworkHandler(r.world),
	)
}

// CreateConfiguredMediator creates a new mediator with every handler registered and the
// given middlewares applied, first one outermost
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterStockpileHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterLedgerHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterLogisticsHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/area"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// ExtractProductionCommand withdraws a mine's accrued output into the city owning it
type ExtractProductionCommand struct {
	MineID string

	// Amount to withdraw. Nil withdraws everything accrued. Any successful withdrawal
	// restarts accrual, so a partial amount forfeits the remainder.
	Amount *float64
}

// ExtractProductionResponse reports what reached the city
type ExtractProductionResponse struct {
	MineID      string
	CityID      string
	Good        string
	Extracted   float64
	CityBalance float64
	StarDate    int64
}

// ExtractProductionHandler handles the ExtractProduction command
type ExtractProductionHandler struct {
	world       *world.World
	transferrer *stockpile.Transferrer
}

// NewExtractProductionHandler creates a new ExtractProductionHandler
func NewExtractProductionHandler(w *world.World, transferrer *stockpile.Transferrer) *ExtractProductionHandler {
	if transferrer == nil {
		transferrer = stockpile.NewTransferrer(w.Clock())
	}
	return &ExtractProductionHandler{
		world:       w,
		transferrer: transferrer,
	}
}

// Handle executes the ExtractProduction command
func (h *ExtractProductionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ExtractProductionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExtractProductionCommand")
	}

	mineID, err := shared.ParseEntityID(cmd.MineID)
	if err != nil {
		return nil, fmt.Errorf("invalid mine ID: %w", err)
	}
	a, err := h.world.Area(mineID)
	if err != nil {
		return nil, err
	}
	mine, ok := a.(*area.MineArea)
	if !ok {
		return nil, shared.NewWrongKindError(mineID.String(), area.KindMine.String())
	}
	owner, err := h.world.AreaOwner(mineID)
	if err != nil {
		return nil, fmt.Errorf("mine %s has no owning city: %w", mineID.Short(), err)
	}

	resource := mine.ResourceMined()
	good, ok := h.world.Catalog().Get(resource)
	if !ok {
		return nil, shared.NewNotFoundError("good", resource.String())
	}

	amount := mine.Amount(resource)
	if cmd.Amount != nil {
		amount = *cmd.Amount
	}

	if _, err := h.transferrer.Transfer(ctx, mine, owner, resource, amount); err != nil {
		metrics.RecordTransferFailure(good.Identifier(), FailureReason(err))
		return nil, fmt.Errorf("extraction from mine %s failed: %w", mineID.Short(), err)
	}

	owner.MarkPrimaryProduction(resource)
	owner.RecordPeriodProduction(resource, amount)
	metrics.RecordTransfer(good.Identifier(), amount, true)

	return &ExtractProductionResponse{
		MineID:      mineID.String(),
		CityID:      owner.ID().String(),
		Good:        good.Identifier(),
		Extracted:   amount,
		CityBalance: owner.Amount(resource),
		StarDate:    int64(h.world.Clock().Now()),
	}, nil
}

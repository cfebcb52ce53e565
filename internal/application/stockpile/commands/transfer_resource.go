package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// TransferResourceCommand moves a quantity of a good between two stockpiles
type TransferResourceCommand struct {
	FromID string
	ToID   string
	Good   string // catalog identifier
	Amount float64
}

// TransferResourceResponse reports the completed movement and the balances after it
type TransferResourceResponse struct {
	FromID      string
	ToID        string
	Good        string
	Amount      float64
	Internal    bool
	StarDate    int64
	FromBalance float64
	ToBalance   float64
}

// TransferResourceHandler handles the TransferResource command
type TransferResourceHandler struct {
	world       *world.World
	transferrer *stockpile.Transferrer
}

// NewTransferResourceHandler creates a new TransferResourceHandler
func NewTransferResourceHandler(w *world.World, transferrer *stockpile.Transferrer) *TransferResourceHandler {
	if transferrer == nil {
		transferrer = stockpile.NewTransferrer(w.Clock())
	}
	return &TransferResourceHandler{
		world:       w,
		transferrer: transferrer,
	}
}

// Handle executes the TransferResource command
func (h *TransferResourceHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TransferResourceCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TransferResourceCommand")
	}

	good, err := h.world.Catalog().Lookup(cmd.Good)
	if err != nil {
		return nil, err
	}

	fromID, err := shared.ParseEntityID(cmd.FromID)
	if err != nil {
		return nil, fmt.Errorf("invalid source ID: %w", err)
	}
	toID, err := shared.ParseEntityID(cmd.ToID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination ID: %w", err)
	}

	from, err := h.world.Stockpile(fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source: %w", err)
	}
	to, err := h.world.Stockpile(toID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination: %w", err)
	}

	movement, err := h.transferrer.Transfer(ctx, from, to, good.ID(), cmd.Amount)
	if err != nil {
		metrics.RecordTransferFailure(good.Identifier(), FailureReason(err))
		return nil, fmt.Errorf("transfer of %g %s refused: %w", cmd.Amount, good.Identifier(), err)
	}

	internal := h.world.IsInternal(fromID, toID)
	metrics.RecordTransfer(good.Identifier(), movement.Amount, internal)

	common.LoggerFromContext(ctx).Log("INFO", "Resource transferred", map[string]interface{}{
		"action":   "transfer_resource",
		"good":     good.Identifier(),
		"amount":   movement.Amount,
		"from":     fromID.Short(),
		"to":       toID.Short(),
		"internal": internal,
	})

	return &TransferResourceResponse{
		FromID:      fromID.String(),
		ToID:        toID.String(),
		Good:        good.Identifier(),
		Amount:      movement.Amount,
		Internal:    internal,
		StarDate:    int64(movement.Date),
		FromBalance: from.Amount(good.ID()),
		ToBalance:   to.Amount(good.ID()),
	}, nil
}

// FailureReason maps a transfer error to a short metrics label
func FailureReason(err error) string {
	var (
		insufficient *stockpile.ErrInsufficientResources
		badAmount    *stockpile.ErrInvalidAmount
		badTransfer  *stockpile.ErrInvalidTransfer
		cannotHold   *stockpile.ErrCannotHold
	)
	switch {
	case errors.As(err, &insufficient):
		return "insufficient"
	case errors.As(err, &cannotHold):
		return "cannot_hold"
	case errors.As(err, &badAmount):
		return "invalid_amount"
	case errors.As(err, &badTransfer):
		return "invalid_transfer"
	default:
		return "other"
	}
}

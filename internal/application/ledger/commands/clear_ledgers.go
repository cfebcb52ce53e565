package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// ClearLedgersCommand closes a reporting period by resetting city ledgers
type ClearLedgersCommand struct {
	PlanetID string // empty clears every city
}

// ClearLedgersResponse reports how many cities were reset
type ClearLedgersResponse struct {
	CitiesCleared int
	StarDate      int64
}

// ClearLedgersHandler handles the ClearLedgers command
type ClearLedgersHandler struct {
	world *world.World
}

// NewClearLedgersHandler creates a new ClearLedgersHandler
func NewClearLedgersHandler(w *world.World) *ClearLedgersHandler {
	return &ClearLedgersHandler{world: w}
}

// Handle executes the ClearLedgers command
func (h *ClearLedgersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ClearLedgersCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ClearLedgersCommand")
	}

	var cities []*city.City
	if cmd.PlanetID == "" {
		cities = h.world.Cities()
	} else {
		planetID, err := shared.ParseEntityID(cmd.PlanetID)
		if err != nil {
			return nil, fmt.Errorf("invalid planet ID: %w", err)
		}
		cities, err = h.world.CitiesOn(planetID)
		if err != nil {
			return nil, err
		}
	}

	for _, c := range cities {
		c.ClearLedgers()
	}

	metrics.RecordPeriodClose(len(cities))

	date := h.world.Clock().Now()
	common.LoggerFromContext(ctx).Log("INFO", "Ledgers cleared", map[string]interface{}{
		"action":    "clear_ledgers",
		"cities":    len(cities),
		"star_date": date.String(),
	})

	return &ClearLedgersResponse{
		CitiesCleared: len(cities),
		StarDate:      int64(date),
	}, nil
}

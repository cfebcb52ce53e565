package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/logistics/commands"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// GetSupplyNetworkQuery lists the supply connections of a planet
type GetSupplyNetworkQuery struct {
	PlanetID string
}

// GetSupplyNetworkResponse contains the planet's connections, each listed once
type GetSupplyNetworkResponse struct {
	PlanetID    string
	PlanetName  string
	Cities      int
	Connections []common.SupplyConnectionDTO
	TotalLength float64
}

// GetSupplyNetworkHandler handles the GetSupplyNetwork query
type GetSupplyNetworkHandler struct {
	world *world.World
}

// NewGetSupplyNetworkHandler creates a new handler
func NewGetSupplyNetworkHandler(w *world.World) *GetSupplyNetworkHandler {
	return &GetSupplyNetworkHandler{world: w}
}

// Handle executes the GetSupplyNetwork query
func (h *GetSupplyNetworkHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSupplyNetworkQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSupplyNetworkQuery")
	}

	planetID, err := shared.ParseEntityID(query.PlanetID)
	if err != nil {
		return nil, fmt.Errorf("invalid planet ID: %w", err)
	}
	planet, err := h.world.Planet(planetID)
	if err != nil {
		return nil, err
	}
	cities, err := h.world.CitiesOn(planetID)
	if err != nil {
		return nil, err
	}

	// Each connection is stored on both endpoints; keep the copy seen first.
	// Repeated generations without a rebuild leave true duplicates, which are kept.
	var conns []logistics.SupplyConnection
	for _, c := range cities {
		for _, conn := range c.SupplyConnections() {
			if conn.A.Equals(c.ID()) {
				conns = append(conns, conn)
			}
		}
	}

	dtos, err := commands.ConnectionsToDTO(h.world, conns)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, d := range dtos {
		total += d.Length
	}

	return &GetSupplyNetworkResponse{
		PlanetID:    planetID.String(),
		PlanetName:  planet.Name(),
		Cities:      len(cities),
		Connections: dtos,
		TotalLength: total,
	}, nil
}

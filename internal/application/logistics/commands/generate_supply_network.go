package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/spaceeconomy-go/internal/adapters/metrics"
	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// GenerateSupplyNetworkCommand connects the cities of a planet with supply lines
type GenerateSupplyNetworkCommand struct {
	PlanetID string

	// Rebuild replaces every city's existing connections. Without it the new
	// connections are appended to whatever the cities already have.
	Rebuild bool
}

// GenerateSupplyNetworkResponse describes the generated network
type GenerateSupplyNetworkResponse struct {
	PlanetID       string
	PlanetName     string
	Connections    []common.SupplyConnectionDTO
	TotalLength    float64
	CandidateEdges int
}

// GenerateSupplyNetworkHandler handles the GenerateSupplyNetwork command
type GenerateSupplyNetworkHandler struct {
	world     *world.World
	generator *logistics.SupplyLineGenerator
	networks  common.SupplyNetworkRepository // optional
}

// NewGenerateSupplyNetworkHandler creates a new handler. networks may be nil when the
// network is not persisted.
func NewGenerateSupplyNetworkHandler(
	w *world.World,
	generator *logistics.SupplyLineGenerator,
	networks common.SupplyNetworkRepository,
) *GenerateSupplyNetworkHandler {
	if generator == nil {
		generator = logistics.NewSupplyLineGenerator()
	}
	return &GenerateSupplyNetworkHandler{
		world:     w,
		generator: generator,
		networks:  networks,
	}
}

// Handle executes the GenerateSupplyNetwork command
func (h *GenerateSupplyNetworkHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*GenerateSupplyNetworkCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GenerateSupplyNetworkCommand")
	}

	logger := common.LoggerFromContext(ctx)

	planetID, err := shared.ParseEntityID(cmd.PlanetID)
	if err != nil {
		return nil, fmt.Errorf("invalid planet ID: %w", err)
	}
	planet, err := h.world.Planet(planetID)
	if err != nil {
		return nil, err
	}

	sites, err := h.world.PlanetSites(planetID)
	if err != nil {
		return nil, fmt.Errorf("failed to read planet sites: %w", err)
	}

	// The tree is built on pending nodes. Cities only change once the network is stored.
	pending := newPendingNodes(h.world)
	start := time.Now()
	result, err := h.generator.Generate(ctx, sites, pending)
	if err != nil {
		return nil, fmt.Errorf("failed to generate supply network for %s: %w", planet.Name(), err)
	}
	elapsed := time.Since(start)

	if h.networks != nil {
		if cmd.Rebuild {
			err = h.networks.ReplaceNetwork(ctx, planetID, result.Connections)
		} else {
			err = h.networks.AppendNetwork(ctx, planetID, result.Connections)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist supply network: %w", err)
		}
	}

	pending.apply(sites.CityIDs, cmd.Rebuild)

	metrics.RecordNetworkGeneration(planet.Name(), len(result.Connections), result.TotalWeight, elapsed)

	logger.Log("INFO", "Supply network generated", map[string]interface{}{
		"action":       "generate_supply_network",
		"planet":       planet.Name(),
		"cities":       len(sites.CityIDs),
		"connections":  len(result.Connections),
		"total_length": result.TotalWeight,
		"rebuild":      cmd.Rebuild,
	})

	dtos, err := ConnectionsToDTO(h.world, result.Connections)
	if err != nil {
		return nil, err
	}

	return &GenerateSupplyNetworkResponse{
		PlanetID:       planetID.String(),
		PlanetName:     planet.Name(),
		Connections:    dtos,
		TotalLength:    result.TotalWeight,
		CandidateEdges: result.CandidateEdges,
	}, nil
}

// ConnectionsToDTO resolves both endpoints of each connection for display
func ConnectionsToDTO(w *world.World, conns []logistics.SupplyConnection) ([]common.SupplyConnectionDTO, error) {
	dtos := make([]common.SupplyConnectionDTO, 0, len(conns))
	for _, conn := range conns {
		a, err := w.City(conn.A)
		if err != nil {
			return nil, err
		}
		b, err := w.City(conn.B)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, common.SupplyConnectionDTO{
			CityA:  conn.A.String(),
			CityB:  conn.B.String(),
			NameA:  a.Name(),
			NameB:  b.Name(),
			Length: a.Location().DistanceTo(b.Location()),
		})
	}
	return dtos, nil
}

// pendingNode collects connections for a city without touching it
type pendingNode struct {
	target      logistics.SupplyNode
	connections []logistics.SupplyConnection
}

func (n *pendingNode) ID() shared.EntityID { return n.target.ID() }

func (n *pendingNode) SupplyConnections() []logistics.SupplyConnection {
	return append([]logistics.SupplyConnection(nil), n.connections...)
}

func (n *pendingNode) AddSupplyConnection(c logistics.SupplyConnection) {
	n.connections = append(n.connections, c)
}

func (n *pendingNode) ClearSupplyConnections() { n.connections = nil }

// pendingNodes resolves cities through the world and hands out pending nodes in their place
type pendingNodes struct {
	world *world.World
	nodes map[shared.EntityID]*pendingNode
}

func newPendingNodes(w *world.World) *pendingNodes {
	return &pendingNodes{world: w, nodes: make(map[shared.EntityID]*pendingNode)}
}

func (p *pendingNodes) SupplyNode(id shared.EntityID) (logistics.SupplyNode, bool) {
	if n, ok := p.nodes[id]; ok {
		return n, true
	}
	target, ok := p.world.SupplyNode(id)
	if !ok || target == nil {
		return nil, false
	}
	n := &pendingNode{target: target}
	p.nodes[id] = n
	return n, true
}

// apply copies the collected connections onto the cities, clearing them first on a rebuild
func (p *pendingNodes) apply(cityIDs []shared.EntityID, rebuild bool) {
	for _, id := range cityIDs {
		n, ok := p.nodes[id]
		if !ok {
			continue
		}
		if rebuild {
			n.target.ClearSupplyConnections()
		}
		for _, c := range n.connections {
			n.target.AddSupplyConnection(c)
		}
	}
}

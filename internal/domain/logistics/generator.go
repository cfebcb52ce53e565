package logistics

import (
	"context"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// PlanetSites is the generator's view of a planet: its cities in colonization order and
// their coordinates
type PlanetSites struct {
	PlanetID  shared.EntityID
	CityIDs   []shared.EntityID
	Locations map[shared.EntityID]shared.GeographicPoint
}

// NodeResolver looks up the supply node for a city id
type NodeResolver interface {
	SupplyNode(id shared.EntityID) (SupplyNode, bool)
}

// NodeResolverFunc adapts a function to the NodeResolver interface
type NodeResolverFunc func(id shared.EntityID) (SupplyNode, bool)

func (f NodeResolverFunc) SupplyNode(id shared.EntityID) (SupplyNode, bool) {
	return f(id)
}

// GenerationResult describes the network produced for one planet
type GenerationResult struct {
	PlanetID       shared.EntityID
	Connections    []SupplyConnection
	TotalWeight    float64
	CandidateEdges int
}

// vertexIndex maps graph vertex indices to city ids. Index k of ids and sites refer to
// the same city. Built fresh for every generation.
type vertexIndex struct {
	ids   []shared.EntityID
	sites []Site
}

func newVertexIndex(planet PlanetSites) (*vertexIndex, error) {
	idx := &vertexIndex{
		ids:   make([]shared.EntityID, 0, len(planet.CityIDs)),
		sites: make([]Site, 0, len(planet.CityIDs)),
	}

	seen := make(map[shared.EntityID]struct{}, len(planet.CityIDs))
	for _, id := range planet.CityIDs {
		if _, dup := seen[id]; dup {
			return nil, &ErrDuplicateSite{ID: id.String()}
		}
		seen[id] = struct{}{}

		point, ok := planet.Locations[id]
		if !ok {
			return nil, &ErrMissingLocation{ID: id.String()}
		}
		idx.ids = append(idx.ids, id)
		idx.sites = append(idx.sites, Site{ID: id, Point: point})
	}
	return idx, nil
}

// SupplyLineGenerator connects the cities of a planet with a minimum-cost set of supply
// lines
type SupplyLineGenerator struct{}

// NewSupplyLineGenerator creates a new generator
func NewSupplyLineGenerator() *SupplyLineGenerator {
	return &SupplyLineGenerator{}
}

// Generate computes the minimum spanning tree over the planet's cities and records each
// accepted edge on both endpoint nodes.
//
// Connections are appended, never deduplicated: callers rebuilding a network clear the
// nodes' connections first. All nodes are resolved before any is mutated, so a resolution
// failure leaves every node untouched.
func (g *SupplyLineGenerator) Generate(ctx context.Context, planet PlanetSites, resolver NodeResolver) (*GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := newVertexIndex(planet)
	if err != nil {
		return nil, err
	}

	nodes := make([]SupplyNode, len(idx.ids))
	for i, id := range idx.ids {
		node, ok := resolver.SupplyNode(id)
		if !ok || node == nil {
			return nil, &ErrNodeNotFound{ID: id.String()}
		}
		nodes[i] = node
	}

	graph := BuildCandidateGraph(idx.sites)
	tree := KruskalMST(graph.VertexCount, graph.Edges)

	result := &GenerationResult{
		PlanetID:       planet.PlanetID,
		Connections:    make([]SupplyConnection, 0, len(tree)),
		TotalWeight:    TotalWeight(tree),
		CandidateEdges: len(graph.Edges),
	}
	for _, edge := range tree {
		conn := ConnectSegments(nodes[edge.A], nodes[edge.B])
		result.Connections = append(result.Connections, conn)
	}
	return result, nil
}

package logistics

import (
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Site is a city position fed to the graph builder
type Site struct {
	ID    shared.EntityID
	Point shared.GeographicPoint
}

// Edge is an undirected weighted edge between two vertex indices
type Edge struct {
	A      int
	B      int
	Weight float64
}

// CandidateGraph is the complete graph over a planet's cities
type CandidateGraph struct {
	VertexCount int
	Edges       []Edge
}

// BuildCandidateGraph emits one edge per unordered pair of sites, weighted by Euclidean
// distance. Edges come out in processing order: for i ascending, j from i+1 ascending.
// Vertex k is sites[k].
func BuildCandidateGraph(sites []Site) CandidateGraph {
	n := len(sites)
	graph := CandidateGraph{VertexCount: n}
	if n < 2 {
		return graph
	}

	graph.Edges = make([]Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			graph.Edges = append(graph.Edges, Edge{
				A:      i,
				B:      j,
				Weight: sites[i].Point.DistanceTo(sites[j].Point),
			})
		}
	}
	return graph
}

package logistics_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/logistics"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

func randomSites(rng *rand.Rand, n int) []logistics.Site {
	sites := make([]logistics.Site, n)
	for i := range sites {
		sites[i] = logistics.Site{
			ID:    shared.NewEntityID(),
			Point: shared.NewGeographicPoint(float64(rng.Intn(100)), float64(rng.Intn(100))),
		}
	}
	return sites
}

// isSpanningTree reports whether edges connect all n vertices without a cycle
func isSpanningTree(n int, edges []logistics.Edge) bool {
	if len(edges) != n-1 {
		return false
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var root func(int) int
	root = func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}
	for _, e := range edges {
		ra, rb := root(e.A), root(e.B)
		if ra == rb {
			return false
		}
		parent[ra] = rb
	}
	return true
}

// bruteForceMinimum enumerates every (n-1)-edge subset and returns the lightest spanning tree weight
func bruteForceMinimum(n int, edges []logistics.Edge) float64 {
	best := math.Inf(1)
	chosen := make([]logistics.Edge, 0, n-1)

	var walk func(start int)
	walk = func(start int) {
		if len(chosen) == n-1 {
			if isSpanningTree(n, chosen) {
				best = math.Min(best, logistics.TotalWeight(chosen))
			}
			return
		}
		for i := start; i < len(edges); i++ {
			chosen = append(chosen, edges[i])
			walk(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0)
	return best
}

func TestKruskalMST_ProducesSpanningTree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for n := 0; n <= 12; n++ {
		graph := logistics.BuildCandidateGraph(randomSites(rng, n))
		tree := logistics.KruskalMST(graph.VertexCount, graph.Edges)

		expected := n - 1
		if n == 0 {
			expected = 0
		}
		assert.Len(t, tree, expected, "n=%d", n)
		if n > 0 {
			assert.True(t, isSpanningTree(n, tree), "n=%d", n)
		}
	}
}

func TestKruskalMST_IsMinimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(5)
		graph := logistics.BuildCandidateGraph(randomSites(rng, n))

		tree := logistics.KruskalMST(graph.VertexCount, graph.Edges)

		assert.InDelta(t, bruteForceMinimum(n, graph.Edges), logistics.TotalWeight(tree), 1e-9, "trial %d n=%d", trial, n)
	}
}

func TestKruskalMST_SquareAvoidsDiagonals(t *testing.T) {
	sites := []logistics.Site{
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(0, 0)},
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(3, 0)},
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(3, 4)},
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(0, 4)},
	}
	graph := logistics.BuildCandidateGraph(sites)

	tree := logistics.KruskalMST(graph.VertexCount, graph.Edges)

	require.Len(t, tree, 3)
	assert.InDelta(t, 10.0, logistics.TotalWeight(tree), 1e-9)
	for _, e := range tree {
		assert.NotEqual(t, 5.0, e.Weight, "diagonal %d-%d selected", e.A, e.B)
	}
}

func TestKruskalMST_TiesKeepInputOrder(t *testing.T) {
	// Triangle with equal sides: the first two edges in input order win
	edges := []logistics.Edge{
		{A: 0, B: 1, Weight: 1},
		{A: 1, B: 2, Weight: 1},
		{A: 0, B: 2, Weight: 1},
	}

	tree := logistics.KruskalMST(3, edges)

	assert.Equal(t, edges[:2], tree)
}

func TestKruskalMST_DoesNotMutateInput(t *testing.T) {
	edges := []logistics.Edge{
		{A: 0, B: 1, Weight: 9},
		{A: 1, B: 2, Weight: 1},
		{A: 0, B: 2, Weight: 4},
	}
	original := append([]logistics.Edge(nil), edges...)

	logistics.KruskalMST(3, edges)

	assert.Equal(t, original, edges)
}

func TestKruskalMST_DisconnectedInputYieldsForest(t *testing.T) {
	edges := []logistics.Edge{
		{A: 0, B: 1, Weight: 1},
		{A: 2, B: 3, Weight: 1},
	}

	tree := logistics.KruskalMST(4, edges)

	assert.Len(t, tree, 2)
}

func TestKruskalMST_EmptyInputs(t *testing.T) {
	assert.Nil(t, logistics.KruskalMST(0, nil))
	assert.Empty(t, logistics.KruskalMST(1, nil))
}

func TestBuildCandidateGraph_CompleteGraphInProcessingOrder(t *testing.T) {
	sites := []logistics.Site{
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(0, 0)},
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(3, 4)},
		{ID: shared.NewEntityID(), Point: shared.NewGeographicPoint(6, 8)},
	}

	graph := logistics.BuildCandidateGraph(sites)

	assert.Equal(t, 3, graph.VertexCount)
	assert.Equal(t, []logistics.Edge{
		{A: 0, B: 1, Weight: 5},
		{A: 0, B: 2, Weight: 10},
		{A: 1, B: 2, Weight: 5},
	}, graph.Edges)
}

func TestBuildCandidateGraph_SingleSiteHasNoEdges(t *testing.T) {
	graph := logistics.BuildCandidateGraph([]logistics.Site{{ID: shared.NewEntityID()}})

	assert.Equal(t, 1, graph.VertexCount)
	assert.Empty(t, graph.Edges)
}

package logistics

import "sort"

// subset is a union-find node
type subset struct {
	parent int
	rank   int
}

// find returns the representative of i, compressing the path on the way up
func find(subsets []subset, i int) int {
	if subsets[i].parent != i {
		subsets[i].parent = find(subsets, subsets[i].parent)
	}
	return subsets[i].parent
}

// union merges the sets rooted at x and y by rank
func union(subsets []subset, x, y int) {
	rootX := find(subsets, x)
	rootY := find(subsets, y)

	switch {
	case subsets[rootX].rank < subsets[rootY].rank:
		subsets[rootX].parent = rootY
	case subsets[rootX].rank > subsets[rootY].rank:
		subsets[rootY].parent = rootX
	default:
		subsets[rootY].parent = rootX
		subsets[rootX].rank++
	}
}

// KruskalMST returns a minimum spanning forest over vertices 0..v-1.
//
// Edges are considered in ascending weight; equal weights keep their input order, so the
// result is deterministic for a given input. The input slice is not modified. On a
// connected graph the result holds exactly v-1 edges.
func KruskalMST(v int, edges []Edge) []Edge {
	if v <= 0 {
		return nil
	}

	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})

	subsets := make([]subset, v)
	for i := range subsets {
		subsets[i] = subset{parent: i}
	}

	result := make([]Edge, 0, v-1)
	for _, edge := range sorted {
		if len(result) == v-1 {
			break
		}
		if edge.A < 0 || edge.A >= v || edge.B < 0 || edge.B >= v {
			continue
		}

		x := find(subsets, edge.A)
		y := find(subsets, edge.B)
		if x == y {
			continue
		}
		result = append(result, edge)
		union(subsets, x, y)
	}
	return result
}

// TotalWeight sums the weights of edges
func TotalWeight(edges []Edge) float64 {
	total := 0.0
	for _, e := range edges {
		total += e.Weight
	}
	return total
}

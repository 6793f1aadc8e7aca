package libsimplex

import (
	"sort"

	"github.com/plan-systems/klog"

	"github.com/caten2/gosimplex/gosimplex"
)

// buildAdjacency relates every pair of catalog sheets sharing a boundary
// edge. Each sheet's edge keys are sorted once so a pair test is a linear merge.
func buildAdjacency(catalog []gosimplex.SheetEntry) gosimplex.AdjacencyGraph {
	numSheets := len(catalog)

	keys := make([][]gosimplex.EdgeKey, numSheets)
	for i, entry := range catalog {
		ek := entry.Sheet.AppendEdgeKeys(make([]gosimplex.EdgeKey, 0, entry.Sheet.Sides()))
		sort.Slice(ek, func(a, b int) bool {
			return ek[a] < ek[b]
		})
		keys[i] = ek
	}

	adj := gosimplex.AdjacencyGraph{
		Neighbors: make([][]int32, numSheets),
	}
	for i := 0; i < numSheets-1; i++ {
		for j := i + 1; j < numSheets; j++ {
			if edgeKeysIntersect(keys[i], keys[j]) {
				adj.Neighbors[i] = append(adj.Neighbors[i], int32(j))
				adj.Neighbors[j] = append(adj.Neighbors[j], int32(i))
			}
		}
	}

	for i := range adj.Neighbors {
		klog.V(2).Infof("sheet %d (%d-gon): %d adjacent sheets", i, catalog[i].Sheet.Sides(), len(adj.Neighbors[i]))
	}
	return adj
}

func edgeKeysIntersect(a, b []gosimplex.EdgeKey) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			return true
		}
	}
	return false
}

package libsimplex

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/caten2/gosimplex/gosimplex"
)

// buildComponents extracts the connected components of the sheet adjacency
// graph and measures each one as a closed surface. Components are ordered by
// their smallest catalog index and their members are listed ascending.
func buildComponents(g gosimplex.Group, catalog []gosimplex.SheetEntry, adj gosimplex.AdjacencyGraph) ([]gosimplex.ComponentInfo, error) {
	N := int32(adj.NumSheets())
	visited := make([]bool, N)
	components := make([]gosimplex.ComponentInfo, 0, 4)

	var stack []int32
	for root := int32(0); root < N; root++ {
		if visited[root] {
			continue
		}

		members := make([]int32, 0, 8)
		stack = append(stack[:0], root)
		visited[root] = true
		for len(stack) > 0 {
			si := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, si)
			for _, ni := range adj.Neighbors[si] {
				if !visited[ni] {
					visited[ni] = true
					stack = append(stack, ni)
				}
			}
		}
		sort.Slice(members, func(i, j int) bool {
			return members[i] < members[j]
		})

		stats, err := measureComponent(g, catalog, members, len(components))
		if err != nil {
			return nil, err
		}

		info := gosimplex.ComponentInfo{
			SurfaceStats: stats,
			SheetIndices: members,
			Sheets:       make([]gosimplex.SheetEntry, len(members)),
		}
		for i, si := range members {
			info.Sheets[i] = catalog[si]
		}
		components = append(components, info)
	}

	return components, nil
}

// measureComponent computes the surface totals of a single component.
func measureComponent(g gosimplex.Group, catalog []gosimplex.SheetEntry, members []int32, ordinal int) (gosimplex.SurfaceStats, error) {
	var stats gosimplex.SurfaceStats

	stats.Faces = int32(len(members))
	stats.Polygon = int32(catalog[members[0]].Sheet.Sides())
	for _, si := range members[1:] {
		sides := int32(catalog[si].Sheet.Sides())
		if sides != stats.Polygon {
			return stats, errors.Wrapf(gosimplex.ErrMixedPolygon,
				"component %d mixes %d-gons with %d-gons", ordinal, stats.Polygon, sides)
		}
	}

	stats.Vertices = countVertices(g, catalog, members)
	stats.Edges = countEdges(catalog, members)
	stats.EulerChar = stats.Vertices - stats.Edges + stats.Faces

	chi := stats.EulerChar
	if chi > 2 || (2-chi)%2 != 0 {
		return stats, errors.Wrapf(gosimplex.ErrInconsistentSurface,
			"component %d has V=%d, E=%d, F=%d (chi=%d)", ordinal, stats.Vertices, stats.Edges, stats.Faces, chi)
	}
	stats.Genus = (2 - chi) / 2

	return stats, nil
}

// countVertices counts the distinct vertices of a component.
//
// Every boundary element of a member sheet is a polygon corner, but corners on
// different sheets can name the same point of the glued surface: the corner v
// of a sheet anchored at a coincides with the corner v of a sheet anchored at
// any conjugate of a by a power of v. The anchors carrying v are therefore
// folded into orbits under that conjugation, one vertex per orbit.
func countVertices(g gosimplex.Group, catalog []gosimplex.SheetEntry, members []int32) int32 {
	n := g.Order()

	// hasAnchor[v*n + a] records that element v lies on a member sheet anchored at a.
	hasAnchor := make([]bool, n*n)
	for _, si := range members {
		entry := catalog[si]
		a := int(entry.Tag.Anchor)
		sh := entry.Sheet
		for _, v := range sh[:len(sh)-1] {
			hasAnchor[int(v)*n+a] = true
		}
	}

	count := int32(0)
	alive := make([]gosimplex.Elem, 0, 8)
	for v := gosimplex.Elem(0); int(v) < n; v++ {
		alive = alive[:0]
		row := hasAnchor[int(v)*n : (int(v)+1)*n]
		for a, carries := range row {
			if carries {
				alive = append(alive, gosimplex.Elem(a))
			}
		}
		if len(alive) == 0 {
			continue
		}

		ordV := g.ElemOrder(v)
		for len(alive) > 0 {
			a := alive[len(alive)-1]
			alive = alive[:len(alive)-1]
			count++
			for p := 1; p < ordV; p++ {
				vp := g.Pow(v, p)
				alive = removeElem(alive, g.Mul(g.Mul(g.Inv(vp), a), vp))
			}
		}
	}

	return count
}

// countEdges sums boundary edge matches over every unordered pair of distinct
// member sheets, in either traversal direction. An edge shared by more than
// two sheets is counted once per sharing pair, and the Euler arithmetic above
// is defined over exactly this total.
func countEdges(catalog []gosimplex.SheetEntry, members []int32) int32 {
	count := int32(0)
	for i := 0; i < len(members); i++ {
		shI := catalog[members[i]].Sheet
		for j := i + 1; j < len(members); j++ {
			shJ := catalog[members[j]].Sheet
			for s := 0; s+1 < len(shI); s++ {
				a, b := shI[s], shI[s+1]
				for t := 0; t+1 < len(shJ); t++ {
					c, d := shJ[t], shJ[t+1]
					if (a == c && b == d) || (a == d && b == c) {
						count++
					}
				}
			}
		}
	}
	return count
}

func removeElem(list []gosimplex.Elem, e gosimplex.Elem) []gosimplex.Elem {
	for i, x := range list {
		if x == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

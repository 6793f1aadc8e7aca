package gosimplex

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// EdgeKey is the canonical identity of an undirected sheet-boundary edge,
// packing the edge's two endpoint Elems into a single comparable value.
type EdgeKey uint64

// FormEdgeKey returns the canonical key of the undirected edge {a, b}.
func FormEdgeKey(a, b Elem) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey(uint64(uint32(a))<<32 | uint64(uint32(b)))
}

// Endpoints returns this edge's endpoints, lo <= hi.
func (key EdgeKey) Endpoints() (lo, hi Elem) {
	return Elem(uint32(key >> 32)), Elem(uint32(key))
}

// Sides returns the number of polygon sides of this sheet.
func (sh Sheet) Sides() int {
	return len(sh) - 1
}

// IsClosed returns true if this sheet's boundary walk returns to its first element.
func (sh Sheet) IsClosed() bool {
	return len(sh) >= 2 && sh[0] == sh[len(sh)-1]
}

// Contains returns true if v appears on this sheet's boundary.
func (sh Sheet) Contains(v Elem) bool {
	for _, si := range sh {
		if si == v {
			return true
		}
	}
	return false
}

// CanonicSet appends this sheet's distinct elements to dst in ascending order.
// Two sheets with the same anchor are duplicates iff their canonic sets are equal.
func (sh Sheet) CanonicSet(dst []Elem) []Elem {
	if len(sh) < 2 {
		return dst
	}
	base := len(dst)
	dst = append(dst, sh[:len(sh)-1]...)
	set := dst[base:]
	sort.Slice(set, func(i, j int) bool {
		return set[i] < set[j]
	})

	w := 1
	for i := 1; i < len(set); i++ {
		if set[i] != set[i-1] {
			set[w] = set[i]
			w++
		}
	}
	return dst[:base+w]
}

// AppendEdgeKeys appends the canonical key of each boundary edge to dst.
func (sh Sheet) AppendEdgeKeys(dst []EdgeKey) []EdgeKey {
	for i := 0; i+1 < len(sh); i++ {
		dst = append(dst, FormEdgeKey(sh[i], sh[i+1]))
	}
	return dst
}

// SharesEdgeWith returns true if the two sheets have a boundary edge in common:
// a consecutive element pair appearing on both walks, in either orientation.
func (sh Sheet) SharesEdgeWith(other Sheet) bool {
	for i := 0; i+1 < len(sh); i++ {
		a, b := sh[i], sh[i+1]
		for j := 0; j+1 < len(other); j++ {
			if (other[j] == a && other[j+1] == b) || (other[j] == b && other[j+1] == a) {
				return true
			}
		}
	}
	return false
}

func (tag SheetTag) String() string {
	return fmt.Sprintf("%d.%d", tag.Anchor, tag.SheetID)
}

// NumSheets returns the number of sheets this adjacency graph spans.
func (adj *AdjacencyGraph) NumSheets() int {
	return len(adj.Neighbors)
}

// IsAdjacent returns true if sheets i and j share a boundary edge.
func (adj *AdjacencyGraph) IsAdjacent(i, j int32) bool {
	if i < 0 || int(i) >= len(adj.Neighbors) {
		return false
	}
	for _, ni := range adj.Neighbors[i] {
		if ni == j {
			return true
		}
	}
	return false
}

func (cx *Complex) GroupOrder() int {
	return cx.Group.Order()
}

// Desig returns this complex's catalog designation: its group's canonical designation.
func (cx *Complex) Desig() string {
	return cx.Group.String()
}

func (cx *Complex) NumSheets() int {
	return len(cx.Catalog)
}

func (cx *Complex) NumComponents() int {
	return len(cx.Components)
}

// Reps returns the canonical representative of each noncentral conjugacy class.
func (cx *Complex) Reps() []Elem {
	reps := make([]Elem, len(cx.Classes))
	for i, class := range cx.Classes {
		reps[i] = class.Rep
	}
	return reps
}

// MaxGenus returns the largest genus among this complex's components.
func (cx *Complex) MaxGenus() int32 {
	maxg := int32(0)
	for i := range cx.Components {
		if g := cx.Components[i].Genus; g > maxg {
			maxg = g
		}
	}
	return maxg
}

// WriteAsString writes a human-readable description of this complex.
// The leading summary line is always written; opts selects the sections after it.
func (cx *Complex) WriteAsString(out io.Writer, opts PrintOpts) {
	g := cx.Group
	fmt.Fprintf(out, "%v,|G|=%d,classes=%d,sheets=%d,components=%d",
		g, g.Order(), len(cx.Classes), len(cx.Catalog), len(cx.Components))

	if opts.Classes {
		for _, class := range cx.Classes {
			fmt.Fprintf(out, "\n   class %s:", g.ElemString(class.Rep))
			for _, mi := range class.Members {
				fmt.Fprintf(out, " %s", g.ElemString(mi))
			}
		}
	}

	if opts.Sheets {
		for i, entry := range cx.Catalog {
			fmt.Fprintf(out, "\n   sheet %d @%s.%d:", i, g.ElemString(entry.Tag.Anchor), entry.Tag.SheetID)
			for _, si := range entry.Sheet {
				fmt.Fprintf(out, " %s", g.ElemString(si))
			}
		}
	}

	if opts.Components {
		for ci := range cx.Components {
			comp := &cx.Components[ci]
			fmt.Fprintf(out, "\n   component %d: faces=%d, %d-gon, V=%d, E=%d, chi=%d, genus=%d",
				ci, comp.Faces, comp.Polygon, comp.Vertices, comp.Edges, comp.EulerChar, comp.Genus)
		}
	}
}

// String returns the default WriteAsString rendering.
func (cx *Complex) String() string {
	b := strings.Builder{}
	b.Grow(192)
	cx.WriteAsString(&b, DefaultPrintOpts)
	return b.String()
}

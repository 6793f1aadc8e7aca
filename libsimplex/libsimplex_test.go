package libsimplex_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caten2/gosimplex/gosimplex"
	"github.com/caten2/gosimplex/libsimplex"
	"github.com/caten2/gosimplex/perm"
)

func mustParse(t *testing.T, expr string) *perm.Group {
	t.Helper()
	g, err := perm.Parse(expr)
	require.NoError(t, err)
	return g
}

func buildFor(t *testing.T, expr string) *gosimplex.Complex {
	t.Helper()
	cx, err := libsimplex.BuildComplex(mustParse(t, expr))
	require.NoError(t, err)
	return cx
}

func TestAbelianGroupRejected(t *testing.T) {
	for _, expr := range []string{"C5", "C12", "(1,2),(3,4)"} {
		_, err := libsimplex.BuildComplex(mustParse(t, expr))
		require.ErrorIs(t, err, gosimplex.ErrAbelianGroup, "group %s", expr)
	}
}

// The complex of S3 is small enough to state entry by entry. Elements are
// enumerated lexicographically by image table, which for S3 gives:
//
//	0 ()    1 (2,3)    2 (1,2)    3 (1,2,3)    4 (1,3,2)    5 (1,3)
func TestS3Complex(t *testing.T) {
	cx := buildFor(t, "S3")
	g := cx.Group

	require.Equal(t, "()", g.ElemString(0))
	require.Equal(t, []gosimplex.Elem{1, 2, 3, 4, 5}, cx.Noncentral)

	require.Len(t, cx.Classes, 2)
	require.Equal(t, "(2,3)", g.ElemString(cx.Classes[0].Rep))
	require.Equal(t, []gosimplex.Elem{1, 2, 5}, cx.Classes[0].Members)
	require.Equal(t, "(1,2,3)", g.ElemString(cx.Classes[1].Rep))
	require.Equal(t, []gosimplex.Elem{3, 4}, cx.Classes[1].Members)

	wantCatalog := []gosimplex.SheetEntry{
		{Tag: gosimplex.SheetTag{Anchor: 1, SheetID: 0}, Sheet: gosimplex.Sheet{2, 3, 5, 4, 2}},
		{Tag: gosimplex.SheetTag{Anchor: 2, SheetID: 0}, Sheet: gosimplex.Sheet{1, 4, 5, 3, 1}},
		{Tag: gosimplex.SheetTag{Anchor: 5, SheetID: 0}, Sheet: gosimplex.Sheet{1, 3, 2, 4, 1}},
		{Tag: gosimplex.SheetTag{Anchor: 3, SheetID: 0}, Sheet: gosimplex.Sheet{1, 5, 2, 1}},
		{Tag: gosimplex.SheetTag{Anchor: 4, SheetID: 0}, Sheet: gosimplex.Sheet{1, 2, 5, 1}},
	}
	require.Equal(t, wantCatalog, cx.Catalog)

	require.Equal(t, [][]int32{{1, 2}, {0, 2}, {0, 1}, {4}, {3}}, cx.Adjacency.Neighbors)
	require.True(t, cx.Adjacency.IsAdjacent(0, 2))
	require.False(t, cx.Adjacency.IsAdjacent(0, 3))

	require.Len(t, cx.Components, 2)

	quads := cx.Components[0]
	require.Equal(t, []int32{0, 1, 2}, quads.SheetIndices)
	require.Equal(t, gosimplex.SurfaceStats{
		Faces: 3, Polygon: 4, Vertices: 5, Edges: 6, EulerChar: 2, Genus: 0,
	}, quads.SurfaceStats)

	tris := cx.Components[1]
	require.Equal(t, []int32{3, 4}, tris.SheetIndices)
	require.Equal(t, gosimplex.SurfaceStats{
		Faces: 2, Polygon: 3, Vertices: 3, Edges: 3, EulerChar: 2, Genus: 0,
	}, tris.SurfaceStats)
}

func TestS3Rendering(t *testing.T) {
	cx := buildFor(t, "S3")

	want := "S3,|G|=6,classes=2,sheets=5,components=2" +
		"\n   component 0: faces=3, 4-gon, V=5, E=6, chi=2, genus=0" +
		"\n   component 1: faces=2, 3-gon, V=3, E=3, chi=2, genus=0"
	require.Equal(t, want, cx.String())

	full := strings.Builder{}
	cx.WriteAsString(&full, gosimplex.PrintOpts{Classes: true, Sheets: true})
	require.Contains(t, full.String(), "class (2,3): (2,3) (1,2) (1,3)")
	require.Contains(t, full.String(), "sheet 0 @(2,3).0: (1,2) (1,2,3) (1,3) (1,3,2) (1,2)")
	require.Contains(t, full.String(), "sheet 3 @(1,2,3).0: (2,3) (1,3) (1,2) (2,3)")
}

// Q8 splits into three spheres, one per conjugate pair of imaginary units:
// each pair anchors two squares glued along all four edges.
func TestQ8Complex(t *testing.T) {
	cx := buildFor(t, "Q8")

	require.Equal(t, 8, cx.GroupOrder())
	require.Len(t, cx.Noncentral, 6)
	require.Len(t, cx.Classes, 3)
	for _, class := range cx.Classes {
		require.Len(t, class.Members, 2)
		require.Equal(t, cx.Group.Inv(class.Rep), class.Members[1])
	}

	require.Equal(t, 6, cx.NumSheets())
	for i, entry := range cx.Catalog {
		require.Equal(t, 4, entry.Sheet.Sides(), "sheet %d", i)
		require.Equal(t, int32(0), entry.Tag.SheetID)
		require.False(t, entry.Sheet.Contains(entry.Tag.Anchor))
	}

	require.Len(t, cx.Components, 3)
	for ci, comp := range cx.Components {
		require.Equal(t, []int32{int32(2 * ci), int32(2*ci + 1)}, comp.SheetIndices)
		require.Equal(t, gosimplex.SurfaceStats{
			Faces: 2, Polygon: 4, Vertices: 4, Edges: 4, EulerChar: 2, Genus: 0,
		}, comp.SurfaceStats)
	}
	require.Equal(t, int32(0), cx.MaxGenus())
}

func TestLargerGroupsStayConsistent(t *testing.T) {
	for _, expr := range []string{"S4", "A4", "D4", "D6"} {
		cx := buildFor(t, expr)

		for i, entry := range cx.Catalog {
			require.True(t, entry.Sheet.IsClosed(), "%s sheet %d", expr, i)
			require.GreaterOrEqual(t, entry.Sheet.Sides(), 3, "%s sheet %d", expr, i)
		}

		// Components partition the catalog index space.
		seen := make(map[int32]bool, cx.NumSheets())
		for _, comp := range cx.Components {
			require.Equal(t, int(comp.Faces), len(comp.SheetIndices))
			require.GreaterOrEqual(t, comp.Genus, int32(0), "%s", expr)
			require.Equal(t, comp.EulerChar, comp.Vertices-comp.Edges+comp.Faces)
			require.Equal(t, comp.EulerChar, 2-2*comp.Genus)
			for _, si := range comp.SheetIndices {
				require.False(t, seen[si], "%s sheet %d in two components", expr, si)
				seen[si] = true
				require.Equal(t, int(comp.Polygon), cx.Catalog[si].Sheet.Sides())
			}
		}
		require.Len(t, seen, cx.NumSheets(), "%s", expr)
	}
}

// S4 produces two six-octagon components with identical face and edge counts
// but different vertex folds: one keeps 20 corners and stays a sphere, the
// other folds to 14 and closes up as a genus-3 surface.
func TestS4GenusThreeComponent(t *testing.T) {
	cx := buildFor(t, "S4")

	require.Equal(t, 100, cx.NumSheets())
	require.Equal(t, 27, cx.NumComponents())

	sphere := cx.Components[22]
	require.Equal(t, []int32{82, 85, 88, 92, 94, 98}, sphere.SheetIndices)
	require.Equal(t, gosimplex.SurfaceStats{
		Faces: 6, Polygon: 8, Vertices: 20, Edges: 24, EulerChar: 2, Genus: 0,
	}, sphere.SurfaceStats)

	genus3 := cx.Components[23]
	require.Equal(t, []int32{83, 87, 90, 93, 95, 99}, genus3.SheetIndices)
	require.Equal(t, gosimplex.SurfaceStats{
		Faces: 6, Polygon: 8, Vertices: 14, Edges: 24, EulerChar: -4, Genus: 3,
	}, genus3.SurfaceStats)

	for ci, comp := range cx.Components {
		if ci != 23 {
			require.Equal(t, int32(0), comp.Genus, "component %d", ci)
		}
	}
	require.Equal(t, int32(3), cx.MaxGenus())

	sum := cx.Summarize()
	require.True(t, sum.HasGenus())
	require.Equal(t, int32(3), sum.MaxGenus())
}

func TestDeterministicRebuild(t *testing.T) {
	first := buildFor(t, "S4")
	second := buildFor(t, "S4")

	require.Equal(t, first.Noncentral, second.Noncentral)
	require.Equal(t, first.Classes, second.Classes)
	require.Equal(t, first.Catalog, second.Catalog)
	require.Equal(t, first.Adjacency, second.Adjacency)
	require.Equal(t, first.Components, second.Components)
}

// repsReversed flips the canonical class order of its underlying group,
// exercising that class order only permutes the catalog.
type repsReversed struct {
	gosimplex.Group
}

func (g repsReversed) ConjugacyReps() []gosimplex.Elem {
	reps := g.Group.ConjugacyReps()
	flipped := make([]gosimplex.Elem, len(reps))
	for i, rep := range reps {
		flipped[len(reps)-1-i] = rep
	}
	return flipped
}

func TestClassOrderMovesCatalogNotSurfaces(t *testing.T) {
	g := mustParse(t, "S3")

	cx, err := libsimplex.BuildComplex(g)
	require.NoError(t, err)
	flipped, err := libsimplex.BuildComplex(repsReversed{g})
	require.NoError(t, err)

	require.Equal(t, cx.NumSheets(), flipped.NumSheets())
	require.Equal(t, []gosimplex.Elem{3, 1}, flipped.Reps())
	require.Equal(t, sortedStats(cx), sortedStats(flipped))
}

func sortedStats(cx *gosimplex.Complex) []gosimplex.SurfaceStats {
	stats := make([]gosimplex.SurfaceStats, 0, cx.NumComponents())
	for i := range cx.Components {
		stats = append(stats, cx.Components[i].SurfaceStats)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Faces != stats[j].Faces {
			return stats[i].Faces < stats[j].Faces
		}
		return stats[i].Polygon < stats[j].Polygon
	})
	return stats
}

func TestStreamComplexes(t *testing.T) {
	stream := libsimplex.StreamComplexes(
		mustParse(t, "S3"),
		mustParse(t, "C4"), // abelian, dropped from the stream
		mustParse(t, "Q8"),
	)

	first := stream.PullComplex()
	require.NotNil(t, first)
	require.Equal(t, "S3", first.Desig())

	second := stream.PullComplex()
	require.NotNil(t, second)
	require.Equal(t, "Q8", second.Desig())

	require.Nil(t, stream.PullComplex())
}

func TestSummarize(t *testing.T) {
	cx := buildFor(t, "S3")

	sum := cx.Summarize()
	require.Equal(t, "S3", sum.GroupDesig)
	require.Equal(t, int32(6), sum.GroupOrder)
	require.Equal(t, int32(5), sum.NumSheets)
	require.False(t, sum.HasGenus())
	require.Equal(t,
		"S3,|G|=6,sheets=5,components=2,(F=3,4-gon,V=5,E=6,g=0),(F=2,3-gon,V=3,E=3,g=0)",
		sum.String())

	echo := gosimplex.ComplexSummary{
		GroupDesig: sum.GroupDesig,
	}
	require.NoError(t, echo.InitFromSpec(sum.AppendSpecTo(nil)))
	require.Equal(t, sum, &echo)
}

// brokenGroup is a handcrafted multiplication table satisfying just enough of
// the Group contract to reach a targeted failure path.
type brokenGroup struct {
	desig string
	mul   [4][4]gosimplex.Elem
	reps  []gosimplex.Elem
}

func (g *brokenGroup) Order() int                                 { return 4 }
func (g *brokenGroup) Elements() []gosimplex.Elem                 { return []gosimplex.Elem{0, 1, 2, 3} }
func (g *brokenGroup) Identity() gosimplex.Elem                   { return 0 }
func (g *brokenGroup) Mul(a, b gosimplex.Elem) gosimplex.Elem     { return g.mul[a][b] }
func (g *brokenGroup) Inv(a gosimplex.Elem) gosimplex.Elem        { return a }
func (g *brokenGroup) Pow(a gosimplex.Elem, n int) gosimplex.Elem { return a }
func (g *brokenGroup) ElemOrder(a gosimplex.Elem) int             { return 2 }
func (g *brokenGroup) Center() []gosimplex.Elem                   { return []gosimplex.Elem{0} }
func (g *brokenGroup) ConjugacyReps() []gosimplex.Elem            { return g.reps }
func (g *brokenGroup) ElemString(a gosimplex.Elem) string         { return fmt.Sprintf("e%d", a) }
func (g *brokenGroup) String() string                             { return g.desig }

func TestPartitionFailureSurfaces(t *testing.T) {
	// Every product is the identity, so no conjugate ever lands on a representative.
	g := &brokenGroup{desig: "brokenPartition", reps: []gosimplex.Elem{0, 1}}
	_, err := libsimplex.BuildComplex(g)
	require.ErrorIs(t, err, gosimplex.ErrPartitionIncomplete)
}

func TestUnclosedSheetSurfaces(t *testing.T) {
	// The walk from seed 2 about anchor 1 oscillates between 1 and 3.
	g := &brokenGroup{desig: "brokenWalk", reps: []gosimplex.Elem{1}}
	g.mul[1][1] = 3
	g.mul[1][2] = 3
	g.mul[1][3] = 2
	g.mul[2][1] = 1
	g.mul[3][1] = 1
	_, err := libsimplex.BuildComplex(g)
	require.ErrorIs(t, err, gosimplex.ErrSheetUnclosed)
}

func TestDegenerateSheetSurfaces(t *testing.T) {
	// The walk from seed 2 about anchor 1 closes immediately as a 1-gon.
	g := &brokenGroup{desig: "brokenDegen", reps: []gosimplex.Elem{1}}
	g.mul[1][2] = 3
	g.mul[1][3] = 3
	g.mul[3][1] = 1
	g.mul[2][1] = 2
	_, err := libsimplex.BuildComplex(g)
	require.ErrorIs(t, err, gosimplex.ErrDegenerateSheet)
}

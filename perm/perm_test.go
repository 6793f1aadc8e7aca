package perm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caten2/gosimplex/gosimplex"
	"github.com/caten2/gosimplex/perm"
)

func mustGroup(t *testing.T, expr string) *perm.Group {
	t.Helper()
	g, err := perm.Parse(expr)
	require.NoError(t, err, "parse %q", expr)
	return g
}

func elemByString(t *testing.T, g *perm.Group, s string) gosimplex.Elem {
	t.Helper()
	for _, a := range g.Elements() {
		if g.ElemString(a) == s {
			return a
		}
	}
	t.Fatalf("%v has no element %q", g, s)
	return -1
}

func TestNamedGroupOrders(t *testing.T) {
	for _, tc := range []struct {
		expr  string
		order int
	}{
		{"S3", 6}, {"S4", 24}, {"S5", 120},
		{"A3", 3}, {"A4", 12}, {"A5", 60},
		{"D1", 2}, {"D2", 4}, {"D3", 6}, {"D4", 8}, {"D6", 12},
		{"C1", 1}, {"C7", 7},
		{"Q8", 8},
	} {
		g := mustGroup(t, tc.expr)
		assert.Equal(t, tc.order, g.Order(), "order of %s", tc.expr)
		assert.Equal(t, tc.expr, g.String())
	}
}

func TestGroupAxioms(t *testing.T) {
	for _, expr := range []string{"S3", "S4", "D4", "Q8", "C6"} {
		g := mustGroup(t, expr)
		n := g.Order()
		elems := g.Elements()
		require.Len(t, elems, n, "%s", expr)

		id := g.Identity()
		for _, a := range elems {
			assert.Equal(t, a, g.Mul(id, a), "%s: e*a", expr)
			assert.Equal(t, a, g.Mul(a, id), "%s: a*e", expr)
			assert.Equal(t, id, g.Mul(a, g.Inv(a)), "%s: a*a⁻¹", expr)
			assert.Equal(t, id, g.Mul(g.Inv(a), a), "%s: a⁻¹*a", expr)
		}

		for _, a := range elems {
			for _, b := range elems {
				for _, c := range elems {
					if g.Mul(g.Mul(a, b), c) != g.Mul(a, g.Mul(b, c)) {
						t.Fatalf("%s: (%v*%v)*%v != %v*(%v*%v)", expr, a, b, c, a, b, c)
					}
				}
			}
		}

		for _, a := range elems {
			ord := g.ElemOrder(a)
			require.Greater(t, ord, 0)
			assert.Zero(t, n%ord, "%s: order of %v must divide |G|", expr, a)
			assert.Equal(t, id, g.Pow(a, ord), "%s: a^ord", expr)
			for k := 1; k < ord; k++ {
				assert.NotEqual(t, id, g.Pow(a, k), "%s: a^%d with ord %d", expr, k, ord)
			}
			assert.Equal(t, id, g.Pow(a, 0))
			assert.Equal(t, g.Inv(a), g.Pow(a, -1))
			assert.Equal(t, a, g.Pow(a, ord+1))
			assert.Equal(t, g.Inv(a), g.Pow(a, ord-1))
		}
	}
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	g := mustGroup(t, "S3")
	swap12 := elemByString(t, g, "(1,2)")
	rot := elemByString(t, g, "(1,2,3)")

	assert.Equal(t, "(2,3)", g.ElemString(g.Mul(swap12, rot)))
	assert.Equal(t, "(1,3)", g.ElemString(g.Mul(rot, swap12)))
}

func TestCenter(t *testing.T) {
	for _, tc := range []struct {
		expr       string
		centerSize int
	}{
		{"S3", 1}, {"S4", 1}, {"D4", 2}, {"Q8", 2}, {"C6", 6}, {"A4", 1},
	} {
		g := mustGroup(t, tc.expr)
		center := g.Center()
		assert.Len(t, center, tc.centerSize, "%s", tc.expr)
		assert.Equal(t, tc.centerSize == g.Order(), g.IsAbelian(), "%s", tc.expr)

		// brute-force cross-check, and the returned order must ascend
		bySlowPath := []gosimplex.Elem{}
		for _, z := range g.Elements() {
			central := true
			for _, b := range g.Elements() {
				if g.Mul(z, b) != g.Mul(b, z) {
					central = false
					break
				}
			}
			if central {
				bySlowPath = append(bySlowPath, z)
			}
		}
		assert.Equal(t, bySlowPath, center, "%s", tc.expr)
	}
}

func TestConjugacyReps(t *testing.T) {
	for _, tc := range []struct {
		expr       string
		numClasses int
	}{
		{"S3", 3}, {"S4", 5}, {"D4", 5}, {"Q8", 5}, {"A4", 4}, {"C6", 6},
	} {
		g := mustGroup(t, tc.expr)
		reps := g.ConjugacyReps()
		assert.Len(t, reps, tc.numClasses, "%s", tc.expr)
		assert.Equal(t, tc.numClasses, g.NumClasses(), "%s", tc.expr)

		isRep := map[gosimplex.Elem]bool{}
		for i, rep := range reps {
			if i > 0 {
				assert.Greater(t, rep, reps[i-1], "%s: reps must ascend", tc.expr)
			}
			isRep[rep] = true
		}

		// every element must conjugate to exactly one rep, and that rep is
		// the smallest member of its class
		for _, a := range g.Elements() {
			classMin := a
			repHits := map[gosimplex.Elem]bool{}
			for _, h := range g.Elements() {
				conj := g.Mul(g.Mul(g.Inv(h), a), h)
				if conj < classMin {
					classMin = conj
				}
				if isRep[conj] {
					repHits[conj] = true
				}
			}
			assert.Len(t, repHits, 1, "%s: element %v", tc.expr, a)
			assert.True(t, isRep[classMin], "%s: class min %v of %v must be a rep", tc.expr, classMin, a)
		}
	}
}

func TestElemStrings(t *testing.T) {
	g := mustGroup(t, "S3")
	want := []string{"()", "(2,3)", "(1,2)", "(1,2,3)", "(1,3,2)", "(1,3)"}
	for i, a := range g.Elements() {
		assert.Equal(t, want[i], g.ElemString(a))
	}

	// each element's cycle string must parse back to the cyclic group it generates
	s4 := mustGroup(t, "S4")
	for _, a := range s4.Elements() {
		gen, err := perm.Parse(s4.ElemString(a))
		require.NoError(t, err)
		assert.Equal(t, s4.ElemOrder(a), gen.Order(), "⟨%s⟩", s4.ElemString(a))
	}
}

func TestParseGenerators(t *testing.T) {
	g := mustGroup(t, "(1,2)(3,4), (1,2,3)")
	assert.Equal(t, 12, g.Order())
	assert.Equal(t, "<(1,2)(3,4),(1,2,3)>", g.String())

	assert.Equal(t, 2, mustGroup(t, "(1,2)").Order())
	assert.Equal(t, 4, mustGroup(t, " (1,2) , (3,4) ").Order())
	assert.Equal(t, 1, mustGroup(t, "()").Order())

	// a five-point rotation plus a flip is D5
	d5 := mustGroup(t, "(1,2,3,4,5), (2,5)(3,4)")
	assert.Equal(t, 10, d5.Order())
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		expr string
		want error
	}{
		{"", perm.ErrBadGroupExpr},
		{"X9", perm.ErrBadGroupExpr},
		{"S", perm.ErrBadGroupExpr},
		{"S0", perm.ErrBadGroupExpr},
		{"(1,2", perm.ErrBadGroupExpr},
		{"(1,1)", perm.ErrBadCycle},
		{"S999", perm.ErrBadDegree},
		{"S8", perm.ErrGroupTooLarge},
	} {
		_, err := perm.Parse(tc.expr)
		assert.ErrorIs(t, err, tc.want, "%q", tc.expr)
	}
}

func TestQuaternionStructure(t *testing.T) {
	g := mustGroup(t, "Q8")
	require.Equal(t, 8, g.Order())
	assert.Len(t, g.Center(), 2)

	byOrder := map[int]int{}
	for _, a := range g.Elements() {
		byOrder[g.ElemOrder(a)]++
	}
	assert.Equal(t, map[int]int{1: 1, 2: 1, 4: 6}, byOrder)
}

package perm

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/caten2/gosimplex/gosimplex"
)

// Group is a finite permutation group materialized by generator closure, with
// products, inverses, element orders, the center, and conjugacy representatives
// all precomputed. A built Group is immutable and safe for concurrent use.
//
// Group implements gosimplex.Group.
type Group struct {
	desig  string
	degree int
	elems  []perm // sorted by image table; elems[0] is the identity
	all    []gosimplex.Elem
	mulTab []gosimplex.Elem // mulTab[a*n+b] = index of elems[a]∘elems[b]
	invTab []gosimplex.Elem
	ordTab []int32
	center []gosimplex.Elem
	reps   []gosimplex.Elem
}

// NewGroup closes the given generators (in 1-based cycle notation) into a Group.
//
// Elem values are assigned by sorting the closure lexicographically by image
// table, so the identity is always Elem(0) and enumeration order does not
// depend on generator order.
func NewGroup(desig string, degree int, gens []Cycles) (*Group, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, errors.Wrapf(ErrBadDegree, "degree %d", degree)
	}

	genPerms := make([]perm, 0, len(gens))
	for _, gen := range gens {
		p, err := permFromCycles(degree, gen)
		if err != nil {
			return nil, errors.Wrapf(err, "generator %v", gen)
		}
		if !p.isIdentity() {
			genPerms = append(genPerms, p)
		}
	}

	elems := []perm{newIdentity(degree)}
	index := map[string]int{
		string(elems[0]): 0,
	}
	for qi := 0; qi < len(elems); qi++ {
		for _, gp := range genPerms {
			next := compose(elems[qi], gp)
			key := string(next)
			if _, known := index[key]; known {
				continue
			}
			if len(elems) >= MaxElems {
				return nil, errors.Wrapf(ErrGroupTooLarge, "closure passed %d elements", MaxElems)
			}
			index[key] = len(elems)
			elems = append(elems, next)
		}
	}

	sort.Slice(elems, func(i, j int) bool {
		return bytes.Compare(elems[i], elems[j]) < 0
	})
	for i, p := range elems {
		index[string(p)] = i
	}

	n := len(elems)
	g := &Group{
		desig:  desig,
		degree: degree,
		elems:  elems,
		all:    make([]gosimplex.Elem, n),
		mulTab: make([]gosimplex.Elem, n*n),
		invTab: make([]gosimplex.Elem, n),
		ordTab: make([]int32, n),
	}
	if g.desig == "" {
		g.desig = desigFromGens(genPerms)
	}
	for i := range g.all {
		g.all[i] = gosimplex.Elem(i)
	}

	scrap := make(perm, degree)
	for a := 0; a < n; a++ {
		pa := elems[a]
		row := g.mulTab[a*n : (a+1)*n]
		for b := 0; b < n; b++ {
			row[b] = gosimplex.Elem(index[string(composeInto(scrap, pa, elems[b]))])
		}
		g.invTab[a] = gosimplex.Elem(index[string(pa.inverse())])
	}

	for a := 0; a < n; a++ {
		ord := int32(1)
		x := gosimplex.Elem(a)
		for x != 0 {
			x = g.mulTab[int(x)*n+a]
			ord++
		}
		g.ordTab[a] = ord
	}

	for a := 0; a < n; a++ {
		central := true
		for b := 0; b < n; b++ {
			if g.mulTab[a*n+b] != g.mulTab[b*n+a] {
				central = false
				break
			}
		}
		if central {
			g.center = append(g.center, gosimplex.Elem(a))
		}
	}

	// A class representative is its class's smallest element, and scanning
	// ascending makes the reps themselves ascend.
	assigned := make([]bool, n)
	for a := 0; a < n; a++ {
		if assigned[a] {
			continue
		}
		g.reps = append(g.reps, gosimplex.Elem(a))
		for t := 0; t < n; t++ {
			tinv := int(g.invTab[t])
			conj := g.mulTab[int(g.mulTab[tinv*n+a])*n+t]
			assigned[conj] = true
		}
	}

	return g, nil
}

func composeInto(dst, p, q perm) perm {
	for i, qi := range q {
		dst[i] = p[qi]
	}
	return dst
}

func desigFromGens(gens []perm) string {
	if len(gens) == 0 {
		return "<()>"
	}
	b := make([]byte, 0, 32)
	b = append(b, '<')
	for i, gp := range gens {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendCycleString(b, gp)
	}
	b = append(b, '>')
	return string(b)
}

// Degree returns the number of points this group's permutations act on.
func (g *Group) Degree() int {
	return g.degree
}

// IsAbelian returns true if every pair of elements commutes.
func (g *Group) IsAbelian() bool {
	return len(g.center) == len(g.elems)
}

// NumClasses returns the number of conjugacy classes, central classes included.
func (g *Group) NumClasses() int {
	return len(g.reps)
}

func (g *Group) Order() int {
	return len(g.elems)
}

func (g *Group) Elements() []gosimplex.Elem {
	return g.all
}

func (g *Group) Identity() gosimplex.Elem {
	return 0
}

func (g *Group) Mul(a, b gosimplex.Elem) gosimplex.Elem {
	return g.mulTab[int(a)*len(g.elems)+int(b)]
}

func (g *Group) Inv(a gosimplex.Elem) gosimplex.Elem {
	return g.invTab[a]
}

func (g *Group) Pow(a gosimplex.Elem, n int) gosimplex.Elem {
	ord := int(g.ordTab[a])
	n %= ord
	if n < 0 {
		n += ord
	}
	x := gosimplex.Elem(0)
	for ; n > 0; n-- {
		x = g.Mul(x, a)
	}
	return x
}

func (g *Group) ElemOrder(a gosimplex.Elem) int {
	return int(g.ordTab[a])
}

func (g *Group) Center() []gosimplex.Elem {
	return g.center
}

func (g *Group) ConjugacyReps() []gosimplex.Elem {
	return g.reps
}

func (g *Group) ElemString(a gosimplex.Elem) string {
	return string(appendCycleString(make([]byte, 0, 24), g.elems[a]))
}

func (g *Group) String() string {
	return g.desig
}

package perm

import (
	"errors"
)

const (

	// MaxDegree is the max number of points a permutation can act on.
	MaxDegree = 128

	// MaxElems bounds generator closure, since the product table is O(MaxElems²).
	MaxElems = 2048
)

// Errors
var (
	ErrBadDegree     = errors.New("bad permutation degree")
	ErrBadCycle      = errors.New("bad cycle: points must be distinct and within the degree")
	ErrBadGroupExpr  = errors.New("unrecognized group expression")
	ErrGroupTooLarge = errors.New("generator closure exceeds the max supported group order")
)

// perm is a permutation of {0..degree-1} stored as its image table:
// p[x] is the point x maps to.
type perm []uint8

func newIdentity(degree int) perm {
	p := make(perm, degree)
	for i := range p {
		p[i] = uint8(i)
	}
	return p
}

// compose returns p∘q: q applied first, then p.
func compose(p, q perm) perm {
	pq := make(perm, len(p))
	for i, qi := range q {
		pq[i] = p[qi]
	}
	return pq
}

func (p perm) inverse() perm {
	inv := make(perm, len(p))
	for i, pi := range p {
		inv[pi] = uint8(i)
	}
	return inv
}

func (p perm) isIdentity() bool {
	for i, pi := range p {
		if int(pi) != i {
			return false
		}
	}
	return true
}

// Cycles is a permutation written in cycle notation: each cycle lists
// 1-based points, and cycles compose right to left.
type Cycles [][]int

// permFromCycles realizes cycles as a degree-sized image table.
func permFromCycles(degree int, cycles Cycles) (perm, error) {
	p := newIdentity(degree)

	for ci := len(cycles) - 1; ci >= 0; ci-- {
		cyc := cycles[ci]
		if len(cyc) == 0 {
			continue
		}

		var used [MaxDegree + 1]bool
		for _, pt := range cyc {
			if pt < 1 || pt > degree || used[pt] {
				return nil, ErrBadCycle
			}
			used[pt] = true
		}

		q := newIdentity(degree)
		for i, pt := range cyc {
			next := cyc[(i+1)%len(cyc)]
			q[pt-1] = uint8(next - 1)
		}
		p = compose(q, p)
	}
	return p, nil
}

// appendCycleString appends p in 1-based disjoint cycle notation.
// The identity renders as "()".
func appendCycleString(dst []byte, p perm) []byte {
	var seen [MaxDegree]bool

	wrote := false
	for i := range p {
		if seen[i] || int(p[i]) == i {
			continue
		}
		wrote = true
		dst = append(dst, '(')
		at := i
		for !seen[at] {
			seen[at] = true
			if at != i {
				dst = append(dst, ',')
			}
			dst = appendInt(dst, at+1)
			at = int(p[at])
		}
		dst = append(dst, ')')
	}

	if !wrote {
		dst = append(dst, '(', ')')
	}
	return dst
}

func appendInt(dst []byte, v int) []byte {
	if v >= 100 {
		dst = append(dst, byte('0'+v/100))
	}
	if v >= 10 {
		dst = append(dst, byte('0'+(v/10)%10))
	}
	return append(dst, byte('0'+v%10))
}

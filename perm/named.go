package perm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Symmetric returns S(n), all permutations of n points.
func Symmetric(n int) (*Group, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrBadDegree, "S%d", n)
	}
	gens := []Cycles{}
	if n >= 2 {
		gens = append(gens, Cycles{{1, 2}})
	}
	if n >= 3 {
		gens = append(gens, Cycles{fullCycle(n)})
	}
	return NewGroup(fmt.Sprintf("S%d", n), n, gens)
}

// Alternating returns A(n), the even permutations of n points.
func Alternating(n int) (*Group, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrBadDegree, "A%d", n)
	}
	gens := []Cycles{}
	if n >= 3 {
		gens = append(gens, Cycles{{1, 2, 3}})
	}
	if n >= 4 {
		if n%2 == 1 {
			gens = append(gens, Cycles{fullCycle(n)})
		} else {
			// (2,3,...,n) is even when n is even
			cyc := make([]int, 0, n-1)
			for pt := 2; pt <= n; pt++ {
				cyc = append(cyc, pt)
			}
			gens = append(gens, Cycles{cyc})
		}
	}
	return NewGroup(fmt.Sprintf("A%d", n), n, gens)
}

// Dihedral returns D(n), the symmetries of a regular n-gon (order 2n).
func Dihedral(n int) (*Group, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrBadDegree, "D%d", n)
	}
	desig := fmt.Sprintf("D%d", n)
	switch n {
	case 1:
		return NewGroup(desig, 2, []Cycles{{{1, 2}}})
	case 2:
		return NewGroup(desig, 4, []Cycles{{{1, 2}}, {{3, 4}}})
	}

	// n-gon rotation plus the reflection fixing point 1
	flip := Cycles{}
	for i := 2; i < n+2-i; i++ {
		flip = append(flip, []int{i, n + 2 - i})
	}
	return NewGroup(desig, n, []Cycles{{fullCycle(n)}, flip})
}

// Cyclic returns C(n), the cyclic group of order n.
func Cyclic(n int) (*Group, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrBadDegree, "C%d", n)
	}
	desig := fmt.Sprintf("C%d", n)
	if n == 1 {
		return NewGroup(desig, 1, nil)
	}
	return NewGroup(desig, n, []Cycles{{fullCycle(n)}})
}

// Quaternion returns Q8 as a permutation group on 8 points, via its regular
// representation with the elements labeled 1, -1, i, -i, j, -j, k, -k.
func Quaternion() (*Group, error) {
	return NewGroup("Q8", 8, []Cycles{
		{{1, 3, 2, 4}, {5, 8, 6, 7}},
		{{1, 5, 2, 6}, {3, 7, 4, 8}},
	})
}

func fullCycle(n int) []int {
	cyc := make([]int, n)
	for i := range cyc {
		cyc[i] = i + 1
	}
	return cyc
}

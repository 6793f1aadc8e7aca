package libsimplex

import (
	"github.com/pkg/errors"

	"github.com/caten2/gosimplex/gosimplex"
)

// Partition splits g's noncentral elements into conjugacy classes keyed by
// the group's canonical representatives.
//
// Class order follows the representative order of g.ConjugacyReps(), and each
// class's member order follows the enumeration order of g.Elements().
func Partition(g gosimplex.Group) (noncentral []gosimplex.Elem, classes []gosimplex.ConjClass, err error) {
	n := g.Order()
	center := g.Center()
	if len(center) == n {
		return nil, nil, errors.Wrapf(gosimplex.ErrAbelianGroup, "%v", g)
	}

	isCentral := make([]bool, n)
	for _, z := range center {
		isCentral[z] = true
	}

	noncentral = make([]gosimplex.Elem, 0, n-len(center))
	for _, a := range g.Elements() {
		if !isCentral[a] {
			noncentral = append(noncentral, a)
		}
	}

	// repClass maps a noncentral class representative to its class index
	repClass := make([]int32, n)
	for i := range repClass {
		repClass[i] = -1
	}
	for _, rep := range g.ConjugacyReps() {
		if isCentral[rep] {
			continue
		}
		repClass[rep] = int32(len(classes))
		classes = append(classes, gosimplex.ConjClass{
			Rep:     rep,
			Members: []gosimplex.Elem{rep},
		})
	}

	for _, cand := range noncentral {
		if repClass[cand] >= 0 {
			continue
		}
		assigned := false
		for _, h := range noncentral {
			conj := g.Mul(g.Mul(g.Inv(h), cand), h)
			if ci := repClass[conj]; ci >= 0 {
				classes[ci].Members = append(classes[ci].Members, cand)
				assigned = true
				break
			}
		}
		if !assigned {
			return nil, nil, errors.Wrapf(gosimplex.ErrPartitionIncomplete, "%v: element %s", g, g.ElemString(cand))
		}
	}

	return noncentral, classes, nil
}

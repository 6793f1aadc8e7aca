package perm

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// groupExpr is either a named group designation ("S4", "D6", "Q8", ...) or a
// comma-separated list of generators in cycle notation.
type groupExpr struct {
	Name string     `parser:"  @Ident"`
	Gens []*genTerm `parser:"| @@ (\",\" @@)*"`
}

// genTerm is one generator: a run of juxtaposed cycles, e.g. (1,2)(3,4).
type genTerm struct {
	Cycles []*cycleTerm `parser:"@@+"`
}

type cycleTerm struct {
	Points []int64 `parser:"\"(\" (@Int (\",\" @Int)*)? \")\""`
}

var parseGroupExpr = participle.MustBuild[groupExpr]()

// Parse builds a Group from a group expression.
//
// Named designations: S<n>, A<n>, D<n>, C<n>, and Q8. Anything else is read
// as generators in 1-based cycle notation, one generator per comma-separated
// run of cycles:
//
//	(1,2)(3,4), (1,2,3)
//
// The group degree is the largest point named by any generator.
func Parse(expr string) (*Group, error) {
	ast, err := parseGroupExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(ErrBadGroupExpr, "%q: %v", expr, err)
	}

	if ast.Name != "" {
		return parseNamed(ast.Name)
	}

	degree := 0
	gens := make([]Cycles, 0, len(ast.Gens))
	for _, gen := range ast.Gens {
		cycles := make(Cycles, 0, len(gen.Cycles))
		for _, cyc := range gen.Cycles {
			points := make([]int, len(cyc.Points))
			for i, pt := range cyc.Points {
				points[i] = int(pt)
				if points[i] > degree {
					degree = points[i]
				}
			}
			cycles = append(cycles, points)
		}
		gens = append(gens, cycles)
	}
	if degree == 0 {
		degree = 1 // every generator was the empty cycle ()
	}
	return NewGroup("", degree, gens)
}

func parseNamed(name string) (*Group, error) {
	if name == "Q8" {
		return Quaternion()
	}
	if len(name) < 2 {
		return nil, errors.Wrapf(ErrBadGroupExpr, "%q", name)
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 {
		return nil, errors.Wrapf(ErrBadGroupExpr, "%q", name)
	}
	switch name[0] {
	case 'S':
		return Symmetric(n)
	case 'A':
		return Alternating(n)
	case 'D':
		return Dihedral(n)
	case 'C':
		return Cyclic(n)
	}
	return nil, errors.Wrapf(ErrBadGroupExpr, "unknown group family %q", name)
}

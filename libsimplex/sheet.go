package libsimplex

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"

	"github.com/caten2/gosimplex/gosimplex"
)

// buildClassSheets appends every distinct sheet anchored at each member of
// class to catalog, in anchor-major order.
func buildClassSheets(g gosimplex.Group, noncentral []gosimplex.Elem, class gosimplex.ConjClass, catalog []gosimplex.SheetEntry) ([]gosimplex.SheetEntry, error) {
	for _, anchor := range class.Members {
		var err error
		catalog, err = buildAnchorSheets(g, noncentral, anchor, catalog)
		if err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// buildAnchorSheets walks a candidate sheet from each noncentral seed that
// fails to commute with anchor, keeping the first sheet seen for each
// distinct element set.
func buildAnchorSheets(g gosimplex.Group, noncentral []gosimplex.Elem, anchor gosimplex.Elem, catalog []gosimplex.SheetEntry) ([]gosimplex.SheetEntry, error) {
	seen := redblacktree.Tree{
		Comparator: func(A, B interface{}) int {
			return gosimplex.ElemSetComparator(A.([]gosimplex.Elem), B.([]gosimplex.Elem))
		},
	}

	scratch := make([]gosimplex.Elem, 0, g.Order())
	sheetID := int32(0)

	for _, seed := range noncentral {
		if g.Mul(anchor, seed) == g.Mul(seed, anchor) {
			continue
		}

		sheet, err := walkSheet(g, anchor, seed)
		if err != nil {
			return nil, err
		}

		canonic := sheet.CanonicSet(scratch[:0])
		if _, found := seen.Get(canonic); found {
			continue
		}
		seen.Put(append([]gosimplex.Elem{}, canonic...), nil)

		catalog = append(catalog, gosimplex.SheetEntry{
			Tag:   gosimplex.SheetTag{Anchor: anchor, SheetID: sheetID},
			Sheet: sheet,
		})
		sheetID++
	}
	return catalog, nil
}

// walkSheet runs the boundary recurrence about anchor starting from seed:
// each step appends the inverse of the last entry times the anchor, and the
// walk ends when it returns to seed.
func walkSheet(g gosimplex.Group, anchor, seed gosimplex.Elem) (gosimplex.Sheet, error) {
	maxLen := g.Order() + 1

	sheet := make(gosimplex.Sheet, 0, 8)
	sheet = append(sheet, seed, g.Mul(g.Inv(seed), anchor))

	for sheet[len(sheet)-1] != sheet[0] {
		if len(sheet) >= maxLen {
			return nil, errors.Wrapf(gosimplex.ErrSheetUnclosed, "anchor %s, seed %s", g.ElemString(anchor), g.ElemString(seed))
		}
		last := sheet[len(sheet)-1]
		sheet = append(sheet, g.Mul(g.Inv(last), anchor))
	}

	if sheet.Sides() < 3 {
		return nil, errors.Wrapf(gosimplex.ErrDegenerateSheet, "anchor %s, seed %s", g.ElemString(anchor), g.ElemString(seed))
	}
	return sheet, nil
}

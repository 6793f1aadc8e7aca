package gosimplex

import "errors"

// Errors
var (
	ErrUnmarshal           = errors.New("unmarshal failed")
	ErrBadCatalogParam     = errors.New("bad catalog param")
	ErrCatalogClosed       = errors.New("catalog is closed")
	ErrAbelianGroup        = errors.New("group is abelian and admits no sheets")
	ErrPartitionIncomplete = errors.New("noncentral element conjugates to no class representative")
	ErrSheetUnclosed       = errors.New("sheet walk failed to close within the group order")
	ErrDegenerateSheet     = errors.New("sheet closed with fewer than 3 sides")
	ErrMixedPolygon        = errors.New("component mixes sheets of different polygon sizes")
	ErrInconsistentSurface = errors.New("component totals do not describe a closed orientable surface")
)

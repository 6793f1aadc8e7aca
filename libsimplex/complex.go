package libsimplex

import (
	"github.com/plan-systems/klog"

	"github.com/caten2/gosimplex/gosimplex"
)

// BuildComplex runs the complete construction for a single group: the
// conjugacy partition of its noncentral elements, sheet enumeration per class,
// the flattened sheet catalog, the sheet adjacency graph, and per-component
// surface totals.
//
// The group must be non-abelian and is not retained beyond the returned
// Complex, which references it.
func BuildComplex(g gosimplex.Group) (*gosimplex.Complex, error) {
	noncentral, classes, err := Partition(g)
	if err != nil {
		return nil, err
	}

	catalog := make([]gosimplex.SheetEntry, 0, len(noncentral))
	for _, class := range classes {
		catalog, err = buildClassSheets(g, noncentral, class, catalog)
		if err != nil {
			return nil, err
		}
	}

	adj := buildAdjacency(catalog)

	components, err := buildComponents(g, catalog, adj)
	if err != nil {
		return nil, err
	}

	cx := &gosimplex.Complex{
		Group:      g,
		Noncentral: noncentral,
		Classes:    classes,
		Catalog:    catalog,
		Adjacency:  adj,
		Components: components,
	}

	klog.V(1).Infof("built %v: %d classes, %d sheets, %d components",
		g, len(classes), len(catalog), len(components))

	return cx, nil
}

// StreamComplexes builds the complex of each given group on a background
// goroutine, emitting them in the order given. A group that fails to build is
// logged and skipped, so one bad group does not wedge the stream.
func StreamComplexes(groups ...gosimplex.Group) *gosimplex.ComplexStream {
	stream := gosimplex.NewComplexStream()

	go func() {
		for _, g := range groups {
			cx, err := BuildComplex(g)
			if err != nil {
				klog.Errorf("build of %v failed: %v", g, err)
				continue
			}
			stream.Outlet <- cx
		}
		stream.Close()
	}()

	return stream
}

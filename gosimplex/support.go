package gosimplex

import (
	"math"
	"sync"
)

// ElemSetComparator orders two ascending element sets lexicographically,
// shorter sets first. Suitable as a canonical tree comparator.
func ElemSetComparator(A, B []Elem) int {
	lenB := len(B)

	for i, ai := range A {
		if lenB == i {
			return 1
		}
		d := int(ai) - int(B[i])
		if d != 0 {
			return d
		}
	}

	if len(A) < lenB {
		return -1
	}
	return 0
}

// DefaultComplexSelector selects every cataloged complex.
var DefaultComplexSelector = ComplexSelector{
	Min: SummaryBounds{
		GroupOrder: 1,
	},
	Max: SummaryBounds{
		GroupOrder: MaxGroupOrder,
		NumSheets:  math.MaxInt32,
		Genus:      math.MaxInt32,
	},
}

// SelectsSummary is a convenience function used to see if a summary is selected according to a ComplexSelector.
func (sel *ComplexSelector) SelectsSummary(sum *ComplexSummary) bool {
	if sum.GroupOrder < sel.Min.GroupOrder || sum.NumSheets < sel.Min.NumSheets {
		return false
	}
	if sum.GroupOrder > sel.Max.GroupOrder || sum.NumSheets > sel.Max.NumSheets {
		return false
	}
	maxGenus := sum.MaxGenus()
	if maxGenus < sel.Min.Genus || maxGenus > sel.Max.Genus {
		return false
	}
	if sel.GenusOnly && maxGenus <= 0 {
		return false
	}
	return true
}

// NewCatalogContext returns a ready CatalogContext that tracks open catalogs
// and lets a caller close them as a unit.
func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	close(ctx.closing)
	ctx.mu.Lock()
	for cat := range ctx.openCatalogs {
		go cat.Close()
	}
	ctx.mu.Unlock()
}

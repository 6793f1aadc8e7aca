package gosimplex

const (

	// MaxGroupOrder is the max order of a group whose complex can be cataloged.
	// The group order is the leading byte of a complex's catalog key.
	MaxGroupOrder = 255

	// MaxSheetSides is the max possible number of sides of a single sheet,
	// since a sheet's boundary walk visits a noncentral element at most once.
	MaxSheetSides = MaxGroupOrder
)

// Elem identifies a group element by its zero-based index within the group's enumeration.
//
// An Elem is only meaningful relative to the Group that issued it.
type Elem int32

// Group is the adapter contract for a finite group.
//
// Implementations own element identity and enumeration order. All products,
// inverses, centrality, and conjugacy questions are answered here, so the
// complex construction itself stays purely combinatorial.
type Group interface {

	// Order returns the number of elements in this group.
	Order() int

	// Elements returns every element in enumeration order.
	// The returned slice is shared and must not be modified.
	Elements() []Elem

	// Identity returns the group's identity element.
	Identity() Elem

	// Mul returns the product a*b.
	Mul(a, b Elem) Elem

	// Inv returns the inverse of a.
	Inv(a Elem) Elem

	// Pow returns a raised to the power n, where n may be zero or negative.
	Pow(a Elem, n int) Elem

	// ElemOrder returns the multiplicative order of a.
	ElemOrder(a Elem) int

	// Center returns the elements that commute with every element, in enumeration order.
	Center() []Elem

	// ConjugacyReps returns one representative per conjugacy class, in the
	// group's canonical class order.
	ConjugacyReps() []Elem

	// ElemString returns a human-readable form of a, such as cycle notation.
	ElemString(a Elem) string

	// String returns this group's canonical designation (e.g. "S4").
	// Two groups with equal designations are considered the same group.
	String() string
}

// ConjClass is a single conjugacy class of noncentral elements.
type ConjClass struct {
	Rep     Elem   // canonical class representative
	Members []Elem // all class members; Members[0] == Rep
}

// Sheet is the boundary walk of one polygonal face.
//
// A well-formed Sheet is "closed": its first element reappears as its final
// element (and nowhere else), so a k-gon has k+1 entries.
type Sheet []Elem

// SheetTag names a sheet by the class member it is anchored at, plus an
// ordinal distinguishing multiple sheets sharing that anchor.
type SheetTag struct {
	Anchor  Elem
	SheetID int32
}

// SheetEntry is one record of a complex's sheet catalog.
type SheetEntry struct {
	Tag   SheetTag
	Sheet Sheet
}

// AdjacencyGraph relates sheets of a catalog that share a boundary edge.
// Sheets are identified by their catalog index.
type AdjacencyGraph struct {

	// Neighbors[i] lists the sheets adjacent to sheet i, ascending.
	// Adjacency is irreflexive and symmetric.
	Neighbors [][]int32
}

// SurfaceStats are the topological totals of one connected component.
type SurfaceStats struct {
	Faces     int32 // number of sheets in the component
	Polygon   int32 // shared side count of the component's sheets
	Vertices  int32 // equivalence-folded vertex count
	Edges     int32 // pairwise shared-edge count
	EulerChar int32 // Vertices - Edges + Faces
	Genus     int32 // (2 - EulerChar) / 2
}

// ComponentInfo is one connected component of a complex's sheet adjacency graph.
type ComponentInfo struct {
	SurfaceStats

	// SheetIndices are the component's catalog indices, ascending.
	// The component's label is its position in Complex.Components, and
	// components are ordered by their smallest catalog index.
	SheetIndices []int32

	// Sheets holds the catalog entries named by SheetIndices.
	Sheets []SheetEntry
}

// Complex is the fully built simplicial complex of a group: the conjugacy
// partition of its noncentral elements, the flattened sheet catalog, the
// sheet adjacency graph, and the per-component surface totals.
type Complex struct {
	Group      Group
	Noncentral []Elem          // noncentral elements in enumeration order
	Classes    []ConjClass     // noncentral classes in canonical rep order
	Catalog    []SheetEntry    // flattened sheet catalog; position is a sheet's catalog index
	Adjacency  AdjacencyGraph  // sheet adjacency (shared boundary edge, orientation-insensitive)
	Components []ComponentInfo // connected components, ordered by smallest member index
}

// PrintOpts controls Complex.WriteAsString and ComplexStream.Print.
type PrintOpts struct {
	Label      string // optional label prepended by ComplexStream.Print
	Classes    bool   // print the conjugacy class partition
	Sheets     bool   // print every sheet boundary walk
	Components bool   // print per-component surface totals
}

// DefaultPrintOpts prints the summary line plus component totals.
var DefaultPrintOpts = PrintOpts{
	Components: true,
}

// OnComplexHit is a callback channel used to return summaries meeting a set
// of selection criteria. Ownership of each summary travels with the send.
type OnComplexHit chan<- *ComplexSummary

// Catalog entry flags, stored alongside each complex summary.
const (
	// Flag_HasGenus marks a complex having a component of genus > 0.
	Flag_HasGenus byte = 1 << 0
)

// SummaryBounds are inclusive selection bounds over cataloged summaries.
type SummaryBounds struct {
	GroupOrder int32
	NumSheets  int32
	Genus      int32
}

// ComplexSelector is an operator that either selects a given complex summary or not.
type ComplexSelector struct {
	GenusOnly bool          // only select complexes having a component of genus > 0
	Min       SummaryBounds // lower select bounds
	Max       SummaryBounds // upper select bounds
}

// CatalogOpts specifies params for opening a Catalog.
type CatalogOpts struct {
	DbPathName string // empty means a transient in-memory catalog
	ReadOnly   bool
}

// Catalog wraps a persistent database of complex summaries, keyed by group
// order and designation.
type Catalog interface {

	// Tries to add the given complex's summary to this catalog.
	// Returns true if no complex with the same designation existed and the summary was added.
	TryAddComplex(cx *Complex) bool

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumComplexes returns the number of cataloged complexes for a given group order.
	// An out of range order returns 0.
	NumComplexes(forGroupOrder int) int64

	// Select fires onHit with each cataloged summary that meets the selection criteria.
	Select(sel ComplexSelector, onHit OnComplexHit)

	// Closes this catalog, flushing pending state.
	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// AttachCatalog registers a newly opened catalog with this context.
	AttachCatalog(cat Catalog)

	// DetachCatalog unregisters a catalog that has closed.
	DetachCatalog(cat Catalog)

	// Closing signals that Close() has been called.
	Closing() <-chan struct{}

	// Done signals when Close() completed and all attached Catalogs have closed.
	Done() <-chan struct{}

	// Close asks all attached catalogs to close.
	Close()
}

package gosimplex

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// SummarySpec is a compact binary encoding of a ComplexSummary, stored as a
// catalog entry value. The group designation travels in the entry key, not here.
type SummarySpec []byte

// ComplexSummary is the catalog record of a built complex: the group's
// identity plus the surface totals of each connected component.
type ComplexSummary struct {
	GroupDesig string
	GroupOrder int32
	NumSheets  int32
	Surfaces   []SurfaceStats // one entry per connected component
}

// Summarize extracts this complex's catalog record.
func (cx *Complex) Summarize() *ComplexSummary {
	sum := &ComplexSummary{
		GroupDesig: cx.Desig(),
		GroupOrder: int32(cx.Group.Order()),
		NumSheets:  int32(len(cx.Catalog)),
		Surfaces:   make([]SurfaceStats, len(cx.Components)),
	}
	for i := range cx.Components {
		sum.Surfaces[i] = cx.Components[i].SurfaceStats
	}
	return sum
}

// MaxGenus returns the largest genus among the summarized components.
func (sum *ComplexSummary) MaxGenus() int32 {
	maxg := int32(0)
	for i := range sum.Surfaces {
		if g := sum.Surfaces[i].Genus; g > maxg {
			maxg = g
		}
	}
	return maxg
}

// HasGenus returns true if any summarized component has genus > 0.
func (sum *ComplexSummary) HasGenus() bool {
	return sum.MaxGenus() > 0
}

// AppendSpecTo appends a canonical binary encoding of this summary to out.
func (sum *ComplexSummary) AppendSpecTo(out []byte) SummarySpec {
	var scrap [12]byte

	spec := out
	n := binary.PutUvarint(scrap[:], uint64(sum.GroupOrder))
	spec = append(spec, scrap[:n]...)
	n = binary.PutUvarint(scrap[:], uint64(sum.NumSheets))
	spec = append(spec, scrap[:n]...)
	n = binary.PutUvarint(scrap[:], uint64(len(sum.Surfaces)))
	spec = append(spec, scrap[:n]...)

	for i := range sum.Surfaces {
		sf := &sum.Surfaces[i]
		for _, vi := range [4]int32{sf.Faces, sf.Polygon, sf.Vertices, sf.Edges} {
			n = binary.PutUvarint(scrap[:], uint64(vi))
			spec = append(spec, scrap[:n]...)
		}
		n = binary.PutVarint(scrap[:], int64(sf.Genus))
		spec = append(spec, scrap[:n]...)
	}
	return spec
}

// InitFromSpec assigns this summary from a binary encoding made from AppendSpecTo().
// GroupDesig is left unchanged since the encoding does not carry it (the catalog key does).
func (sum *ComplexSummary) InitFromSpec(spec SummarySpec) error {
	rdr := bytes.NewReader(spec)

	order, err := binary.ReadUvarint(rdr)
	if err != nil {
		return ErrUnmarshal
	}
	numSheets, err := binary.ReadUvarint(rdr)
	if err != nil {
		return ErrUnmarshal
	}
	numSurfaces, err := binary.ReadUvarint(rdr)
	if err != nil || numSurfaces > numSheets {
		return ErrUnmarshal
	}

	sum.GroupOrder = int32(order)
	sum.NumSheets = int32(numSheets)
	if cap(sum.Surfaces) < int(numSurfaces) {
		sum.Surfaces = make([]SurfaceStats, numSurfaces)
	} else {
		sum.Surfaces = sum.Surfaces[:numSurfaces]
	}

	for i := range sum.Surfaces {
		sf := &sum.Surfaces[i]
		for _, dst := range [4]*int32{&sf.Faces, &sf.Polygon, &sf.Vertices, &sf.Edges} {
			v, err := binary.ReadUvarint(rdr)
			if err != nil {
				return ErrUnmarshal
			}
			*dst = int32(v)
		}
		genus, err := binary.ReadVarint(rdr)
		if err != nil {
			return ErrUnmarshal
		}
		sf.Genus = int32(genus)
		sf.EulerChar = sf.Vertices - sf.Edges + sf.Faces
		if sf.Genus < 0 || sf.EulerChar != 2-2*sf.Genus {
			return ErrUnmarshal
		}
	}
	return nil
}

// WriteAsString writes this summary as a single line.
func (sum *ComplexSummary) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "%s,|G|=%d,sheets=%d,components=%d",
		sum.GroupDesig, sum.GroupOrder, sum.NumSheets, len(sum.Surfaces))
	for i := range sum.Surfaces {
		sf := &sum.Surfaces[i]
		fmt.Fprintf(out, ",(F=%d,%d-gon,V=%d,E=%d,g=%d)",
			sf.Faces, sf.Polygon, sf.Vertices, sf.Edges, sf.Genus)
	}
}

func (sum *ComplexSummary) String() string {
	b := strings.Builder{}
	b.Grow(128)
	sum.WriteAsString(&b)
	return b.String()
}

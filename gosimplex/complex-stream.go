package gosimplex

import (
	"fmt"
	"io"
	"strings"

	"github.com/plan-systems/klog"
)

// ComplexAdder accepts built complexes, refusing duplicates.
type ComplexAdder interface {
	TryAddComplex(cx *Complex) bool
	Close() error
}

// AddComplexOpts modifies ComplexStream.AddTo behavior.
type AddComplexOpts struct {
	AutoCloseCatalog bool
}

// ComplexStream is a pipeline of built complexes, flowing through chained stages.
type ComplexStream struct {
	Outlet chan *Complex
}

func NewComplexStream() *ComplexStream {
	stream := &ComplexStream{
		Outlet: make(chan *Complex),
	}
	return stream
}

// StreamComplex wraps a single complex as a stream.
func StreamComplex(cx *Complex) *ComplexStream {
	next := NewComplexStream()

	go func() {
		next.Outlet <- cx
		next.Close()
	}()

	return next
}

func (stream *ComplexStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *ComplexStream) PushComplex(cx *Complex) {
	stream.Outlet <- cx
}

func (stream *ComplexStream) PullComplex() *Complex {
	cx := <-stream.Outlet
	return cx
}

// PullAll drains this stream, returning the number of complexes pulled.
func (stream *ComplexStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Print writes each passing complex to out, forwarding every complex downstream.
func (stream *ComplexStream) Print(out io.WriteCloser, opts PrintOpts) *ComplexStream {
	next := &ComplexStream{
		Outlet: make(chan *Complex, 1),
	}

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for cx := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
			}
			buf.WriteByte(',')

			count++
			fmt.Fprintf(&buf, "%04d,", count)
			cx.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- cx
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo offers each passing complex to target, forwarding only newly added ones.
func (stream *ComplexStream) AddTo(target ComplexAdder, opts AddComplexOpts) *ComplexStream {
	next := &ComplexStream{
		Outlet: make(chan *Complex, 1),
	}

	go func() {
		for cx := range stream.Outlet {
			wasAdded := target.TryAddComplex(cx)
			if wasAdded {
				next.Outlet <- cx
			}
		}
		if opts.AutoCloseCatalog {
			if err := target.Close(); err != nil {
				klog.Errorf("catalog close failed: %v", err)
			}
		}
		next.Close()
	}()

	return next
}

// SummariesFromCatalog collects every cataloged summary that sel selects.
func SummariesFromCatalog(cat Catalog, sel ComplexSelector) []*ComplexSummary {
	onHit := make(chan *ComplexSummary, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	all := make([]*ComplexSummary, 0, 32)
	for sum := range onHit {
		all = append(all, sum)
	}
	return all
}

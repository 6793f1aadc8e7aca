package pysimplex

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/caten2/gosimplex/gosimplex"
	"github.com/caten2/gosimplex/libsimplex"
	"github.com/caten2/gosimplex/libsimplex/catalog"
	"github.com/caten2/gosimplex/perm"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2023.1"
)

var (
	pyGroupType         = py.NewType("Group", "a finite group presented by permutation generators")
	pyComplexType       = py.NewType("Complex", "the simplicial complex assembled from a finite group")
	pyComplexStreamType = py.NewType("ComplexStream", "gosimplex.ComplexStream")
	pyCatalogType       = py.NewType("Catalog", "gosimplex.Catalog")
	pyWorkspaceType     = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyGroup struct {
	*perm.Group
}

func (g pyGroup) Type() *py.Type {
	return pyGroupType
}

func (g pyGroup) M__str__() (py.Object, error) {
	return py.String(g.String()), nil
}

func (g pyGroup) M__repr__() (py.Object, error) {
	return g.M__str__()
}

// getGroupFromObj accepts a group designation string, a Group object, or a
// script-side wrapper carrying one in its "_group" attribute.
func getGroupFromObj(obj py.Object) (gosimplex.Group, error) {
	switch arg := obj.(type) {
	case py.String:
		g, err := perm.Parse(string(arg))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return g, nil
	case pyGroup:
		return arg.Group, nil
	}

	if obj.Type().Name == "Group" {
		attr, err := py.GetAttrString(obj, "_group")
		if err != nil {
			return nil, err
		}
		if g, ok := attr.(pyGroup); ok {
			return g.Group, nil
		}
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected Group or group expression (got %v)", obj.Type().Name)
}

// Arg 1 (str): group designation ("S4", "Q8", ...) or generator expression
func py_NewGroup(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	err := py.LoadTuple(args, []interface{}{&expr})
	if err != nil {
		return nil, err
	}

	g, err := perm.Parse(expr)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(pyGroup{g}), nil
}

func py_Group_Order(self py.Object, args py.Tuple) (py.Object, error) {
	g := self.(pyGroup)
	return py.Int(g.Order()), nil
}

func py_Group_Degree(self py.Object, args py.Tuple) (py.Object, error) {
	g := self.(pyGroup)
	return py.Int(g.Degree()), nil
}

func py_Group_IsAbelian(self py.Object, args py.Tuple) (py.Object, error) {
	g := self.(pyGroup)
	if g.IsAbelian() {
		return py.True, nil
	}
	return py.False, nil
}

func py_Group_NumClasses(self py.Object, args py.Tuple) (py.Object, error) {
	g := self.(pyGroup)
	return py.Int(g.NumClasses()), nil
}

func py_Group_Complex(self py.Object, args py.Tuple) (py.Object, error) {
	g := self.(pyGroup)
	cx, err := libsimplex.BuildComplex(g.Group)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyComplex{cx}), nil
}

type pyComplex struct {
	*gosimplex.Complex
}

func (cx pyComplex) Type() *py.Type {
	return pyComplexType
}

func (cx pyComplex) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	cx.WriteAsString(&writer, gosimplex.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (cx pyComplex) M__repr__() (py.Object, error) {
	return cx.M__str__()
}

// Arg 1: Group object or group designation string
func py_BuildComplex(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) == 0 {
		return nil, py.ExceptionNewf(py.TypeError, "BuildComplex expects a Group or group expression")
	}
	g, err := getGroupFromObj(args[0])
	if err != nil {
		return nil, err
	}

	cx, err := libsimplex.BuildComplex(g)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyComplex{cx}), nil
}

func py_Complex_Group(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	g, ok := cx.Complex.Group.(*perm.Group)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "complex was not built from a permutation group")
	}
	return py.Object(pyGroup{g}), nil
}

func py_Complex_NumSheets(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	return py.Int(cx.NumSheets()), nil
}

func py_Complex_NumComponents(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	return py.Int(cx.NumComponents()), nil
}

func py_Complex_MaxGenus(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	return py.Int(cx.MaxGenus()), nil
}

func py_Complex_Reps(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	reps := cx.Reps()
	out := make(py.Tuple, len(reps))
	for i, rep := range reps {
		out[i] = py.String(cx.Group.ElemString(rep))
	}
	return py.Object(out), nil
}

func py_Complex_Classes(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	classes := py.StringDict{}
	for _, class := range cx.Classes {
		members := make(py.Tuple, len(class.Members))
		for i, mi := range class.Members {
			members[i] = py.String(cx.Group.ElemString(mi))
		}
		classes[cx.Group.ElemString(class.Rep)] = members
	}
	return py.Object(classes), nil
}

// Arg 1 (str, optional): restricts output to sheets anchored in the class of
// the given representative.
func py_Complex_Sheets(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)

	matchClass := -1
	if len(args) > 0 {
		want, ok := args[0].(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected class representative string (got %v)", args[0].Type().Name)
		}
		for ci := range cx.Classes {
			if cx.Group.ElemString(cx.Classes[ci].Rep) == string(want) {
				matchClass = ci
				break
			}
		}
		if matchClass < 0 {
			return nil, py.ExceptionNewf(py.ValueError, "no conjugacy class has representative %v", want)
		}
	}

	out := py.Tuple{}
	for i := range cx.Catalog {
		entry := &cx.Catalog[i]
		if matchClass >= 0 && !classContains(&cx.Classes[matchClass], entry.Tag.Anchor) {
			continue
		}
		out = append(out, py.String(sheetString(cx.Group, entry)))
	}
	return py.Object(out), nil
}

// Arg 1 (int): component label, 0 .. NumComponents()-1
func py_Complex_Component(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)

	label, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}
	if int(label) < 0 || int(label) >= len(cx.Components) {
		return nil, py.ExceptionNewf(py.IndexError, "component %d out of range (%d components)", label, len(cx.Components))
	}
	comp := &cx.Components[label]

	sheets := make(py.Tuple, len(comp.SheetIndices))
	for i, si := range comp.SheetIndices {
		sheets[i] = py.Int(si)
	}

	info := py.StringDict{
		"faces":    py.Int(comp.Faces),
		"polygon":  py.Int(comp.Polygon),
		"vertices": py.Int(comp.Vertices),
		"edges":    py.Int(comp.Edges),
		"chi":      py.Int(comp.EulerChar),
		"genus":    py.Int(comp.Genus),
		"sheets":   sheets,
	}
	return py.Object(info), nil
}

func py_Complex_Summary(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	return py.String(cx.Summarize().String()), nil
}

func py_Complex_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	cx := self.(pyComplex)
	next := gosimplex.StreamComplex(cx.Complex)
	return wrapComplexStream(next), nil
}

func classContains(class *gosimplex.ConjClass, v gosimplex.Elem) bool {
	for _, mi := range class.Members {
		if mi == v {
			return true
		}
	}
	return false
}

func sheetString(g gosimplex.Group, entry *gosimplex.SheetEntry) string {
	b := strings.Builder{}
	b.Grow(64)
	fmt.Fprintf(&b, "@%s.%d:", g.ElemString(entry.Tag.Anchor), entry.Tag.SheetID)
	for _, si := range entry.Sheet {
		fmt.Fprintf(&b, " %s", g.ElemString(si))
	}
	return b.String()
}

// Args: zero or more Group objects or group designation strings
func py_StreamComplexes(module py.Object, args py.Tuple) (py.Object, error) {
	groups := make([]gosimplex.Group, 0, len(args))
	for _, arg := range args {
		g, err := getGroupFromObj(arg)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	stream := libsimplex.StreamComplexes(groups...)
	return wrapComplexStream(stream), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx gosimplex.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: gosimplex.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := gosimplex.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	pyCat := pyCatalog{cat}
	return py.Object(pyCat), nil
}

type pyCatalog struct {
	gosimplex.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		if err := cat.Close(); err != nil {
			return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
		}
	}
	return py.None, nil
}

// Arg 1 (optional): a ComplexSelector-shaped object; defaults to selecting all
func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	sel := gosimplex.DefaultComplexSelector
	if len(args) > 0 {
		err := getComplexSelector(args[0], &sel)
		if err != nil {
			return nil, err
		}
	}

	summaries := gosimplex.SummariesFromCatalog(cat, sel)
	hits := make(py.Tuple, len(summaries))
	for i, sum := range summaries {
		hits[i] = py.String(sum.String())
	}
	return py.Object(hits), nil
}

func py_Catalog_NumComplexes(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	order, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}

	numComplexes := cat.NumComplexes(int(order))
	return py.Int(numComplexes), nil
}

func py_Catalog_IsReadOnly(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.IsReadOnly() {
		return py.True, nil
	}
	return py.False, nil
}

func py_ComplexStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(complexStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	var (
		n   int
		err error
	)
	if echo.to == nil {
		n, err = echo.stdout.Write(buf)
	} else {
		n, err = echo.to.Write(buf)
	}
	return n, err
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// See lib/pysimplex.py Print() docs
func py_ComplexStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(complexStream)
	var pathname string

	opts := gosimplex.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", gOutCount)
	}

	py.LoadAttr(kwargs, "classes", &opts.Classes)
	py.LoadAttr(kwargs, "sheets", &opts.Sheets)
	py.LoadAttr(kwargs, "components", &opts.Components)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapComplexStream(next), nil
}

type complexStream struct {
	*gosimplex.ComplexStream
}

func (stream complexStream) Type() *py.Type {
	return pyComplexStreamType
}

func wrapComplexStream(stream *gosimplex.ComplexStream) py.Object {
	return py.Object(complexStream{stream})
}

func getCatalogFromObj(obj py.Object) (gosimplex.Catalog, error) {
	if cat, ok := obj.(pyCatalog); ok {
		return cat.Catalog, nil
	}

	attr, err := py.GetAttrString(obj, "_cat")
	if err != nil {
		return nil, err
	}
	cat, ok := attr.(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", obj.Type().Name)
	}
	return cat.Catalog, nil
}

func py_ComplexStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(complexStream)

	cat, err := getCatalogFromObj(args[0])
	if err != nil {
		return nil, err
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", errors.New("catalog is in read-only mode"))
	}

	next := stream.AddTo(cat, gosimplex.AddComplexOpts{})
	return wrapComplexStream(next), nil
}

func init() {

	/////////////////////////////////
	// Group
	{
		pyGroupType.Dict["Order"] = py.MustNewMethod("Order", py_Group_Order, 0, "")
		pyGroupType.Dict["Degree"] = py.MustNewMethod("Degree", py_Group_Degree, 0, "")
		pyGroupType.Dict["IsAbelian"] = py.MustNewMethod("IsAbelian", py_Group_IsAbelian, 0, "")
		pyGroupType.Dict["NumClasses"] = py.MustNewMethod("NumClasses", py_Group_NumClasses, 0, "")
		pyGroupType.Dict["Complex"] = py.MustNewMethod("Complex", py_Group_Complex, 0, "builds this group's simplicial complex")
	}

	/////////////////////////////////
	// Complex
	{
		pyComplexType.Dict["Group"] = py.MustNewMethod("Group", py_Complex_Group, 0, "")
		pyComplexType.Dict["NumSheets"] = py.MustNewMethod("NumSheets", py_Complex_NumSheets, 0, "")
		pyComplexType.Dict["NumComponents"] = py.MustNewMethod("NumComponents", py_Complex_NumComponents, 0, "")
		pyComplexType.Dict["MaxGenus"] = py.MustNewMethod("MaxGenus", py_Complex_MaxGenus, 0, "")
		pyComplexType.Dict["Reps"] = py.MustNewMethod("Reps", py_Complex_Reps, 0, "conjugacy class representatives in canonical order")
		pyComplexType.Dict["Classes"] = py.MustNewMethod("Classes", py_Complex_Classes, 0, "noncentral conjugacy classes keyed by representative")
		pyComplexType.Dict["Sheets"] = py.MustNewMethod("Sheets", py_Complex_Sheets, 0, "sheet boundary walks, optionally for one class")
		pyComplexType.Dict["Component"] = py.MustNewMethod("Component", py_Complex_Component, 0, "surface totals of one component as a dict")
		pyComplexType.Dict["Summary"] = py.MustNewMethod("Summary", py_Complex_Summary, 0, "")
		pyComplexType.Dict["Stream"] = py.MustNewMethod("Stream", py_Complex_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumComplexes"] = py.MustNewMethod("NumComplexes", py_Catalog_NumComplexes, 0, "")
		pyCatalogType.Dict["IsReadOnly"] = py.MustNewMethod("IsReadOnly", py_Catalog_IsReadOnly, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	/////////////////////////////////
	// ComplexStream
	{
		pyComplexStreamType.Dict["Go"] = py.MustNewMethod("Go", py_ComplexStream_Go, 0, "counts the number of complexes output from the ComplexStream")
		pyComplexStreamType.Dict["Print"] = py.MustNewMethod("Print", py_ComplexStream_Print, 0, "prints each complex from the ComplexStream")
		pyComplexStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_ComplexStream_AddTo, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("NewGroup", py_NewGroup, 0, ""),
			py.MustNewMethod("BuildComplex", py_BuildComplex, 0, ""),
			py.MustNewMethod("StreamComplexes", py_StreamComplexes, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":     py.String(LIB_VERSION),
			"PY_VERSION":      py.String("v3.4.0"),
			"MAX_GROUP_ORDER": py.Int(gosimplex.MaxGroupOrder),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pysimplex",
				Doc:  "finite group simplicial complex gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})

	}
}

func intAttr(obj py.Object, key string, min, max int64) int64 {
	attr, err := py.GetAttrString(obj, key)
	if err != nil {
		panic(err)
	}
	val, _ := py.GetInt(attr)
	intVal := int64(val)
	if intVal < min {
		intVal = min
	}
	if intVal > max {
		intVal = max
	}
	return intVal
}

func exportSummaryBounds(bounds py.Object) gosimplex.SummaryBounds {
	return gosimplex.SummaryBounds{
		GroupOrder: int32(intAttr(bounds, "order", 0, gosimplex.MaxGroupOrder)),
		NumSheets:  int32(intAttr(bounds, "sheets", 0, math.MaxInt32)),
		Genus:      int32(intAttr(bounds, "genus", 0, math.MaxInt32)),
	}
}

func getComplexSelector(selector py.Object, sel *gosimplex.ComplexSelector) error {

	bounds, err := py.GetAttrString(selector, "min")
	if err != nil {
		return err
	}
	sel.Min = exportSummaryBounds(bounds)

	bounds, err = py.GetAttrString(selector, "max")
	if err != nil {
		return err
	}
	sel.Max = exportSummaryBounds(bounds)

	if err = py.LoadAttr(selector, "genus_only", &sel.GenusOnly); err != nil {
		return err
	}

	return nil
}

package catalog

import (
	"bytes"
	"encoding/binary"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/caten2/gosimplex/gosimplex"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState

	[group order byte][group designation] => SummarySpec
		(entry UserMeta carries Flag_HasGenus)

Group orders are 1..MaxGroupOrder, so the 0x00 key prefix is reserved for
catalog state. The order-byte prefix keeps entries sorted by group order,
making a bounded select a single range scan, and NumComplexes is tracked
per order in the catalog state rather than recounted.

***/

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

const (
	kMajorVers = 2023
	kMinorVers = 1
)

// catalog is a db wrapper for a complex summary catalog
type catalog struct {
	ctx        gosimplex.CatalogContext
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

func OpenCatalog(ctx gosimplex.CatalogContext, opts gosimplex.CatalogOpts) (gosimplex.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single writer, so not needed
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gosimplex.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	// Once the db is open, the catalog ctx is considered blocked until the catalog closes
	ctx.AttachCatalog(cat)

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
		cat.state.NumComplexes = make([]uint64, gosimplex.MaxGroupOrder+1)
	}

	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.New("catalog version is incompatible")
	}

	if err != nil {
		cat.Close()
		return nil, err
	}

	return cat, nil
}

func (cat *catalog) NumComplexes(forGroupOrder int) int64 {
	if forGroupOrder <= 0 || forGroupOrder >= len(cat.state.NumComplexes) {
		return 0
	}
	return int64(cat.state.NumComplexes[forGroupOrder])
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.unmarshal(val)
			})
		}
		return err
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty || cat.readOnly {
		return nil
	}

	stateBuf := cat.state.appendTo(nil)
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) Close() error {
	err := cat.flushState()
	if cat.db != nil {
		if dbErr := cat.db.Close(); err == nil {
			err = dbErr
		}
		cat.db = nil
		cat.ctx.DetachCatalog(cat)
		cat.ctx = nil
	}
	return err
}

func formComplexKey(key []byte, groupOrder int, desig string) []byte {
	key = append(key, byte(groupOrder))
	key = append(key, desig...)
	return key
}

// TryAddComplex adds the given complex's summary if its designation isn't already cataloged.
//
// If true is returned, the complex was not present and its summary was added.
func (cat *catalog) TryAddComplex(cx *gosimplex.Complex) bool {
	order := cx.GroupOrder()
	if cat.readOnly || order <= 0 || order > gosimplex.MaxGroupOrder {
		return false
	}

	var keyBuf, valBuf [192]byte
	key := formComplexKey(keyBuf[:0], order, cx.Desig())

	txn := cat.db.NewTransaction(true)
	defer txn.Discard()

	_, err := txn.Get(key)
	if err != badger.ErrKeyNotFound {
		return false
	}

	sum := cx.Summarize()
	flags := byte(0)
	if sum.HasGenus() {
		flags |= gosimplex.Flag_HasGenus
	}

	err = txn.SetEntry(badger.NewEntry(key, sum.AppendSpecTo(valBuf[:0])).WithMeta(flags))
	if err == nil {
		err = txn.Commit()
	}
	if err != nil {
		panic(err)
	}

	cat.state.NumComplexes[order]++
	cat.stateDirty = true

	return true
}

// Select calls onHit() with each cataloged summary matching the given criteria,
// in ascending group order.
func (cat *catalog) Select(sel gosimplex.ComplexSelector, onHit gosimplex.OnComplexHit) {
	minOrder := sel.Min.GroupOrder
	if minOrder < 1 {
		minOrder = 1
	}
	maxOrder := sel.Max.GroupOrder
	if maxOrder > gosimplex.MaxGroupOrder {
		maxOrder = gosimplex.MaxGroupOrder
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   300,
	})
	defer it.Close()

	wantFlags := byte(0)
	if sel.GenusOnly {
		wantFlags |= gosimplex.Flag_HasGenus
	}

	minKey := [1]byte{byte(minOrder)}
	for it.Seek(minKey[:]); it.Valid(); it.Next() {
		curItem := it.Item()
		curKey := curItem.Key()

		// Stop once the group order is over the max
		if int32(curKey[0]) > maxOrder {
			break
		}

		// The entry flags pre-filter without decoding the summary
		if curItem.UserMeta()&wantFlags != wantFlags {
			continue
		}

		sum := &gosimplex.ComplexSummary{
			GroupDesig: string(curKey[1:]),
		}
		err := curItem.Value(func(val []byte) error {
			return sum.InitFromSpec(val)
		})
		if err != nil {
			panic(err)
		}

		if sel.SelectsSummary(sum) {
			onHit <- sum
		}
	}
}

// catalogState tracks catalog-wide counts, persisted under gCatalogStateKey.
type catalogState struct {
	MajorVers    int32
	MinorVers    int32
	NumComplexes []uint64 // indexed by group order
}

func (state *catalogState) appendTo(out []byte) []byte {
	var scrap [12]byte

	n := binary.PutUvarint(scrap[:], uint64(state.MajorVers))
	out = append(out, scrap[:n]...)
	n = binary.PutUvarint(scrap[:], uint64(state.MinorVers))
	out = append(out, scrap[:n]...)
	n = binary.PutUvarint(scrap[:], uint64(len(state.NumComplexes)))
	out = append(out, scrap[:n]...)

	for _, count := range state.NumComplexes {
		n = binary.PutUvarint(scrap[:], count)
		out = append(out, scrap[:n]...)
	}
	return out
}

func (state *catalogState) unmarshal(spec []byte) error {
	rdr := bytes.NewReader(spec)

	major, err := binary.ReadUvarint(rdr)
	if err != nil {
		return gosimplex.ErrUnmarshal
	}
	minor, err := binary.ReadUvarint(rdr)
	if err != nil {
		return gosimplex.ErrUnmarshal
	}
	numOrders, err := binary.ReadUvarint(rdr)
	if err != nil || numOrders > gosimplex.MaxGroupOrder+1 {
		return gosimplex.ErrUnmarshal
	}

	state.MajorVers = int32(major)
	state.MinorVers = int32(minor)
	state.NumComplexes = make([]uint64, numOrders)
	for i := range state.NumComplexes {
		count, err := binary.ReadUvarint(rdr)
		if err != nil {
			return gosimplex.ErrUnmarshal
		}
		state.NumComplexes[i] = count
	}
	return nil
}

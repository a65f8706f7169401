package store

import (
	"bytes"
	"sort"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free nodes in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap
// strategy to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nil)
}

// Op describes a single write operation that was performed on a cache
// wrap and is to be flushed into the backing store.
type Op struct {
	delete bool
	key    []byte
	value  []byte
}

// SetOp constructs an operation to set a key to a value.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp constructs an operation to delete a key.
func DelOp(key []byte) Op {
	return Op{delete: true, key: key}
}

// Apply performs the operation on the given store.
func (o Op) Apply(db KVStore) {
	if o.delete {
		db.Delete(o.key)
	} else {
		db.Set(o.key, o.value)
	}
}

// IsSetOp returns true if this operation sets a value.
func (o Op) IsSetOp() bool {
	return !o.delete
}

// Key returns the key this operation affects.
func (o Op) Key() []byte {
	return o.key
}

// BTreeCacheWrap places a btree cache over a KVStore.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	free *btree.FreeList
	back KVStore
	ops  *[]Op
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store. All writes are held in the cache until Write is called,
// which flushes them in order into the backing store.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings.
func NewBTreeCacheWrap(kv KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	ops := make([]Op, 0, 16)
	return BTreeCacheWrap{
		bt:   btree.NewWithFreeList(2, free),
		free: free,
		back: kv,
		ops:  &ops,
	}
}

// CacheWrap layers another BTree on top of this one.
// Don't change horses in mid-stream....
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write syncs with the underlying store.
// And then cleans up.
func (b BTreeCacheWrap) Write() {
	for _, op := range *b.ops {
		op.Apply(b.back)
	}
	b.Discard()
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
	*b.ops = (*b.ops)[:0]
}

// Set writes to the BTree and remembers the operation for Write.
func (b BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	*b.ops = append(*b.ops, SetOp(key, value))
}

// Delete deletes from the BTree and remembers the operation for Write.
func (b BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(newDeleteItem(key))
	*b.ops = append(*b.ops, DelOp(key))
}

// Get reads from the BTree if there is a cached value,
// else reads from the backing store.
func (b BTreeCacheWrap) Get(key []byte) []byte {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value
		case deleteItem:
			return nil
		}
	}
	return b.back.Get(key)
}

// Has reads from the BTree if there is a cached value,
// else reads from the backing store.
func (b BTreeCacheWrap) Has(key []byte) bool {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true
		case deleteItem:
			return false
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Merges the cached writes with the backing store content.
func (b BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	return NewSliceIterator(b.merged(start, end))
}

// ReverseIterator over a domain of keys in descending order.
// The range is [start, end) just like for Iterator, only the traversal
// order differs.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	models := b.merged(start, end)
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return NewSliceIterator(models)
}

// merged materializes the combined view of the cache and the backing
// store for the given [start, end) range. A cache wrap holds the working
// set of a single transaction so the copied range stays small.
func (b BTreeCacheWrap) merged(start, end []byte) []Model {
	state := make(map[string][]byte)

	iter := b.back.Iterator(start, end)
	for ; iter.Valid(); iter.Next() {
		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)
		state[string(key)] = value
	}
	iter.Close()

	overlay := func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			state[string(t.key)] = t.value
		case deleteItem:
			delete(state, string(t.key))
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(overlay)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, overlay)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, overlay)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, overlay)
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	models := make([]Model, len(keys))
	for i, key := range keys {
		models[i] = Model{Key: []byte(key), Value: state[key]}
	}
	return models
}

///////////////////////////////////////////////
// btree items

// bkey implements btree.Item and is used only as a lookup pivot.
type bkey struct {
	key []byte
}

type keyer interface {
	Key() []byte
}

func (k bkey) Key() []byte {
	return k.key
}

func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

// setItem is a cached write of a value.
type setItem struct {
	key   []byte
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	}
}

func (i setItem) Key() []byte {
	return i.key
}

func (i setItem) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(i.key, cmp) < 0
}

// deleteItem is a cached removal of a key.
type deleteItem struct {
	key []byte
}

func newDeleteItem(key []byte) deleteItem {
	return deleteItem{
		key: append([]byte(nil), key...),
	}
}

func (i deleteItem) Key() []byte {
	return i.key
}

func (i deleteItem) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(i.key, cmp) < 0
}

package tranche

// KVStore is the interface all backing stores must provide. Implementations
// may offer more, but every piece of state access in this codebase is written
// against this minimal surface.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte)

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte)
}

// ReadOnlyKVStore is a subset of KVStore functionality that does not
// permit any modification.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) []byte

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) bool

	// Iterator returns an iterator over the given key range in ascending
	// order. End is exclusive and must be greater than start.
	// No writes may happen within the range while the iterator is open.
	Iterator(start, end []byte) Iterator

	// ReverseIterator walks the same range in descending order.
	ReverseIterator(start, end []byte) Iterator
}

// Iterator provides cursor access to a range of keys.
//
//   it := db.Iterator(start, end)
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     process(it.Key(), it.Value())
//   }
type Iterator interface {
	// Valid returns whether the current position is valid.
	// Once invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the cursor to the next key in iteration order.
	// Panics if the iterator is no longer valid.
	Next()

	// Key returns the key at the cursor. The returned slice must not be
	// modified. Panics if the iterator is no longer valid.
	Key() []byte

	// Value returns the value at the cursor. The returned slice must not
	// be modified. Panics if the iterator is no longer valid.
	Value() []byte

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that can produce scratch-pad overlays of
// itself. Overlays never commit to disk on their own, they only flush into
// the store they wrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds uncommitted writes on top of another store. All reads see
// the combined state. Call Write to flush the changes down, or Discard to
// drop them.
type KVCacheWrap interface {
	// CacheWrap can be applied recursively.
	CacheableKVStore

	// Write flushes all cached changes into the underlying store.
	Write()

	// Discard invalidates this CacheWrap and releases all data
	Discard()
}

package store

import "github.com/iov-one/tranche"

// Move references for all storage types into this package
// for shorter names everywhere.

type KVStore = tranche.KVStore
type ReadOnlyKVStore = tranche.ReadOnlyKVStore
type Iterator = tranche.Iterator
type CacheableKVStore = tranche.CacheableKVStore
type KVCacheWrap = tranche.KVCacheWrap
type Model = tranche.Model

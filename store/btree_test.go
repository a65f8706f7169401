package store

import (
	"bytes"
	"testing"
)

func TestBTreeCacheWrapGetSetDelete(t *testing.T) {
	kv := MemStore()

	k, v := []byte("french"), []byte("fry")
	if kv.Has(k) {
		t.Fatal("fresh store must be empty")
	}
	kv.Set(k, v)
	if !kv.Has(k) {
		t.Fatal("value not set")
	}
	if got := kv.Get(k); !bytes.Equal(got, v) {
		t.Fatalf("want %q, got %q", v, got)
	}

	kv.Delete(k)
	if kv.Has(k) {
		t.Fatal("value not deleted")
	}
	if got := kv.Get(k); got != nil {
		t.Fatalf("deleted key must read as nil, got %q", got)
	}
}

func TestBTreeCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))

	// Discarded writes never reach the backing store.
	cache := base.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))
	cache.Discard()
	if !base.Has([]byte("a")) || base.Has([]byte("b")) {
		t.Fatal("discard leaked into the backing store")
	}

	// Written changes are applied in order.
	cache = base.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))
	cache.Write()
	if base.Has([]byte("a")) {
		t.Fatal("delete was not flushed")
	}
	if got := base.Get([]byte("b")); !bytes.Equal(got, []byte("2")) {
		t.Fatalf("set was not flushed, got %q", got)
	}
}

func TestBTreeCacheWrapShadowsBackingStore(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("old"))

	cache := base.CacheWrap()
	cache.Set([]byte("a"), []byte("new"))
	if got := cache.Get([]byte("a")); !bytes.Equal(got, []byte("new")) {
		t.Fatalf("cache must shadow the backing store, got %q", got)
	}
	if got := base.Get([]byte("a")); !bytes.Equal(got, []byte("old")) {
		t.Fatalf("backing store modified before Write, got %q", got)
	}

	cache.Delete([]byte("a"))
	if cache.Has([]byte("a")) {
		t.Fatal("cached delete must shadow the backing value")
	}
}

func TestBTreeCacheWrapIterator(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))
	base.Set([]byte("c"), []byte("3"))
	base.Set([]byte("e"), []byte("5"))

	cache := base.CacheWrap().(BTreeCacheWrap)
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("c"))

	// The merged view contains both layers, without the deleted key.
	var keys []string
	for it := cache.Iterator(nil, nil); it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	want := []string{"a", "b", "e"}
	if len(keys) != len(want) {
		t.Fatalf("want %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("want %v, got %v", want, keys)
		}
	}

	// Ranged iteration honors [start, end).
	it := cache.Iterator([]byte("b"), []byte("e"))
	if !it.Valid() || string(it.Key()) != "b" {
		t.Fatalf("unexpected first key: %q", it.Key())
	}
	it.Next()
	if it.Valid() {
		t.Fatalf("unexpected extra key: %q", it.Key())
	}

	// Reverse iteration returns keys in descending order.
	rev := cache.ReverseIterator(nil, nil)
	if string(rev.Key()) != "e" {
		t.Fatalf("unexpected first reverse key: %q", rev.Key())
	}
}

func TestBTreeCacheWrapReverseIteratorRange(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))
	base.Set([]byte("b"), []byte("2"))
	base.Set([]byte("c"), []byte("3"))

	collect := func(it Iterator) []string {
		var keys []string
		for ; it.Valid(); it.Next() {
			keys = append(keys, string(it.Key()))
		}
		return keys
	}

	// The range is [start, end), walked backwards.
	keys := collect(base.ReverseIterator([]byte("a"), []byte("c")))
	want := []string{"b", "a"}
	if len(keys) != len(want) {
		t.Fatalf("want %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("want %v, got %v", want, keys)
		}
	}

	// Open ended ranges work in both directions.
	keys = collect(base.ReverseIterator([]byte("b"), nil))
	if len(keys) != 2 || keys[0] != "c" || keys[1] != "b" {
		t.Fatalf("want [c b], got %v", keys)
	}
	keys = collect(base.ReverseIterator(nil, []byte("b")))
	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("want [a], got %v", keys)
	}

	// Cached writes participate in the reversed view as well.
	cache := base.CacheWrap()
	cache.Set([]byte("bb"), []byte("4"))
	cache.Delete([]byte("b"))
	keys = collect(cache.(BTreeCacheWrap).ReverseIterator([]byte("a"), []byte("c")))
	if len(keys) != 2 || keys[0] != "bb" || keys[1] != "a" {
		t.Fatalf("want [bb a], got %v", keys)
	}
}

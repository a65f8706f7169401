package orm

import (
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest/assert"
)

func TestModelBucketPutGeneratesKey(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	k1, err := b.Put(db, nil, &counter{count: 1})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &counter{count: 2})
	assert.Nil(t, err)
	assert.Equal(t, 8, len(k1))
	if string(k1) == string(k2) {
		t.Fatal("generated keys must be unique")
	}

	var c counter
	assert.Nil(t, b.One(db, k2, &c))
	assert.Equal(t, int64(2), c.count)
}

func TestModelBucketPutWithExplicitKey(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	key := []byte("mykey")
	_, err := b.Put(db, key, &counter{count: 5})
	assert.Nil(t, err)

	// Using the same key overwrites.
	_, err = b.Put(db, key, &counter{count: 6})
	assert.Nil(t, err)

	var c counter
	assert.Nil(t, b.One(db, key, &c))
	assert.Equal(t, int64(6), c.count)
}

func TestModelBucketOneNotFound(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	var c counter
	err := b.One(db, []byte("unknown"), &c)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestModelBucketPutRejectsWrongType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	_, err := b.Put(db, nil, &other{})
	assert.IsErr(t, errors.ErrType, err)
}

// other is a model of a different type than counter.
type other struct {
	counter
}

func TestModelBucketByIndex(t *testing.T) {
	db := store.MemStore()
	parity := func(obj Object) ([]byte, error) {
		if obj.Value().(*counter).count%2 == 0 {
			return []byte("even"), nil
		}
		return []byte("odd"), nil
	}
	b := NewModelBucket("cnts", &counter{}, WithIndex("parity", parity, false))

	_, err := b.Put(db, nil, &counter{count: 2})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &counter{count: 3})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &counter{count: 4})
	assert.Nil(t, err)

	var evens []counter
	keys, err := b.ByIndex(db, "parity", []byte("even"), &evens)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(evens))
	assert.Equal(t, 2, len(keys))

	// A slice of pointers works as well.
	var odds []*counter
	_, err = b.ByIndex(db, "parity", []byte("odd"), &odds)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(odds))
	assert.Equal(t, int64(3), odds[0].count)

	// No match is not an error.
	var none []counter
	_, err = b.ByIndex(db, "parity", []byte("none"), &none)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(none))
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	key, err := b.Put(db, nil, &counter{count: 1})
	assert.Nil(t, err)

	assert.Nil(t, b.Has(db, key))
	assert.Nil(t, b.Delete(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, key))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, key))
}

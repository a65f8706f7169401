package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest/assert"
)

// counter is a minimal model implementation used across the orm tests.
type counter struct {
	count int64
}

var _ CloneableData = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(c.count))
	return b, nil
}

func (c *counter) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrInput, "invalid length: %d", len(raw))
	}
	c.count = int64(binary.BigEndian.Uint64(raw))
	return nil
}

func (c *counter) Validate() error {
	if c.count < 0 {
		return errors.Wrap(errors.ErrState, "negative counter")
	}
	return nil
}

func (c *counter) Copy() CloneableData {
	return &counter{count: c.count}
}

func newCounterObj(key []byte, count int64) Object {
	return NewSimpleObj(key, &counter{count: count})
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("l", NewSimpleObj(nil, &counter{})) })
	assert.Panics(t, func() { NewBucket("Capitals", NewSimpleObj(nil, &counter{})) })
	assert.Panics(t, func() { NewBucket("way_too_long_name", NewSimpleObj(nil, &counter{})) })
	b := NewBucket("good", NewSimpleObj(nil, &counter{}))
	assert.Equal(t, "good", b.Name())
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))

	key := []byte("one")
	assert.Nil(t, b.Save(db, newCounterObj(key, 44)))

	obj, err := b.Get(db, key)
	assert.Nil(t, err)
	assert.Equal(t, int64(44), obj.Value().(*counter).count)

	// Missing keys load as nil without an error.
	missing, err := b.Get(db, []byte("two"))
	assert.Nil(t, err)
	assert.Nil(t, missing)

	assert.Nil(t, b.Delete(db, key))
	gone, err := b.Get(db, key)
	assert.Nil(t, err)
	assert.Nil(t, gone)
}

func TestBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))

	err := b.Save(db, newCounterObj([]byte("bad"), -1))
	assert.IsErr(t, errors.ErrState, err)
}

func TestBucketIndex(t *testing.T) {
	db := store.MemStore()
	parity := func(obj Object) ([]byte, error) {
		if obj.Value().(*counter).count%2 == 0 {
			return []byte("even"), nil
		}
		return []byte("odd"), nil
	}
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{})).
		WithIndex("parity", parity, false)

	assert.Nil(t, b.Save(db, newCounterObj([]byte("a"), 2)))
	assert.Nil(t, b.Save(db, newCounterObj([]byte("b"), 3)))
	assert.Nil(t, b.Save(db, newCounterObj([]byte("c"), 4)))

	idx, err := b.Index("parity")
	assert.Nil(t, err)

	evens, err := idx.GetAt(db, []byte("even"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(evens))

	// Changing the value moves the reference between index keys.
	assert.Nil(t, b.Save(db, newCounterObj([]byte("a"), 5)))
	odds, err := idx.GetAt(db, []byte("odd"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(odds))

	// Deleting removes the reference.
	assert.Nil(t, b.Delete(db, []byte("c")))
	evens, err = idx.GetAt(db, []byte("even"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(evens))

	_, err = b.Index("no_such")
	assert.IsErr(t, ErrInvalidIndex, err)
}

func TestBucketUniqueIndex(t *testing.T) {
	db := store.MemStore()
	constant := func(Object) ([]byte, error) {
		return []byte("all"), nil
	}
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{})).
		WithIndex("uniq", constant, true)

	assert.Nil(t, b.Save(db, newCounterObj([]byte("a"), 1)))
	err := b.Save(db, newCounterObj([]byte("b"), 2))
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnts", NewSimpleObj(nil, &counter{}))

	assert.Nil(t, b.Save(db, newCounterObj([]byte("aa"), 1)))
	assert.Nil(t, b.Save(db, newCounterObj([]byte("ab"), 2)))
	assert.Nil(t, b.Save(db, newCounterObj([]byte("zz"), 3)))

	one, err := b.Query(db, "", []byte("aa"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(one))
	assert.Equal(t, b.DBKey([]byte("aa")), one[0].Key)

	some, err := b.Query(db, "prefix", []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(some))

	all, err := b.Query(db, "prefix", nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(all))

	_, err = b.Query(db, "range", []byte("a"))
	assert.IsErr(t, errors.ErrInput, err)
}

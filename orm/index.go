package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
)

// Indexer calculates the secondary index key for a given object.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key deterministically derived from the
// data. The value stored is the set of primary keys that map to this
// index key. Unique indexes allow at most one primary key per index key.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
}

// NewIndex constructs an index with the given name and indexer. The
// bucket name scopes the keyspace:
//    _i.<bucket>_<name>:<indexValue>
func NewIndex(bucket, name string, indexer Indexer, unique bool) Index {
	id := "_i." + bucket + "_" + name + ":"
	return Index{
		name:   name,
		id:     []byte(id),
		unique: unique,
		index:  indexer,
	}
}

// IndexKey is the full key we store in the db, including prefix.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
func (i Index) Update(db tranche.KVStore, prev Object, save Object) error {
	type s struct{ a, b bool }
	sw := s{prev == nil, save == nil}
	switch sw {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case s{true, false}:
		key, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case s{false, true}:
		key, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	case s{false, false}:
		return i.move(db, prev, save)
	}
	return errors.Wrap(errors.ErrHuman, "you have violated the rules of boolean logic")
}

// GetAt returns a list of all primary keys that were indexed under the
// given secondary index key.
func (i Index) GetAt(db tranche.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	raw := db.Get(i.IndexKey(index))
	if raw == nil {
		return nil, nil
	}
	return decodeRefs(raw)
}

func (i Index) move(db tranche.KVStore, prev Object, save Object) error {
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if err := i.remove(db, oldKey, prev.Key()); err != nil {
		return err
	}
	return i.insert(db, newKey, save.Key())
}

func (i Index) insert(db tranche.KVStore, index []byte, pk []byte) error {
	if index == nil {
		// Objects without an index value are simply not indexed.
		return nil
	}
	dbkey := i.IndexKey(index)
	refs, err := decodeRefs(db.Get(dbkey))
	if err != nil {
		return err
	}
	if i.unique && len(refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	for _, r := range refs {
		if bytes.Equal(r, pk) {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
	}
	refs = append(refs, pk)
	db.Set(dbkey, encodeRefs(refs))
	return nil
}

func (i Index) remove(db tranche.KVStore, index []byte, pk []byte) error {
	if index == nil {
		return nil
	}
	dbkey := i.IndexKey(index)
	refs, err := decodeRefs(db.Get(dbkey))
	if err != nil {
		return err
	}
	for n, r := range refs {
		if bytes.Equal(r, pk) {
			refs = append(refs[:n], refs[n+1:]...)
			if len(refs) == 0 {
				db.Delete(dbkey)
			} else {
				db.Set(dbkey, encodeRefs(refs))
			}
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidIndex, "refs not found in index %s", i.name)
}

// encodeRefs serializes a set of primary keys as a sequence of
// length-prefixed chunks.
func encodeRefs(refs [][]byte) []byte {
	var out []byte
	var scratch [2]byte
	for _, r := range refs {
		binary.BigEndian.PutUint16(scratch[:], uint16(len(r)))
		out = append(out, scratch[:]...)
		out = append(out, r...)
	}
	return out
}

func decodeRefs(raw []byte) ([][]byte, error) {
	var refs [][]byte
	for len(raw) > 0 {
		if len(raw) < 2 {
			return nil, errors.Wrap(ErrInvalidIndex, "truncated refs header")
		}
		size := int(binary.BigEndian.Uint16(raw))
		raw = raw[2:]
		if len(raw) < size {
			return nil, errors.Wrap(ErrInvalidIndex, "truncated refs data")
		}
		refs = append(refs, raw[:size:size])
		raw = raw[size:]
	}
	return refs, nil
}

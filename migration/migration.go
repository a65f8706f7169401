package migration

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
)

// Migratable is implemented by every persisted entity and message that
// takes part in the schema versioning process. The Metadata header
// carries the schema version of the serialized payload.
type Migratable interface {
	GetMetadata() *tranche.Metadata
	Validate() error
}

// Modification is a function that migrates a payload from the previous
// schema version to the one it was registered with. The payload is
// modified in place.
type Modification func(Migratable) error

// NoModification is a migration that made no change to the payload
// structure. Use it when bumping a schema version that does not require
// any data transformation.
func NoModification(Migratable) error {
	return nil
}

type migrations struct {
	mu  sync.RWMutex
	reg map[reflect.Type][]Modification
}

func newRegister() *migrations {
	return &migrations{
		reg: make(map[reflect.Type][]Modification),
	}
}

// reg is the global migrations register. Each payload registers its
// migrations during the program initialization phase.
var reg = newRegister()

// Register adds a migration for given payload type. Migrations must be
// registered in order, starting with schema version 1.
func (m *migrations) Register(no uint32, payload Migratable, fn Modification) error {
	tp := reflect.TypeOf(payload)
	m.mu.Lock()
	defer m.mu.Unlock()
	if want := uint32(len(m.reg[tp]) + 1); no != want {
		return errors.Wrapf(errors.ErrSchema, "expected schema version %d for %T, got %d", want, payload, no)
	}
	m.reg[tp] = append(m.reg[tp], fn)
	return nil
}

// CurrentSchema returns the highest registered schema version for given
// payload type.
func (m *migrations) CurrentSchema(payload Migratable) (uint32, error) {
	tp := reflect.TypeOf(payload)
	m.mu.RLock()
	defer m.mu.RUnlock()
	ms := m.reg[tp]
	if len(ms) == 0 {
		return 0, errors.Wrapf(errors.ErrSchema, "%T is not registered", payload)
	}
	return uint32(len(ms)), nil
}

// Apply migrates the payload to the current schema version, applying all
// modifications in order. A payload that is already at the current
// version is left unchanged.
func (m *migrations) Apply(payload Migratable) error {
	meta := payload.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrMetadata, "no metadata: %T", payload)
	}
	if meta.Schema == 0 {
		return errors.Wrapf(errors.ErrMetadata, "schema version not set: %T", payload)
	}

	current, err := m.CurrentSchema(payload)
	if err != nil {
		return err
	}
	if meta.Schema > current {
		return errors.Wrapf(errors.ErrSchema, "schema %d is not known for %T", meta.Schema, payload)
	}

	m.mu.RLock()
	ms := m.reg[reflect.TypeOf(payload)]
	m.mu.RUnlock()

	for v := meta.Schema; v < current; v++ {
		if err := ms[v](payload); err != nil {
			return errors.Wrapf(err, "migration to schema %d", v+1)
		}
		meta.Schema = v + 1
	}
	return payload.Validate()
}

// MustRegister registers a migration for given payload type, panicking
// on a failure. Use this function only during a program startup phase.
func MustRegister(no uint32, payload Migratable, fn Modification) {
	if err := reg.Register(no, payload, fn); err != nil {
		panic(fmt.Sprintf("cannot register migration: %+v", err))
	}
}

// Apply migrates the payload to its current schema version using the
// global migrations register.
func Apply(payload Migratable) error {
	return reg.Apply(payload)
}

// MustApply migrates the payload and panics on a failure. Use only when
// the payload is known to be registered and at a valid version.
func MustApply(payload Migratable) {
	if err := reg.Apply(payload); err != nil {
		panic(fmt.Sprintf("cannot migrate: %+v", err))
	}
}

// CurrentSchema returns the highest registered schema version for given
// payload type.
func CurrentSchema(payload Migratable) (uint32, error) {
	return reg.CurrentSchema(payload)
}

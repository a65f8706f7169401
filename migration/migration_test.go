package migration

import (
	"testing"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/tranchetest/assert"
)

type payload struct {
	Metadata *tranche.Metadata
	Cnt      int
}

func (p *payload) GetMetadata() *tranche.Metadata { return p.Metadata }
func (p *payload) Validate() error                { return nil }

func TestApplyUpgradesSchema(t *testing.T) {
	m := newRegister()
	mustRegister(t, m, 1, &payload{}, NoModification)
	mustRegister(t, m, 2, &payload{}, func(mg Migratable) error {
		mg.(*payload).Cnt += 10
		return nil
	})
	mustRegister(t, m, 3, &payload{}, func(mg Migratable) error {
		mg.(*payload).Cnt += 100
		return nil
	})

	p := &payload{Metadata: &tranche.Metadata{Schema: 1}}
	assert.Nil(t, m.Apply(p))
	assert.Equal(t, uint32(3), p.Metadata.Schema)
	assert.Equal(t, 110, p.Cnt)

	// Applying again is a no-op.
	assert.Nil(t, m.Apply(p))
	assert.Equal(t, 110, p.Cnt)
}

func TestApplyRequiresMetadata(t *testing.T) {
	m := newRegister()
	mustRegister(t, m, 1, &payload{}, NoModification)

	assert.IsErr(t, errors.ErrMetadata, m.Apply(&payload{}))
	assert.IsErr(t, errors.ErrMetadata, m.Apply(&payload{Metadata: &tranche.Metadata{}}))
}

func TestApplyRejectsUnknownSchema(t *testing.T) {
	m := newRegister()
	mustRegister(t, m, 1, &payload{}, NoModification)

	p := &payload{Metadata: &tranche.Metadata{Schema: 2}}
	assert.IsErr(t, errors.ErrSchema, m.Apply(p))
}

func TestApplyOfUnregisteredType(t *testing.T) {
	m := newRegister()
	p := &payload{Metadata: &tranche.Metadata{Schema: 1}}
	assert.IsErr(t, errors.ErrSchema, m.Apply(p))
}

func TestRegisterOutOfOrder(t *testing.T) {
	m := newRegister()
	err := m.Register(2, &payload{}, NoModification)
	assert.IsErr(t, errors.ErrSchema, err)
}

func mustRegister(t testing.TB, m *migrations, no uint32, p Migratable, fn Modification) {
	t.Helper()
	if err := m.Register(no, p, fn); err != nil {
		t.Fatalf("cannot register migration %d: %+v", no, err)
	}
}

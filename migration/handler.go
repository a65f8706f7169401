package migration

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
)

// SchemaMigratingRegistry decorates given registry to always migrate
// handled messages to the current schema version before passing them to
// the registered handler.
func SchemaMigratingRegistry(r tranche.Registry) tranche.Registry {
	return &schemaMigratingRegistry{reg: r}
}

type schemaMigratingRegistry struct {
	reg tranche.Registry
}

func (r *schemaMigratingRegistry) Handle(m tranche.Msg, h tranche.Handler) {
	r.reg.Handle(m, schemaMigratingHandler{handler: h})
}

type schemaMigratingHandler struct {
	handler tranche.Handler
}

var _ tranche.Handler = schemaMigratingHandler{}

func (h schemaMigratingHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if err := migrateMsg(tx); err != nil {
		return nil, err
	}
	return h.handler.Check(ctx, db, tx)
}

func (h schemaMigratingHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	if err := migrateMsg(tx); err != nil {
		return nil, err
	}
	return h.handler.Deliver(ctx, db, tx)
}

func migrateMsg(tx tranche.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	payload, ok := msg.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrSchema, "message %T cannot be migrated", msg)
	}
	// Migration is applied in place so the message mutation is visible
	// to the wrapped handler when it loads the message again.
	return errors.Wrap(Apply(payload), "migrate msg")
}

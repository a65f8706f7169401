package app

import (
	"context"
	"testing"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest"
	"github.com/iov-one/tranche/tranchetest/assert"
)

type countingHandler struct {
	checks   int
	delivers int
}

func (h *countingHandler) Check(tranche.Context, tranche.KVStore, tranche.Tx) (*tranche.CheckResult, error) {
	h.checks++
	return &tranche.CheckResult{}, nil
}

func (h *countingHandler) Deliver(tranche.Context, tranche.KVStore, tranche.Tx) (*tranche.DeliverResult, error) {
	h.delivers++
	return &tranche.DeliverResult{}, nil
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	h := &countingHandler{}
	r.Handle(&tranchetest.Msg{RoutePath: "test/good"}, h)

	ctx := context.Background()
	db := store.MemStore()

	tx := &tranchetest.Tx{Msg: &tranchetest.Msg{RoutePath: "test/good"}}
	_, err := r.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.checks)
	assert.Equal(t, 1, h.delivers)

	missing := &tranchetest.Tx{Msg: &tranchetest.Msg{RoutePath: "test/missing"}}
	_, err = r.Check(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterRejectsInvalidPath(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		r.Handle(&tranchetest.Msg{RoutePath: "Bad Path!"}, &countingHandler{})
	})
}

func TestRouterRejectsDuplicateRoute(t *testing.T) {
	r := NewRouter()
	r.Handle(&tranchetest.Msg{RoutePath: "test/good"}, &countingHandler{})
	assert.Panics(t, func() {
		r.Handle(&tranchetest.Msg{RoutePath: "test/good"}, &countingHandler{})
	})
}

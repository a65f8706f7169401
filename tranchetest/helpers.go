package tranchetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/tranche"
)

var conditionCounter uint64

// NewCondition returns a new, unique condition. Each call returns a
// different condition so the derived addresses never collide within a
// test.
func NewCondition() tranche.Condition {
	c := atomic.AddUint64(&conditionCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, c)
	return tranche.NewCondition("test", "cond", data)
}

// SequenceID returns an ID in the same format as the one generated by
// the orm sequence. Use this function to reference entities stored with
// sequence generated keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

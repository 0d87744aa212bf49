package ctxgraph

import (
	"github.com/cespare/xxhash/v2"
	"github.com/ralakus/modlang/bytecode"
	"github.com/ralakus/modlang/codec"
)

// hashTypeData computes a structural hash of d over its canonical
// encoding, giving equal TypeData values (per TypeData.Equal) the same
// hash and letting distinct shapes collide only by chance.
func hashTypeData(d bytecode.TypeData) uint64 {
	s := codec.NewSink()
	codec.EncodeU8(s, uint8(d.Kind))
	switch d.Kind {
	case bytecode.TypeDataIntrinsic:
		codec.EncodeU8(s, uint8(d.Intrinsic))
	case bytecode.TypeDataPointer:
		codec.EncodeU64(s, uint64(d.Pointee))
	case bytecode.TypeDataStruct:
		codec.EncodeU64(s, uint64(len(d.Fields)))
		for _, f := range d.Fields {
			codec.EncodeU64(s, uint64(f))
		}
	case bytecode.TypeDataFunction:
		codec.EncodeU64(s, uint64(len(d.Parameters)))
		for _, p := range d.Parameters {
			codec.EncodeU64(s, uint64(p))
		}
		if d.Result != nil {
			codec.EncodeU8(s, 1)
			codec.EncodeU64(s, uint64(*d.Result))
		} else {
			codec.EncodeU8(s, 0)
		}
	}
	return xxhash.Sum64(s.Bytes())
}

type internEntry struct {
	data bytecode.TypeData
	key  GlobalKey
	next *internEntry
}

// InternTable canonicalizes anonymous TypeData values to a single
// GlobalKey, using a hash-bucket-then-equality lookup the same shape as
// a generic bucketed hash map, specialized to avoid a type parameter on
// the equality predicate.
type InternTable struct {
	table map[uint64]*internEntry
	size  int
}

func newInternTable() *InternTable {
	return &InternTable{table: make(map[uint64]*internEntry)}
}

// Lookup returns the key already interned for data, if any.
func (t *InternTable) Lookup(data bytecode.TypeData) (GlobalKey, bool) {
	hash := hashTypeData(data)
	for e := t.table[hash]; e != nil; e = e.next {
		if e.data.Equal(data) {
			return e.key, true
		}
	}
	return GlobalKey{}, false
}

// Insert records that data canonicalizes to key. Callers must first
// Lookup to avoid inserting a duplicate structural shape.
func (t *InternTable) Insert(data bytecode.TypeData, key GlobalKey) {
	hash := hashTypeData(data)
	head := t.table[hash]
	t.table[hash] = &internEntry{data: data, key: key, next: head}
	t.size++
}

// Len returns the number of distinct structural shapes interned.
func (t *InternTable) Len() int { return t.size }

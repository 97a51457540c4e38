package diag

import (
	"encoding/binary"

	"github.com/dolthub/maphash"

	"github.com/flier/rax"
)

// StructuralHash hashes a canonical pre-order encoding of the tree's shape
// (header flags, edge bytes, and child counts, excluding stored values
// themselves) so that two trees holding the same key set, built through
// different insertion orders, or the same tree before and after an
// insert-then-remove round trip, hash identically.
func StructuralHash[V any](t *rax.Tree[V]) uint64 {
	var buf []byte
	encode(t.Inspect(), &buf)

	h := maphash.NewHasher[string]()

	return h.Hash(string(buf))
}

func encode(n rax.NodeView, buf *[]byte) {
	var flags byte
	if n.IsKey {
		flags |= 1
	}
	if n.IsNull {
		flags |= 2
	}
	if n.IsCompr {
		flags |= 4
	}

	*buf = append(*buf, flags)
	*buf = appendUint32(*buf, uint32(len(n.Edge)))
	*buf = append(*buf, n.Edge...)
	*buf = appendUint32(*buf, uint32(len(n.Children)))

	for _, c := range n.Children {
		encode(c, buf)
	}
}

func appendUint32(buf []byte, n uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], n)
	return append(buf, tmp[:]...)
}

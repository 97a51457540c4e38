package rax

import (
	"sort"

	"github.com/flier/rax/internal/debug"
)

// maxNodeSize is the largest value the header's size field can hold: for a
// non-compressed node, the child count; for a compressed node, the length of
// the embedded byte run.
const maxNodeSize = 1<<29 - 1

// header packs the node's four flags/fields into one machine word: iskey,
// isnull, iscompr, and size.
type header uint32

const (
	flagKey   header = 1 << 31
	flagNull  header = 1 << 30
	flagCompr header = 1 << 29
	sizeMask  header = 1<<29 - 1
)

func (h header) isKey() bool   { return h&flagKey != 0 }
func (h header) isNull() bool  { return h&flagNull != 0 }
func (h header) isCompr() bool { return h&flagCompr != 0 }
func (h header) size() int     { return int(h & sizeMask) }

func (h *header) setFlag(f header, v bool) {
	if v {
		*h |= f
	} else {
		*h &^= f
	}
}

func (h *header) setSize(n int) {
	if n < 0 || n > maxNodeSize {
		panic("rax: node size out of range")
	}
	*h = (*h &^ sizeMask) | header(n)
}

// node is the single node shape the tree is built from. A compressed node
// holds a run of edge bytes leading to exactly one child; a non-compressed
// node holds a sorted array of single-byte edges, one per child.
// Either shape may additionally be a key, carrying a value.
//
// node never moves once allocated: growing or shrinking its edge/children
// only reallocates the backing arrays of those two slices, not the node
// itself, so a pointer to a node stays valid across every mutation that
// keeps the node in the tree.
type node[V any] struct {
	h        header
	edge     []byte
	children []*node[V]
	value    V
}

func newNode[V any](alloc Allocator[V], edge []byte, compressed bool) (*node[V], error) {
	n, err := alloc.Alloc()
	if err != nil {
		return nil, err
	}

	n.h = 0
	n.h.setFlag(flagCompr, compressed)
	n.edge = append([]byte(nil), edge...)
	n.children = nil
	var zero V
	n.value = zero
	n.h.setSize(len(edge))

	return n, nil
}

// setKeyValue marks n as a key carrying value.
func (n *node[V]) setKeyValue(value V) {
	n.h.setFlag(flagKey, true)
	n.h.setFlag(flagNull, false)
	n.value = value
}

// setKeyNull marks n as a key with no stored value (the Go zero value).
func (n *node[V]) setKeyNull() {
	n.h.setFlag(flagKey, true)
	n.h.setFlag(flagNull, true)
	var zero V
	n.value = zero
}

// clearKey unmarks n as a key, clearing any stored value.
func (n *node[V]) clearKey() {
	n.h.setFlag(flagKey, false)
	n.h.setFlag(flagNull, false)
	var zero V
	n.value = zero
}

// setEdge replaces n's own edge bytes in place, re-syncing the header's size
// field for compressed nodes (in a non-compressed node size tracks the child
// count, not the edge length, so it is left untouched).
func (n *node[V]) setEdge(edge []byte) {
	n.edge = append([]byte(nil), edge...)
	if n.h.isCompr() {
		n.h.setSize(len(edge))
	}
}

// setSingleChild replaces n's children with the single child given; n's
// compressed flag is left as it is.
func (n *node[V]) setSingleChild(child *node[V]) {
	n.children = []*node[V]{child}
}

// findChildIndex returns the index of the child reached by edge byte b in a
// non-compressed node's sorted edge array, and whether it was found.
func (n *node[V]) findChildIndex(b byte) (int, bool) {
	i := sort.Search(len(n.edge), func(i int) bool { return n.edge[i] >= b })
	if i < len(n.edge) && n.edge[i] == b {
		return i, true
	}
	return i, false
}

// addChild inserts a new edge byte/child pair into a non-compressed node,
// keeping the edge array sorted. b must not already be present.
func (n *node[V]) addChild(alloc Allocator[V], b byte, child *node[V]) error {
	if n.h.size() >= maxNodeSize {
		return &AllocationFailureError{Op: "add_child"}
	}

	i, found := n.findChildIndex(b)
	if found {
		panic("rax: duplicate edge byte")
	}

	n.edge = append(n.edge, 0)
	copy(n.edge[i+1:], n.edge[i:len(n.edge)-1])
	n.edge[i] = b

	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:len(n.children)-1])
	n.children[i] = child

	n.h.setSize(len(n.edge))

	debug.Assert(isSortedBytes(n.edge), "edge bytes not sorted after adding %#x", b)

	return nil
}

func isSortedBytes(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if b[i-1] >= b[i] {
			return false
		}
	}
	return true
}

// removeChildAt deletes the edge byte/child pair at index i from a
// non-compressed node.
func (n *node[V]) removeChildAt(i int) {
	n.edge = append(n.edge[:i], n.edge[i+1:]...)
	n.children = append(n.children[:i], n.children[i+1:]...)
	n.h.setSize(len(n.edge))
}

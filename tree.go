package rax

// Tree is a compressed radix tree mapping byte-string keys to values of
// type V. The zero value is not usable; construct one with New or
// NewWithAllocator.
type Tree[V any] struct {
	root          *node[V]
	alloc         Allocator[V]
	size          int
	maxStackDepth int
}

// New returns an empty Tree backed by the ordinary Go heap.
func New[V any]() *Tree[V] {
	return NewWithAllocator[V](NewHeapAllocator[V]())
}

// NewWithAllocator returns an empty Tree whose nodes are obtained from
// alloc. Use this to bound node allocation (see BoundedAllocator) or to
// plug in a pooling allocator.
func NewWithAllocator[V any](alloc Allocator[V]) *Tree[V] {
	root, err := alloc.Alloc()
	if err != nil {
		panic("rax: allocator refused the root node")
	}
	return &Tree[V]{root: root, alloc: alloc}
}

// Size returns the number of keys stored in the tree.
func (t *Tree[V]) Size() int { return t.size }

// SetMaxStackDepth bounds the path stack depth Remove and the unsafe
// iterator's walks will grow to before failing with StackOOMError, 0 means
// unbounded (the default). It exists to let tests exercise that failure
// path deterministically; production callers normally leave it unset.
func (t *Tree[V]) SetMaxStackDepth(n int) { t.maxStackDepth = n }

// Find looks up key and returns a pointer to its stored value, or nil if
// key is not present. The returned pointer aliases the tree's storage and
// is invalidated by any subsequent mutation of the tree.
func (t *Tree[V]) Find(key []byte) *V {
	w := lowWalk(t.root, key, nil)
	if w.consumed != len(key) || w.splitPos != 0 || !w.stop.h.isKey() {
		return nil
	}
	return &w.stop.value
}

// MustFind is Find with the error-return idiom: it returns NotFoundError
// instead of a nil pointer when key is absent.
func (t *Tree[V]) MustFind(key []byte) (*V, error) {
	v := t.Find(key)
	if v == nil {
		return nil, &NotFoundError{Key: key}
	}
	return v, nil
}

// Insert stores value under key, overwriting any existing value, and
// reports whether key was already present.
func (t *Tree[V]) Insert(key []byte, value V) (replaced bool, err error) {
	r := insert(&t.root, t.alloc, key, value, true)
	if r.IsErr() {
		return false, r.Err
	}
	replaced = r.Unwrap()
	if !replaced {
		t.size++
	}
	return replaced, nil
}

// TryInsert stores value under key only if key is not already present. It
// reports whether key was already present; the existing value is left
// untouched in that case.
func (t *Tree[V]) TryInsert(key []byte, value V) (existed bool, err error) {
	r := insert(&t.root, t.alloc, key, value, false)
	if r.IsErr() {
		return false, r.Err
	}
	existed = r.Unwrap()
	if !existed {
		t.size++
	}
	return existed, nil
}

// Remove deletes key from the tree, reporting whether it was present.
func (t *Tree[V]) Remove(key []byte) bool {
	removed, err := remove(&t.root, t.alloc, key, t.maxStackDepth)
	if err != nil {
		return false
	}
	if removed {
		t.size--
	}
	return removed
}

// RemoveErr is Remove with the error-return idiom: it reports StackOOMError
// if a bounded path stack (see SetMaxStackDepth) overflowed during the
// walk, instead of silently reporting the key as absent.
func (t *Tree[V]) RemoveErr(key []byte) (removed bool, err error) {
	removed, err = remove(&t.root, t.alloc, key, t.maxStackDepth)
	if err == nil && removed {
		t.size--
	}
	return removed, err
}

// Free releases every node back to the tree's allocator, leaving the tree
// empty.
func (t *Tree[V]) Free() {
	t.FreeWithCallback(nil)
}

// FreeWithCallback releases every node back to the tree's allocator,
// leaving the tree empty. If fn is non-nil, it is called once per stored
// key, in an unspecified order, before that key's node is freed.
func (t *Tree[V]) FreeWithCallback(fn func(key []byte, value *V)) {
	freeSubtree(t.alloc, t.root, nil, fn)

	root, err := t.alloc.Alloc()
	if err != nil {
		panic("rax: allocator refused the root node")
	}
	t.root = root
	t.size = 0
}

func freeSubtree[V any](alloc Allocator[V], n *node[V], prefix []byte, fn func(key []byte, value *V)) {
	var key []byte
	if n.h.isCompr() {
		key = append(append([]byte(nil), prefix...), n.edge...)
	} else {
		key = prefix
	}

	if fn != nil && n.h.isKey() {
		fn(prefix, &n.value)
	}

	if !n.h.isCompr() {
		for i, child := range n.children {
			freeSubtree(alloc, child, append(append([]byte(nil), key...), n.edge[i]), fn)
		}
	} else if len(n.children) > 0 {
		freeSubtree(alloc, n.children[0], key, fn)
	}

	alloc.Free(n)
}

// Iterator returns an unsafe iterator over t: cheap to step, but
// invalidated by any mutation of t made while it is in use.
func (t *Tree[V]) Iterator() *Iterator[V] {
	return newIterator(t, false)
}

// SafeIterator returns a safe iterator over t: each step re-seeks from its
// last key, so it tolerates concurrent mutation of t at the cost of a
// fresh walk from the root on every call.
func (t *Tree[V]) SafeIterator() *Iterator[V] {
	return newIterator(t, true)
}

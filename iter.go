package rax

import "sort"

// descendLeftmost repeatedly takes the first child until it lands on a key
// node, pushing a frame for every step (the first child of any node sorts
// immediately after the node's own key, and a node's own key, if present,
// sorts before every one of its descendants).
func descendLeftmost[V any](n *node[V], stack *pathStack[V]) *node[V] {
	for !n.h.isKey() {
		if !stack.push(frame[V]{node: n, index: 0}) {
			return n
		}
		n = n.children[0]
	}
	return n
}

// descendRightmost repeatedly takes the last child until it reaches a node
// with no children of its own, which invariant 4 guarantees is a key: the
// largest key under n is always as deep as the tree goes.
func descendRightmost[V any](n *node[V], stack *pathStack[V]) *node[V] {
	for len(n.children) > 0 {
		idx := len(n.children) - 1
		if !stack.push(frame[V]{node: n, index: idx}) {
			return n
		}
		n = n.children[idx]
	}
	return n
}

// stepNext advances from cur, whose ancestors are on stack, to the next
// key in lexicographic order, or reports false if there is none.
func stepNext[V any](cur *node[V], stack *pathStack[V]) (*node[V], bool) {
	if len(cur.children) > 0 {
		stack.push(frame[V]{node: cur, index: 0})
		return descendLeftmost(cur.children[0], stack), true
	}
	return ascendToNextSibling(stack)
}

// ascendToNextSibling pops frames looking for the nearest ancestor with an
// unvisited following sibling, then descends to that sibling's smallest
// key. It is also the tail of a ">" seek whose search key has no edge to
// follow at the point it diverged.
func ascendToNextSibling[V any](stack *pathStack[V]) (*node[V], bool) {
	for {
		f, ok := stack.pop()
		if !ok {
			return nil, false
		}
		parent := f.node
		next := f.index + 1
		if !parent.h.isCompr() && next < len(parent.children) {
			stack.push(frame[V]{node: parent, index: next})
			return descendLeftmost(parent.children[next], stack), true
		}
	}
}

// stepPrev is the mirror of stepNext: it finds the key immediately before
// the current node, whose ancestors are on stack.
func stepPrev[V any](stack *pathStack[V]) (*node[V], bool) {
	for {
		f, ok := stack.pop()
		if !ok {
			return nil, false
		}
		parent := f.node
		if !parent.h.isCompr() && f.index > 0 {
			prev := f.index - 1
			stack.push(frame[V]{node: parent, index: prev})
			return descendRightmost(parent.children[prev], stack), true
		}
		if parent.h.isKey() {
			return parent, true
		}
	}
}

// edgeByte returns the byte stepping from parent to its child at index
// contributes to the accumulated key: parent's whole edge if parent is
// compressed (it has only one child, reached after consuming the run),
// otherwise the single edge byte at index.
func edgeByte[V any](parent *node[V], index int) []byte {
	if parent.h.isCompr() {
		return parent.edge
	}
	return parent.edge[index : index+1]
}

// rebuildKey reconstructs the key spelled out by stack, root to tip.
func rebuildKey[V any](stack *pathStack[V]) []byte {
	var key []byte
	for i := 0; i < stack.depth(); i++ {
		f := stack.at(i)
		key = append(key, edgeByte(f.node, f.index)...)
	}
	return key
}

func isEmptyTree[V any](root *node[V]) bool {
	return len(root.children) == 0 && !root.h.isKey()
}

// seekFirst positions stack/returns the smallest stored key.
func seekFirst[V any](root *node[V], stack *pathStack[V]) (*node[V], bool) {
	if isEmptyTree(root) {
		return nil, false
	}
	return descendLeftmost(root, stack), true
}

// seekLast positions stack/returns the largest stored key.
func seekLast[V any](root *node[V], stack *pathStack[V]) (*node[V], bool) {
	if isEmptyTree(root) {
		return nil, false
	}
	return descendRightmost(root, stack), true
}

// seekCeil finds the smallest stored key >= key (the ">=" operator). exact
// reports whether the match is an equal key rather than a strictly larger
// one.
func seekCeil[V any](root *node[V], key []byte, stack *pathStack[V]) (n *node[V], exact bool, ok bool) {
	w := lowWalk(root, key, stack)
	if w.oom {
		return nil, false, false
	}
	stop := w.stop

	switch {
	case w.consumed == len(key) && w.splitPos == 0:
		if stop.h.isKey() {
			return stop, true, true
		}
		if len(stop.children) == 0 {
			n, ok := ascendToNextSibling(stack)
			return n, false, ok
		}
		stack.push(frame[V]{node: stop, index: 0})
		n := descendLeftmost(stop.children[0], stack)
		return n, false, true

	case w.consumed == len(key):
		// key ends partway through stop's compressed edge: everything at
		// or below stop extends key, so it all sorts strictly above it.
		stack.push(frame[V]{node: stop, index: 0})
		n := descendLeftmost(stop.children[0], stack)
		return n, false, true

	case stop.h.isCompr():
		if key[w.consumed] < stop.edge[w.splitPos] {
			stack.push(frame[V]{node: stop, index: 0})
			n := descendLeftmost(stop.children[0], stack)
			return n, false, true
		}
		n, ok := ascendToNextSibling(stack)
		return n, false, ok

	default:
		idx := sort.Search(len(stop.edge), func(i int) bool { return stop.edge[i] > key[w.consumed] })
		if idx < len(stop.edge) {
			stack.push(frame[V]{node: stop, index: idx})
			n := descendLeftmost(stop.children[idx], stack)
			return n, false, true
		}
		n, ok := ascendToNextSibling(stack)
		return n, false, ok
	}
}

// seekFloor finds the largest stored key <= key (the "<=" operator).
func seekFloor[V any](root *node[V], key []byte, stack *pathStack[V]) (n *node[V], exact bool, ok bool) {
	w := lowWalk(root, key, stack)
	if w.oom {
		return nil, false, false
	}
	stop := w.stop

	switch {
	case w.consumed == len(key) && w.splitPos == 0:
		if stop.h.isKey() {
			return stop, true, true
		}
		n, ok := stepPrev(stack)
		return n, false, ok

	case w.consumed == len(key):
		// key ends partway through a compressed edge: stop itself (the
		// position before that edge) is the floor if it is a key,
		// otherwise whatever came before it.
		if stop.h.isKey() {
			return stop, false, true
		}
		n, ok := stepPrev(stack)
		return n, false, ok

	case stop.h.isCompr():
		if key[w.consumed] > stop.edge[w.splitPos] {
			n := descendRightmost(stop, stack)
			return n, false, true
		}
		if stop.h.isKey() {
			return stop, false, true
		}
		n, ok := stepPrev(stack)
		return n, false, ok

	default:
		idx := sort.Search(len(stop.edge), func(i int) bool { return stop.edge[i] > key[w.consumed] }) - 1
		if idx >= 0 {
			stack.push(frame[V]{node: stop, index: idx})
			n := descendRightmost(stop.children[idx], stack)
			return n, false, true
		}
		if stop.h.isKey() {
			return stop, false, true
		}
		n, ok := stepPrev(stack)
		return n, false, ok
	}
}

package rax

import "github.com/flier/rax/internal/debug"

// remove deletes key from the tree, reporting whether it was present. It
// walks down once to find and unmark the key, then walks back up the path
// stack pruning now-empty dead ends and re-merging single-child chains back
// into compressed edges wherever removing the key left invariant 1
// violated.
//
// maxStackDepth bounds the path stack used for the walk; 0 means unbounded.
// A walk that hits the bound reports StackOOMError and leaves the tree
// unchanged.
func remove[V any](root **node[V], alloc Allocator[V], key []byte, maxStackDepth int) (bool, error) {
	var stack *pathStack[V]
	if maxStackDepth > 0 {
		stack = newBoundedPathStack[V](maxStackDepth)
	} else {
		stack = newPathStack[V]()
	}

	w := lowWalk(*root, key, stack)
	if w.oom {
		return false, &StackOOMError{Depth: stack.depth()}
	}

	stop := w.stop

	if w.splitPos != 0 || w.consumed != len(key) || !stop.h.isKey() {
		return false, nil
	}

	stop.clearKey()

	cur := stop
	for {
		if cur.h.size() == 0 && !cur.h.isKey() {
			f, ok := stack.pop()
			if !ok {
				break // cur is the root; leave it as the empty sentinel
			}

			alloc.Free(cur)

			parent := f.node
			if parent.h.isCompr() {
				// parent's only child just died: parent is now a dead
				// end too, to be pruned on the next trip round the loop.
				parent.h.setFlag(flagCompr, false)
				parent.edge = nil
				parent.children = nil
				parent.h.setSize(0)
			} else {
				parent.removeChildAt(f.index)
			}

			cur = parent

			continue
		}

		if cur != *root {
			// Invariant 5: the root never becomes compressed, even when a
			// deletion leaves it with a single non-key child.
			tryAbsorb(alloc, cur)
		}

		debug.Assert(!(*root).h.isCompr(), "root became compressed after removing %q", key)

		f, ok := stack.pop()
		if !ok {
			break
		}

		cur = f.node
	}

	return true, nil
}

// tryAbsorb folds cur's single-child chain of non-key nodes back into one
// compressed edge, restoring invariant 1 after a deletion may have left a
// non-compressed node with exactly one child, or left a compressed node
// pointing at another non-key compressed node.
func tryAbsorb[V any](alloc Allocator[V], cur *node[V]) {
	if cur.h.isKey() {
		return
	}
	if !cur.h.isCompr() && cur.h.size() != 1 {
		return
	}

	var combined []byte
	if cur.h.isCompr() {
		combined = append([]byte(nil), cur.edge...)
	} else {
		combined = []byte{cur.edge[0]}
	}

	child := cur.children[0]

	for !child.h.isKey() && child.h.isCompr() && len(combined)+len(child.edge) <= maxNodeSize {
		combined = append(combined, child.edge...)
		grandchild := child.children[0]
		alloc.Free(child)
		child = grandchild
	}

	cur.h.setFlag(flagCompr, true)
	cur.setEdge(combined)
	cur.children = []*node[V]{child}
}

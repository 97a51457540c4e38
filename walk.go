package rax

import "github.com/flier/rax/pkg/untrust"

// walkResult is what lowWalk reports about where it stopped.
type walkResult[V any] struct {
	stop     *node[V]
	consumed int  // bytes of key matched so far, across every node visited
	splitPos int  // bytes matched into stop's own edge; 0 unless stop is compressed
	oom      bool // stack had a depth bound and the walk hit it
}

// lowWalk descends from root following key byte by byte, for as long as a
// matching edge exists, and reports where it had to stop. It never indexes
// key directly: every comparison goes through a bounds-checked Reader, so a
// short or adversarial key can only ever end the walk early, never panic.
//
// When stack is non-nil, every node passed through (excluding stop) is
// pushed along with the index that was followed to leave it, so callers
// that need to walk back upward (remove, the unsafe iterator) can do so
// without parent pointers on the nodes.
//
// Termination, exactly mirroring the matching rule:
//   - the key is fully consumed standing on stop (consumed == len(key),
//     splitPos == 0): stop is the node a point lookup or an equal-key
//     insert would mark;
//   - stop is non-compressed and has no child for the next key byte
//     (splitPos == 0, consumed < len(key)): the key diverges at a
//     non-compressed node;
//   - stop is compressed and the key diverges inside its edge at
//     splitPos, 0 <= splitPos < len(stop.edge): the edge itself must
//     split to accommodate the new key.
func lowWalk[V any](root *node[V], key []byte, stack *pathStack[V]) walkResult[V] {
	r := untrust.NewReader(key)
	cur := root

	for {
		if r.AtEnd() {
			return walkResult[V]{stop: cur, consumed: len(key) - remaining(r)}
		}

		if cur.h.isCompr() {
			j := 0
			for j < len(cur.edge) && !r.AtEnd() && r.Peek(cur.edge[j]) {
				_, _ = r.ReadByte()
				j++
			}

			if j < len(cur.edge) {
				return walkResult[V]{stop: cur, consumed: len(key) - remaining(r), splitPos: j}
			}

			if stack != nil && !stack.push(frame[V]{node: cur, index: 0}) {
				return walkResult[V]{stop: cur, consumed: len(key) - remaining(r), oom: true}
			}

			cur = cur.children[0]

			continue
		}

		b, err := peekByte(r)
		if err != nil {
			return walkResult[V]{stop: cur, consumed: len(key) - remaining(r)}
		}

		idx, ok := cur.findChildIndex(b)
		if !ok {
			return walkResult[V]{stop: cur, consumed: len(key) - remaining(r)}
		}

		if stack != nil && !stack.push(frame[V]{node: cur, index: idx}) {
			return walkResult[V]{stop: cur, consumed: len(key) - remaining(r), oom: true}
		}

		_, _ = r.ReadByte()
		cur = cur.children[idx]
	}
}

// peekByte returns the next byte without consuming it, or an error at end of
// input. untrust.Reader only exposes Peek(b byte) bool, which is enough for
// edge matching but not for reading an arbitrary next byte to look up in a
// sorted child array, so this reads and immediately un-reads via a cloned
// reader instead of mutating r.
func peekByte(r *untrust.Reader) (byte, error) {
	clone := r.Clone()
	return clone.ReadByte()
}

// remaining reports how many bytes are left unread in r.
func remaining(r *untrust.Reader) int {
	rest, err := r.Clone().ReadBytesToEnd()
	if err != nil {
		return 0
	}
	return len(rest)
}

package rax

import "github.com/flier/rax/pkg/res"

// insert stores value under key, optionally replacing an existing value,
// and reports whether a value was already present. On allocation failure it
// releases anything it had allocated for this call and returns the tree
// unchanged. The outcome of the mutating walk is carried as a Result until
// it reaches the Tree method that called it, which unwraps it to a plain
// error.
func insert[V any](root **node[V], alloc Allocator[V], key []byte, value V, overwrite bool) res.Result[bool] {
	w := lowWalk(*root, key, nil)
	stop := w.stop

	switch {
	case w.consumed == len(key) && w.splitPos == 0:
		// Standing exactly on stop: it already represents this key's
		// position, whether or not it was a key before.
		replaced := stop.h.isKey()
		if replaced && !overwrite {
			return res.Ok(true)
		}
		stop.setKeyValue(value)
		return res.Ok(replaced)

	case stop.h.isCompr():
		err := splitCompressed(alloc, stop, w.splitPos, key[w.consumed:], value)
		return res.Wrap(false, err)

	default:
		err := attachNewBranch(alloc, stop, key[w.consumed], key[w.consumed+1:], value)
		return res.Wrap(false, err)
	}
}

// attachNewBranch adds a brand new edge byte/child to a non-compressed node
// for a key that shares nothing more with its existing children, then hangs
// a (possibly long) leaf chain for the rest of the key off of it.
func attachNewBranch[V any](alloc Allocator[V], parent *node[V], firstByte byte, rest []byte, value V) error {
	chain, err := buildChain(alloc, rest, value)
	if err != nil {
		return err
	}

	if err := parent.addChild(alloc, firstByte, chain); err != nil {
		releaseChain(alloc, chain)
		return err
	}

	return nil
}

// splitCompressed implements the prefix/pivot/suffix split of a compressed
// node's edge at splitPos, per the matching rule in lowWalk: 0 <= splitPos
// < len(stop.edge). rest is the portion of the inserted key that has not
// yet been matched (it may be empty, meaning the new key ends exactly at
// the split).
//
// stop is reused in place as either the prefix (splitPos > 0) or the pivot
// (splitPos == 0); no other node's pointer identity changes, so no caller
// above stop needs to rebind anything.
func splitCompressed[V any](alloc Allocator[V], stop *node[V], splitPos int, rest []byte, value V) error {
	oldEdge := append([]byte(nil), stop.edge...)
	oldChild := stop.children[0]
	divergingByte := oldEdge[splitPos]
	suffixBytes := oldEdge[splitPos+1:]

	oldSide := oldChild
	var allocated []*node[V]

	if len(suffixBytes) > 0 {
		suffix, err := newNode(alloc, suffixBytes, true)
		if err != nil {
			return err
		}
		suffix.setSingleChild(oldChild)
		allocated = append(allocated, suffix)
		oldSide = suffix
	}

	var pivot *node[V]
	var newChain *node[V]

	if len(rest) > 0 {
		chain, err := buildChain(alloc, rest[1:], value)
		if err != nil {
			releaseAll(alloc, allocated)
			return err
		}
		newChain = chain
	}

	if splitPos == 0 {
		// No prefix: stop itself becomes the pivot, inheriting whatever
		// key/value it held at this position before the split.
		pivot = stop
		pivot.h.setFlag(flagCompr, false)
		pivot.edge = nil
		pivot.children = nil
	} else {
		p, err := newNode(alloc, nil, false)
		if err != nil {
			releaseAll(alloc, allocated)
			releaseChain(alloc, newChain)
			return err
		}
		pivot = p
		allocated = append(allocated, pivot)

		stop.setEdge(oldEdge[:splitPos])
		stop.setSingleChild(pivot)
	}

	if err := pivot.addChild(alloc, divergingByte, oldSide); err != nil {
		releaseAll(alloc, allocated)
		releaseChain(alloc, newChain)
		return err
	}

	if len(rest) == 0 {
		pivot.setKeyValue(value)
		return nil
	}

	return pivot.addChild(alloc, rest[0], newChain)
}

// buildChain builds a chain of compressed nodes holding rest (split across
// multiple linked nodes if it exceeds maxNodeSize) terminated by a
// non-compressed, zero-child key node holding value. rest may be empty, in
// which case the terminal node is returned directly.
func buildChain[V any](alloc Allocator[V], rest []byte, value V) (*node[V], error) {
	terminal, err := newNode(alloc, nil, false)
	if err != nil {
		return nil, err
	}
	terminal.setKeyValue(value)

	head := terminal
	for len(rest) > 0 {
		n := len(rest)
		if n > maxNodeSize {
			n = maxNodeSize
		}
		run := rest[len(rest)-n:]
		rest = rest[:len(rest)-n]

		link, err := newNode(alloc, run, true)
		if err != nil {
			releaseChain(alloc, head)
			return nil, err
		}
		link.setSingleChild(head)
		head = link
	}

	return head, nil
}

// releaseChain frees n and every node reachable below it back to alloc. It
// is only ever used to unwind a chain this call just built and has not yet
// linked into the tree.
func releaseChain[V any](alloc Allocator[V], n *node[V]) {
	if n == nil {
		return
	}
	for _, c := range n.children {
		releaseChain(alloc, c)
	}
	alloc.Free(n)
}

func releaseAll[V any](alloc Allocator[V], ns []*node[V]) {
	for _, n := range ns {
		alloc.Free(n)
	}
}

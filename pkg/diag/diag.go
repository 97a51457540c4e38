// Package diag holds structural validation and pretty-printing for a
// rax.Tree's shape. It exists outside the tree's own package so that
// neither the core tree nor its production callers pay for it: nothing in
// package rax imports this package.
package diag

import (
	"fmt"
	"strings"

	"github.com/flier/rax"
)

// Violation describes one broken structural invariant found while walking
// a tree.
type Violation struct {
	Path []int // child index at each level from the root to the offending node
	Rule string
}

func (v Violation) String() string {
	return fmt.Sprintf("at %v: %s", v.Path, v.Rule)
}

// Validate walks the whole tree checking invariants 1 through 7, returning
// every violation found. A nil/empty result means the tree is structurally
// sound.
func Validate[V any](t *rax.Tree[V]) []Violation {
	var out []Violation
	root := t.Inspect()

	if root.IsCompr {
		out = append(out, Violation{Rule: "root must never be compressed"})
	}

	walk(root, nil, true, &out)

	if n := countKeys(root); n != t.Size() {
		out = append(out, Violation{Rule: fmt.Sprintf("tree reports size %d but %d nodes are marked as keys", t.Size(), n)})
	}

	return out
}

func walk(n rax.NodeView, path []int, isRoot bool, out *[]Violation) {
	fail := func(rule string) {
		cp := append([]int(nil), path...)
		*out = append(*out, Violation{Path: cp, Rule: rule})
	}

	switch {
	case n.IsCompr:
		if len(n.Children) != 1 {
			fail("compressed node must have exactly one child")
		}
		if n.Size != len(n.Edge) || n.Size < 1 {
			fail("compressed node's size must equal its edge length and be at least 1")
		}
		if !n.IsKey && len(n.Children) == 1 {
			child := n.Children[0]
			if child.IsCompr && !child.IsKey && len(n.Edge)+len(child.Edge) <= rax.MaxNodeSize {
				fail("adjacent compressed non-key edges should have been fused")
			}
		}

	default:
		if len(n.Children) == 1 && !n.IsKey && !isRoot {
			fail("a non-key, non-root non-compressed node must have zero or at least two children, never one")
		}
		if len(n.Children) == 0 && !n.IsKey && !isRoot {
			fail("a childless non-compressed node must be a key")
		}
		if n.Size != len(n.Edge) || n.Size != len(n.Children) {
			fail("non-compressed node's size must equal both its edge and child counts")
		}
		for i := 1; i < len(n.Edge); i++ {
			if n.Edge[i-1] >= n.Edge[i] {
				fail("non-compressed edge bytes must be strictly increasing")
				break
			}
		}
	}

	for i, c := range n.Children {
		walk(c, append(path, i), false, out)
	}
}

func countKeys(n rax.NodeView) int {
	count := 0
	if n.IsKey {
		count++
	}
	for _, c := range n.Children {
		count += countKeys(c)
	}
	return count
}

// Dump renders the tree's shape as an indented, human-readable tree, for
// pasting into a bug report or printing from a failing test.
func Dump[V any](t *rax.Tree[V]) string {
	var b strings.Builder
	dump(&b, t.Inspect(), 0)
	return b.String()
}

func dump(b *strings.Builder, n rax.NodeView, depth int) {
	b.WriteString(strings.Repeat("  ", depth))

	switch {
	case n.IsCompr:
		fmt.Fprintf(b, "compr %q", n.Edge)
	default:
		fmt.Fprintf(b, "node size=%d", n.Size)
	}

	if n.IsKey {
		if n.IsNull {
			b.WriteString(" [key, null]")
		} else {
			b.WriteString(" [key]")
		}
	}

	b.WriteByte('\n')

	for _, c := range n.Children {
		dump(b, c, depth+1)
	}
}

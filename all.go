//go:build go1.23

package rax

import (
	"bytes"
	"iter"

	"github.com/flier/rax/pkg/tuple"
	"github.com/flier/rax/pkg/xiter"
	"github.com/flier/rax/pkg/xiter/inspect"
)

// All returns a push iterator over every key/value pair in t, in
// lexicographic key order. It is a thin wrapper over an unsafe forward
// iteration and must not be used while t is mutated.
func (t *Tree[V]) All() iter.Seq2[[]byte, *V] {
	return func(yield func([]byte, *V) bool) {
		it := t.Iterator()
		for ok := it.Seek("^", nil); ok; ok = it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// AllPrefix returns a push iterator over every key/value pair in t whose
// key starts with prefix, in lexicographic key order.
func (t *Tree[V]) AllPrefix(prefix []byte) iter.Seq2[[]byte, *V] {
	return func(yield func([]byte, *V) bool) {
		it := t.Iterator()
		for ok := it.Seek(">=", prefix); ok && bytes.HasPrefix(it.Key(), prefix); ok = it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Pairs returns a push iterator of tuple.Tuple2 key/value pairs, for
// callers that prefer to range over a single sequence rather than a
// key/value pair.
func (t *Tree[V]) Pairs() iter.Seq[tuple.Tuple2[[]byte, *V]] {
	return xiter.Pairs(t.All())
}

// AllTraced is All, tapped by a diagnostic inspector that records the
// visited key/value pairs as they are yielded and writes the trace when the
// traversal ends. It exists for ad hoc tracing of
// a traversal during development, alongside the structural validator and
// dump helper in pkg/diag.
func (t *Tree[V]) AllTraced(opts ...inspect.Option) iter.Seq2[[]byte, *V] {
	return xiter.Inspect2(t.All(), opts...)
}

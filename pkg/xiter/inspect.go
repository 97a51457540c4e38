//go:build go1.23

package xiter

import (
	"iter"

	"github.com/flier/rax/pkg/xiter/inspect"
)

// Inspect taps a sequence, recording each item as it passes through and
// writing the collected trace to the inspector's configured output when the
// iteration ends, without otherwise changing the sequence.
func Inspect[T any](x iter.Seq[T], opts ...inspect.Option) iter.Seq[T] {
	i := inspect.New(opts)

	return func(yield func(T) bool) {
		i.Start()
		defer i.Stop()

		for v := range x {
			i.Inspect(v)

			if !yield(v) {
				break
			}
		}
	}
}

// Inspect2 is Inspect for a key/value sequence.
func Inspect2[K, V any](x iter.Seq2[K, V], opts ...inspect.Option) iter.Seq2[K, V] {
	i := inspect.New(opts)

	return func(yield func(K, V) bool) {
		i.Start()
		defer i.Stop()

		for k, v := range x {
			i.Inspect2(k, v)

			if !yield(k, v) {
				break
			}
		}
	}
}

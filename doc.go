// Package rax implements a compressed radix tree mapping byte-string keys to
// opaque value handles.
//
// The tree is a disjoint union of two node shapes folded into a single type:
// compressed nodes hold a run of bytes shared by exactly one child, and
// non-compressed nodes hold a sorted array of single-byte edges, one per
// child. Path compression keeps the tree shallow when keys share
// long common prefixes; nodes are split and re-merged as keys are inserted
// and removed so the compression invariants keep holding after every call.
//
// Keys are plain []byte and are copied into the tree on insert; values are
// opaque and never interpreted. Insert, TryInsert, Remove and Find run in
// O(len(key)). Iteration is ordered (lexicographic on the byte string) and
// supports seeking to a key by relative operator.
//
// The tree is not safe for concurrent use; callers needing concurrent access
// must synchronize externally.
package rax

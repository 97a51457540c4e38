package rax

import (
	"fmt"

	"github.com/flier/rax/pkg/xerrors"
)

// NotFoundError reports that a key has no entry in the tree.
//
// Find reports absence with a nil pointer rather than this type, since a
// nil *V can never collide with a legitimately stored value. MustFind
// returns this error instead, for callers that prefer the error-return
// idiom over checking for nil.
type NotFoundError struct {
	Key []byte
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rax: key %q not found", e.Key)
}

// AllocationFailureError reports that the configured Allocator refused to
// hand out a node mid-operation.
//
// The tree is left exactly as it was before the call that produced this
// error: any node allocated earlier in the same call has already been
// released back to the allocator.
type AllocationFailureError struct {
	// Op names the operation that failed, e.g. "alloc" or "add_child".
	Op string
}

func (e *AllocationFailureError) Error() string {
	return fmt.Sprintf("rax: allocation failure during %s", e.Op)
}

// StackOOMError reports that the path stack used by a walk or an unsafe
// iterator exceeded its configured depth bound.
//
// This only happens with a bounded Stack, normally wired only in tests; the
// default stack grows without a configured limit.
type StackOOMError struct {
	Depth int
}

func (e *StackOOMError) Error() string {
	return fmt.Sprintf("rax: path stack exceeded bound at depth %d", e.Depth)
}

// MisuseError reports a caller error: an operation invoked against a tree or
// iterator in a state that makes the call meaningless. No operation in this
// package currently returns it; stepping a stopped iterator reports false.
type MisuseError struct {
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("rax: misuse: %s", e.Reason)
}

// IsAllocationFailure reports whether err is, or wraps, an
// AllocationFailureError.
func IsAllocationFailure(err error) bool {
	_, ok := xerrors.AsA[*AllocationFailureError](err)
	return ok
}

// IsStackOOM reports whether err is, or wraps, a StackOOMError.
func IsStackOOM(err error) bool {
	_, ok := xerrors.AsA[*StackOOMError](err)
	return ok
}

// IsMisuse reports whether err is, or wraps, a MisuseError.
func IsMisuse(err error) bool {
	_, ok := xerrors.AsA[*MisuseError](err)
	return ok
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := xerrors.AsA[*NotFoundError](err)
	return ok
}

package rax

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildChain(t *testing.T) {
	Convey("Given an allocator with no budget limit", t, func() {
		alloc := NewHeapAllocator[int]()

		Convey("Building a chain for an empty suffix returns a bare key node", func() {
			n, err := buildChain(alloc, nil, 42)

			So(err, ShouldBeNil)
			So(n.h.isKey(), ShouldBeTrue)
			So(n.h.isCompr(), ShouldBeFalse)
			So(n.value, ShouldEqual, 42)
			So(n.children, ShouldBeEmpty)
		})

		Convey("Building a chain for a short suffix wraps the terminal in one compressed link", func() {
			n, err := buildChain(alloc, []byte("bar"), 1)

			So(err, ShouldBeNil)
			So(n.h.isCompr(), ShouldBeTrue)
			So(n.edge, ShouldResemble, []byte("bar"))
			So(len(n.children), ShouldEqual, 1)

			terminal := n.children[0]
			So(terminal.h.isKey(), ShouldBeTrue)
			So(terminal.value, ShouldEqual, 1)
		})

		Convey("Building a chain longer than one node's capacity splits across linked nodes", func() {
			rest := make([]byte, maxNodeSize+10)
			for i := range rest {
				rest[i] = byte('a' + i%26)
			}

			head, err := buildChain(alloc, rest, 7)
			So(err, ShouldBeNil)
			So(head.h.isCompr(), ShouldBeTrue)
			So(len(head.edge), ShouldBeLessThanOrEqualTo, maxNodeSize)

			link := head.children[0]
			So(link.h.isCompr(), ShouldBeTrue)

			terminal := link.children[0]
			So(terminal.h.isKey(), ShouldBeTrue)
			So(terminal.value, ShouldEqual, 7)
		})
	})

	Convey("Given an allocator that fails on the second allocation", t, func() {
		alloc := NewBoundedAllocator[int](1)

		Convey("Building a chain that needs a link node fails and releases the terminal", func() {
			_, err := buildChain(alloc, []byte("bar"), 1)

			So(IsAllocationFailure(err), ShouldBeTrue)
			So(alloc.InUse(), ShouldEqual, 0)
		})
	})
}

func TestAttachNewBranch(t *testing.T) {
	Convey("Given a non-compressed node with no children", t, func() {
		alloc := NewHeapAllocator[int]()
		parent, _ := newNode[int](alloc, nil, false)

		Convey("Attaching a new branch adds exactly one edge byte", func() {
			err := attachNewBranch(alloc, parent, 'x', []byte("yz"), 5)

			So(err, ShouldBeNil)
			So(parent.edge, ShouldResemble, []byte{'x'})
			So(len(parent.children), ShouldEqual, 1)

			link := parent.children[0]
			So(link.h.isCompr(), ShouldBeTrue)
			So(link.edge, ShouldResemble, []byte("yz"))
		})
	})

	Convey("Given a node whose child array is already at the allocator's budget", t, func() {
		alloc := NewBoundedAllocator[int](1)
		parent, _ := newNode[int](alloc, nil, false)

		Convey("Attaching a new branch fails and leaves the parent untouched", func() {
			err := attachNewBranch(alloc, parent, 'x', nil, 5)

			So(IsAllocationFailure(err), ShouldBeTrue)
			So(parent.edge, ShouldBeEmpty)
			So(parent.children, ShouldBeEmpty)
		})
	})
}

func TestSplitCompressed(t *testing.T) {
	Convey("Given a compressed node holding \"ooter\" with a key child", t, func() {
		alloc := NewHeapAllocator[int]()

		terminal, _ := newNode[int](alloc, nil, false)
		terminal.setKeyValue(1)

		stop, _ := newNode[int](alloc, []byte("ooter"), true)
		stop.setSingleChild(terminal)

		Convey("Splitting at position 0 turns stop itself into the pivot", func() {
			err := splitCompressed(alloc, stop, 0, []byte("range"), 2)

			So(err, ShouldBeNil)
			So(stop.h.isCompr(), ShouldBeFalse)
			So(len(stop.edge), ShouldEqual, 2)

			oldSideIdx, ok := stop.findChildIndex('o')
			So(ok, ShouldBeTrue)
			oldSide := stop.children[oldSideIdx]
			So(oldSide.h.isCompr(), ShouldBeTrue)
			So(oldSide.edge, ShouldResemble, []byte("oter"))
			So(oldSide.children[0], ShouldEqual, terminal)

			newSideIdx, ok := stop.findChildIndex('r')
			So(ok, ShouldBeTrue)
			So(stop.children[newSideIdx].h.isKey(), ShouldBeFalse)
		})

		Convey("Splitting mid-edge keeps stop as the prefix and allocates a fresh pivot", func() {
			err := splitCompressed(alloc, stop, 2, []byte("xyz"), 2)

			So(err, ShouldBeNil)
			So(stop.h.isCompr(), ShouldBeTrue)
			So(stop.edge, ShouldResemble, []byte("oo"))
			So(len(stop.children), ShouldEqual, 1)

			pivot := stop.children[0]
			So(pivot.h.isCompr(), ShouldBeFalse)
			So(len(pivot.children), ShouldEqual, 2)
		})

		Convey("Splitting with an empty rest marks the pivot itself as the new key", func() {
			err := splitCompressed(alloc, stop, 3, nil, 9)

			So(err, ShouldBeNil)

			pivot := stop.children[0]
			So(pivot.h.isKey(), ShouldBeTrue)
			So(pivot.value, ShouldEqual, 9)
			So(len(pivot.children), ShouldEqual, 1)
		})
	})

	Convey("Given an allocator with no budget left", t, func() {
		heap := NewHeapAllocator[int]()
		stop, _ := newNode[int](heap, []byte("ooter"), true)
		terminal, _ := newNode[int](heap, nil, false)
		terminal.setKeyValue(1)
		stop.setSingleChild(terminal)

		alloc := NewBoundedAllocator[int](0)

		Convey("A split that needs any further node fails immediately and leaks nothing", func() {
			err := splitCompressed(alloc, stop, 2, nil, 2)

			So(IsAllocationFailure(err), ShouldBeTrue)
			So(alloc.InUse(), ShouldEqual, 0)
		})
	})
}

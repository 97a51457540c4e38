package rax

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLowWalkTermination(t *testing.T) {
	Convey("Given a tree of overlapping keys", t, func() {
		tr := New[int]()
		for i, k := range []string{"foo", "foobar", "footer"} {
			_, err := tr.Insert([]byte(k), i)
			So(err, ShouldBeNil)
		}

		Convey("Walking a key that fully matches a key node consumes it exactly", func() {
			w := lowWalk(tr.root, []byte("foo"), nil)

			So(w.consumed, ShouldEqual, 3)
			So(w.splitPos, ShouldEqual, 0)
			So(w.stop.h.isKey(), ShouldBeTrue)
		})

		Convey("Walking a key that diverges inside a compressed edge stops mid-edge", func() {
			w := lowWalk(tr.root, []byte("fox"), nil)

			So(w.stop.h.isCompr(), ShouldBeTrue)
			So(w.splitPos, ShouldBeGreaterThan, 0)
			So(w.splitPos, ShouldBeLessThan, len(w.stop.edge))
			So(w.consumed, ShouldBeLessThan, 3)
		})

		Convey("Walking a key that diverges at a non-compressed node's child set stops there with splitPos 0", func() {
			w := lowWalk(tr.root, []byte("foox"), nil)

			So(w.splitPos, ShouldEqual, 0)
			So(w.consumed, ShouldEqual, 3)
			So(w.stop.h.isCompr(), ShouldBeFalse)
		})

		Convey("Walking a key shorter than any stored key stops at end of input", func() {
			w := lowWalk(tr.root, []byte("fo"), nil)

			So(w.consumed, ShouldEqual, 2)
			So(w.stop.h.isKey(), ShouldBeFalse)
		})

		Convey("Walking the empty key stops immediately on the root", func() {
			w := lowWalk(tr.root, []byte{}, nil)

			So(w.consumed, ShouldEqual, 0)
			So(w.stop, ShouldEqual, tr.root)
		})
	})

	Convey("Given a path stack bounded to a single frame", t, func() {
		tr := New[int]()
		_, _ = tr.Insert([]byte("aa"), 1)
		_, _ = tr.Insert([]byte("ab"), 2)

		Convey("A walk deep enough to need a second frame reports oom", func() {
			stack := newBoundedPathStack[int](1)
			w := lowWalk(tr.root, []byte("aa"), stack)

			So(w.oom, ShouldBeTrue)
			So(stack.oomed(), ShouldBeTrue)
		})
	})
}

func TestPathStackSmallSizeOptimization(t *testing.T) {
	Convey("Given an unbounded path stack", t, func() {
		s := newPathStack[int]()

		Convey("Pushing up to the inline capacity never spills", func() {
			for i := 0; i < stackInline; i++ {
				So(s.push(frame[int]{index: i}), ShouldBeTrue)
			}
			So(s.overflow, ShouldBeNil)
			So(s.depth(), ShouldEqual, stackInline)

			Convey("Pushing one more spills onto the heap slice", func() {
				So(s.push(frame[int]{index: stackInline}), ShouldBeTrue)
				So(s.overflow, ShouldNotBeNil)
				So(s.depth(), ShouldEqual, stackInline+1)
			})
		})

		Convey("Popping returns frames in LIFO order", func() {
			for i := 0; i < 3; i++ {
				s.push(frame[int]{index: i})
			}
			f, ok := s.pop()
			So(ok, ShouldBeTrue)
			So(f.index, ShouldEqual, 2)

			f, ok = s.pop()
			So(ok, ShouldBeTrue)
			So(f.index, ShouldEqual, 1)
		})

		Convey("Popping an empty stack reports false", func() {
			_, ok := s.pop()
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a path stack bounded to two frames", t, func() {
		s := newBoundedPathStack[int](2)

		So(s.push(frame[int]{index: 0}), ShouldBeTrue)
		So(s.push(frame[int]{index: 1}), ShouldBeTrue)

		Convey("A third push fails and sets the sticky oom flag", func() {
			So(s.push(frame[int]{index: 2}), ShouldBeFalse)
			So(s.oomed(), ShouldBeTrue)
			So(s.depth(), ShouldEqual, 2)
		})
	})
}

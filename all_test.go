//go:build go1.23

package rax_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/rax"
	"github.com/flier/rax/pkg/xiter/inspect"
)

func TestTreeAllTraced(t *testing.T) {
	Convey("Given a tree with a few keys", t, func() {
		tr := rax.New[int]()

		_, _ = tr.Insert([]byte("bar"), 1)
		_, _ = tr.Insert([]byte("foo"), 2)
		_, _ = tr.Insert([]byte("foobar"), 3)

		Convey("AllTraced yields the same pairs as All", func() {
			var keys []string

			for k, v := range tr.AllTraced() {
				keys = append(keys, string(k))
				So(v, ShouldNotBeNil)
			}

			So(keys, ShouldResemble, []string{"bar", "foo", "foobar"})
		})

		Convey("AllTraced writes a trace line to the configured writer", func() {
			var buf bytes.Buffer

			for range tr.AllTraced(inspect.Writer(&buf), inspect.Label("keys")) {
			}

			So(buf.String(), ShouldStartWith, "keys: [")
			So(strings.TrimSpace(buf.String()), ShouldEndWith, "]")
		})

		Convey("AllTraced honors Limit by truncating the trace, not the sequence", func() {
			var buf bytes.Buffer
			var keys []string

			for k := range tr.AllTraced(inspect.Writer(&buf), inspect.Limit(1)) {
				keys = append(keys, string(k))
			}

			So(keys, ShouldResemble, []string{"bar", "foo", "foobar"})
			So(buf.String(), ShouldContainSubstring, "...")
		})
	})
}

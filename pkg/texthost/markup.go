package texthost

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/valyala/quicktemplate"
)

// StreamMarkup writes nodes as compact markup. Attributes are sorted by name
// and func-valued attributes (event handlers) are left out.
func StreamMarkup(qw *quicktemplate.Writer, nodes []*hooks.HostNode) {
	for _, n := range nodes {
		streamNode(qw, n)
	}
}

func streamNode(qw *quicktemplate.Writer, n *hooks.HostNode) {
	if n.Tag == "" {
		qw.E().S(n.Text)
		return
	}
	qw.N().S("<")
	qw.N().S(n.Tag)
	for _, name := range attrNames(n.Attrs) {
		v := n.Attrs[name]
		if v == nil || reflect.TypeOf(v).Kind() == reflect.Func {
			continue
		}
		qw.N().S(" ")
		qw.N().S(name)
		qw.N().S(`="`)
		streamAttr(qw, v)
		qw.N().S(`"`)
	}
	qw.N().S(">")
	StreamMarkup(qw, n.Children)
	qw.N().S("</")
	qw.N().S(n.Tag)
	qw.N().S(">")
}

func streamAttr(qw *quicktemplate.Writer, v any) {
	switch v := v.(type) {
	case string:
		qw.E().S(v)
	case int:
		qw.N().D(v)
	case bool:
		qw.N().S(strconv.FormatBool(v))
	case fmt.Stringer:
		qw.E().S(v.String())
	default:
		qw.E().V(v)
	}
}

func attrNames(attrs hooks.Attrs) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WriteMarkup writes nodes as markup to w.
func WriteMarkup(w io.Writer, nodes []*hooks.HostNode) {
	qw := quicktemplate.AcquireWriter(w)
	StreamMarkup(qw, nodes)
	quicktemplate.ReleaseWriter(qw)
}

// Markup returns nodes as markup.
func Markup(nodes []*hooks.HostNode) string {
	bb := quicktemplate.AcquireByteBuffer()
	WriteMarkup(bb, nodes)
	s := string(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return s
}

package hooks

import "strconv"

// Node is anything a render function can return: a host element, text, a
// component element, a context provider, a fragment, or nil for nothing.
type Node interface {
	isNode()
}

// Attrs are host element attributes. Values are passed to the host as-is,
// including event handler funcs.
type Attrs map[string]any

// HostElement describes a node the host knows how to display.
type HostElement struct {
	Tag      string
	Attrs    Attrs
	Children []Node
	Key      string
	// Ref receives the committed HostNode before layout effects run and nil
	// once the node is removed.
	Ref *Ref[*HostNode]
}

func (*HostElement) isNode() {}

// H builds a host element.
func H(tag string, attrs Attrs, children ...Node) *HostElement {
	return &HostElement{Tag: tag, Attrs: attrs, Children: children}
}

// WithKey sets the reconciliation key and returns h.
func (h *HostElement) WithKey(key string) *HostElement {
	h.Key = key
	return h
}

// WithRef attaches ref and returns h.
func (h *HostElement) WithRef(ref *Ref[*HostNode]) *HostElement {
	h.Ref = ref
	return h
}

// Text is a text node.
type Text string

func (Text) isNode() {}

// Textf is Text for an integer, the most common case in counters.
func Textf(n int) Text {
	return Text(strconv.Itoa(n))
}

type fragment []Node

func (fragment) isNode() {}

// Fragment groups children without a host node of its own.
func Fragment(children ...Node) Node {
	return fragment(children)
}

// Element is a component occurrence in a tree: the component, its props and
// optional key and ref.
type Element struct {
	typ   componentType
	props any
	key   string
	ref   any
}

func (*Element) isNode() {}

// Key returns the element's key, empty when unkeyed.
func (e *Element) Key() string {
	return e.key
}

type ElementOption func(*Element)

// WithKey gives the element an explicit reconciliation key.
func WithKey(key string) ElementOption {
	return func(e *Element) {
		e.key = key
	}
}

// WithRef hands ref to the component. Only ForwardRef components receive it.
func WithRef[T any](ref *Ref[T]) ElementOption {
	return func(e *Element) {
		e.ref = ref
	}
}

// HostNode is a committed host node. Nodes keep their identity for as long
// as the fiber that produced them stays mounted; their fields are updated in
// place on every commit.
type HostNode struct {
	// Tag is empty for text nodes.
	Tag      string
	Text     string
	Attrs    Attrs
	Children []*HostNode
}

// Host receives committed trees. It stands for the painting layer the
// runtime does not implement.
type Host interface {
	Commit(nodes []*HostNode) (Surface, error)
}

// Surface is a committed tree the host has not necessarily shown yet.
type Surface interface {
	Present() error
}

// visit calls fn for each flattened child with its implicit key. Nil slots
// keep their index so conditional children do not shift their siblings.
func visit(nodes []Node, prefix string, fn func(n Node, implicit string)) {
	for i, n := range nodes {
		key := prefix + strconv.Itoa(i)
		switch n := n.(type) {
		case nil:
			continue
		case fragment:
			visit(n, key+".", fn)
		case *Element:
			if n != nil {
				fn(n, key)
			}
		case *HostElement:
			if n != nil {
				fn(n, key)
			}
		case *providerElement:
			if n != nil {
				fn(n, key)
			}
		default:
			fn(n, key)
		}
	}
}

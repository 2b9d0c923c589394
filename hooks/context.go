package hooks

import (
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
)

var contextSeq atomic.Uint64

// Context is a value looked up by the nearest enclosing Provider.
type Context[T any] struct {
	id   uint64
	name string
	def  T
}

// CreateContext creates a context whose consumers see def when no provider
// encloses them.
func CreateContext[T any](name string, def T) *Context[T] {
	return &Context[T]{
		id:   contextSeq.Add(1),
		name: name,
		def:  def,
	}
}

func (ctx *Context[T]) Name() string {
	return ctx.name
}

// Default returns the value consumers see without a provider.
func (ctx *Context[T]) Default() T {
	return ctx.def
}

// Provider makes value the context's value for children. When a later
// render provides a value that is not Same as the previous one, every
// consumer below re-renders, including those under a Memo that skipped.
func (ctx *Context[T]) Provider(value T, children ...Node) Node {
	return &providerElement{
		id:       ctx.id,
		name:     ctx.name,
		value:    value,
		children: children,
	}
}

type providerElement struct {
	id       uint64
	name     string
	value    any
	children []Node
}

func (*providerElement) isNode() {}

// provider is the mounted side of a providerElement.
type provider struct {
	id        uint64
	name      string
	value     any
	consumers mapset.Set[*Instance]
}

func newProvider(el *providerElement) *provider {
	return &provider{
		id:        el.id,
		name:      el.name,
		value:     el.value,
		consumers: mapset.NewThreadUnsafeSet[*Instance](),
	}
}

// binding is a provider pushed on the root's binding stack while its subtree
// renders.
type binding struct {
	id       uint64
	provider *provider
}

type contextCell struct {
	provider *provider
}

// UseContext returns the value of the nearest enclosing provider of ctx,
// or its default, and subscribes the instance to that provider.
func UseContext[T any](c *Ctx, ctx *Context[T]) T {
	const op = "hooks.UseContext"
	cl, first := c.next(op, cellContext)
	if first {
		cl.data = &contextCell{}
	}
	cc := payload[*contextCell](c, op, cl)

	p := c.inst.root.lookup(ctx.id)
	if cc.provider != p {
		if cc.provider != nil {
			cc.provider.consumers.Remove(c.inst)
		}
		if p != nil {
			p.consumers.Add(c.inst)
		}
		cc.provider = p
	}
	if p == nil {
		return ctx.def
	}
	v, ok := p.value.(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}

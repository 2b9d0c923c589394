package hooks

// RenderFunc renders a component's props into a tree.
type RenderFunc[P any] func(c *Ctx, props P) Node

type componentType interface {
	componentName() string
	call(c *Ctx, props any, ref any) Node
	skip(prev, next any) bool
	forwardsRef() bool
}

// Component is a render function with a name. Compare components by
// pointer: two Define calls with the same function are different types.
type Component[P any] struct {
	name    string
	render  func(c *Ctx, props P, ref any) Node
	memo    bool
	compare func(prev, next P) bool
	forward bool
}

// Define creates a component.
func Define[P any](name string, fn RenderFunc[P]) *Component[P] {
	return &Component[P]{
		name: name,
		render: func(c *Ctx, props P, _ any) Node {
			return fn(c, props)
		},
	}
}

// ForwardRef creates a component that receives the ref its parent attached
// with WithRef. ref is nil when the parent attached none.
func ForwardRef[P, R any](name string, fn func(c *Ctx, props P, ref *Ref[R]) Node) *Component[P] {
	return &Component[P]{
		name:    name,
		forward: true,
		render: func(c *Ctx, props P, ref any) Node {
			r, _ := ref.(*Ref[R])
			return fn(c, props, r)
		},
	}
}

// Memo wraps comp so that a re-render of the parent skips it when the new
// props compare equal to the previous ones. A nil compare means Same, i.e.
// field-by-field identity. compare reports whether the props are equal;
// a compare that always returns true freezes the instance against prop
// changes, though its own state and context updates still render.
func Memo[P any](comp *Component[P], compare func(prev, next P) bool) *Component[P] {
	if compare == nil {
		compare = func(prev, next P) bool {
			return Same(prev, next)
		}
	}
	return &Component[P]{
		name:    comp.name,
		render:  comp.render,
		memo:    true,
		compare: compare,
		forward: comp.forward,
	}
}

// El creates an element of this component.
func (comp *Component[P]) El(props P, opts ...ElementOption) *Element {
	e := &Element{typ: comp, props: props}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (comp *Component[P]) Name() string {
	return comp.name
}

func (comp *Component[P]) componentName() string {
	return comp.name
}

func (comp *Component[P]) call(c *Ctx, props any, ref any) Node {
	p, _ := props.(P)
	return comp.render(c, p, ref)
}

func (comp *Component[P]) skip(prev, next any) bool {
	if !comp.memo {
		return false
	}
	p, ok := prev.(P)
	if !ok {
		return false
	}
	n, ok := next.(P)
	if !ok {
		return false
	}
	return comp.compare(p, n)
}

func (comp *Component[P]) forwardsRef() bool {
	return comp.forward
}

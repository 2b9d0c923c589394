package hooks

import (
	"maps"

	"github.com/delaneyj/hookparty/pkg/observability"
)

// reconcileChildren matches nodes against the children of parent by key and
// type. Matches are updated in place, the rest are mounted; old children left
// unmatched are queued for deletion at the next commit.
func (r *Root) reconcileChildren(parent *fiber, nodes []Node) {
	old := make(map[string]*fiber, len(parent.children))
	for _, f := range parent.children {
		if _, dup := old[f.key]; !dup {
			old[f.key] = f
		}
	}
	matched := make(map[*fiber]struct{}, len(parent.children))

	children := make([]*fiber, 0, len(nodes))
	visit(nodes, "", func(n Node, implicit string) {
		key := childKey(n, implicit)
		if f, ok := old[key]; ok && compatible(f, n) {
			if _, used := matched[f]; !used {
				matched[f] = struct{}{}
				r.updateFiber(f, n)
				children = append(children, f)
				return
			}
		}
		if f := r.mountFiber(parent, key, n); f != nil {
			children = append(children, f)
		}
	})

	for _, f := range parent.children {
		if _, ok := matched[f]; !ok {
			r.deleteFiber(f)
		}
	}
	parent.children = children
}

func childKey(n Node, implicit string) string {
	var key string
	switch n := n.(type) {
	case *Element:
		key = n.key
	case *HostElement:
		key = n.Key
	}
	if key != "" {
		return "k:" + key
	}
	return "#" + implicit
}

func compatible(f *fiber, n Node) bool {
	switch n := n.(type) {
	case *Element:
		return f.kind == fiberComponent && f.inst.comp == n.typ
	case *HostElement:
		return f.kind == fiberHost && f.node.Tag == n.Tag
	case Text:
		return f.kind == fiberText
	case *providerElement:
		return f.kind == fiberProvider && f.provider.id == n.id
	default:
		return false
	}
}

func (r *Root) mountFiber(parent *fiber, key string, n Node) *fiber {
	f := &fiber{key: key, depth: parent.depth + 1, parent: parent}
	switch n := n.(type) {
	case *Element:
		r.nextID++
		inst := &Instance{
			id:    r.nextID,
			root:  r,
			fiber: f,
			comp:  n.typ,
			props: n.props,
			ref:   n.ref,
		}
		inst.ctx.inst = inst
		f.kind = fiberComponent
		f.inst = inst
		r.checkRef(inst)
		r.renderComponent(inst)
	case *HostElement:
		f.kind = fiberHost
		f.node = &HostNode{Tag: n.Tag, Attrs: cloneAttrs(n.Attrs)}
		r.setHostRef(f, n.Ref)
		r.reconcileChildren(f, n.Children)
	case Text:
		f.kind = fiberText
		f.node = &HostNode{Text: string(n)}
	case *providerElement:
		f.kind = fiberProvider
		f.provider = newProvider(n)
		r.withBinding(f.provider, func() {
			r.reconcileChildren(f, n.children)
		})
	default:
		return nil
	}
	return f
}

func (r *Root) updateFiber(f *fiber, n Node) {
	switch n := n.(type) {
	case *Element:
		r.updateComponent(f.inst, n)
	case *HostElement:
		f.node.Attrs = cloneAttrs(n.Attrs)
		r.setHostRef(f, n.Ref)
		r.reconcileChildren(f, n.Children)
	case Text:
		f.node.Text = string(n)
	case *providerElement:
		p := f.provider
		if !Same(p.value, n.value) {
			p.value = n.value
			p.consumers.Each(func(inst *Instance) bool {
				r.scheduleWork(inst)
				return false
			})
		}
		r.withBinding(p, func() {
			r.reconcileChildren(f, n.children)
		})
	}
}

// updateComponent renders inst with the element's props, unless it is a
// Memo instance with nothing to do: not dirty, equal props, same ref.
func (r *Root) updateComponent(inst *Instance, el *Element) {
	if inst.broken {
		return
	}
	if !inst.dirty && inst.comp.skip(inst.props, el.props) && Same(inst.ref, el.ref) {
		r.emit(EventSkip, observability.LevelRender, inst.name(), map[string]any{
			"instance":   inst.id,
			"generation": inst.generation,
		})
		return
	}
	inst.props = el.props
	inst.ref = el.ref
	r.checkRef(inst)
	r.renderComponent(inst)
}

func (r *Root) checkRef(inst *Instance) {
	if inst.ref == nil || inst.comp.forwardsRef() {
		return
	}
	r.emit(EventRefIgnored, observability.LevelWarn, inst.name(), map[string]any{
		"instance": inst.id,
	})
}

// deleteFiber marks the subtree dead right away, so updates sent to it are
// dropped, and leaves the cleanups to the commit.
func (r *Root) deleteFiber(f *fiber) {
	markDead(r, f)
	r.deletions = append(r.deletions, f)
}

func markDead(r *Root, f *fiber) {
	if inst := f.inst; inst != nil {
		inst.dead = true
		if inst.dirty {
			inst.dirty = false
			r.dirty.Remove(inst)
		}
	}
	for _, child := range f.children {
		markDead(r, child)
	}
}

// setHostRef attaches ref to the host node of f once the commit reaches the
// host. A replaced ref is cleared if it still points at the node.
func (r *Root) setHostRef(f *fiber, ref *Ref[*HostNode]) {
	if f.ref == ref {
		return
	}
	prev := f.ref
	f.ref = ref
	node := f.node
	r.refOps = append(r.refOps, func() {
		if prev != nil && prev.Current == node {
			prev.Current = nil
		}
		if ref != nil {
			ref.Current = node
		}
	})
}

// collect appends the host nodes below f, descending through components
// and providers, and rebuilds the children of every host node on the way.
func collect(f *fiber, out []*HostNode) []*HostNode {
	for _, child := range f.children {
		switch child.kind {
		case fiberHost:
			child.node.Children = collect(child, nil)
			out = append(out, child.node)
		case fiberText:
			out = append(out, child.node)
		default:
			out = collect(child, out)
		}
	}
	return out
}

func cloneAttrs(attrs Attrs) Attrs {
	if attrs == nil {
		return nil
	}
	return maps.Clone(attrs)
}

// bindingsFor rebuilds the provider stack seen by the children of f.
func (r *Root) bindingsFor(f *fiber) []binding {
	var stack []binding
	for p := f.parent; p != nil; p = p.parent {
		if p.kind == fiberProvider {
			stack = append(stack, binding{id: p.provider.id, provider: p.provider})
		}
	}
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack
}

func (r *Root) lookup(id uint64) *provider {
	for i := len(r.bindings) - 1; i >= 0; i-- {
		if r.bindings[i].id == id {
			return r.bindings[i].provider
		}
	}
	return nil
}

func (r *Root) withBinding(p *provider, fn func()) {
	r.bindings = append(r.bindings, binding{id: p.id, provider: p})
	fn()
	r.bindings = r.bindings[:len(r.bindings)-1]
}

package hooks

// Ref is a mutable box. Writing Current never schedules a render.
type Ref[T any] struct {
	Current T
}

// NewRef creates a ref outside of any instance, e.g. for a root element.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{Current: initial}
}

// UseRef returns the instance's ref for this slot. The pointer is the same
// for the instance's whole lifetime; initial only matters on the first
// render.
func UseRef[T any](c *Ctx, initial T) *Ref[T] {
	const op = "hooks.UseRef"
	cl, first := c.next(op, cellRef)
	if first {
		cl.data = &Ref[T]{Current: initial}
	}
	return payload[*Ref[T]](c, op, cl)
}

// UseImperativeHandle publishes factory's result on a ref owned by an
// ancestor, usually the one a ForwardRef component received. factory runs
// in the layout phase under UseMemo's rule; the ref goes back to the zero
// value when deps change or the instance unmounts. The parent only ever
// sees what factory returns.
func UseImperativeHandle[T any](c *Ctx, ref *Ref[T], factory func() T, deps Deps) {
	if deps != nil {
		deps = append(append(make(Deps, 0, len(deps)+1), deps...), ref)
	}
	useEffect(c, "hooks.UseImperativeHandle", phaseLayout, func() Cleanup {
		if ref == nil {
			return nil
		}
		ref.Current = factory()
		return func() {
			var zero T
			ref.Current = zero
		}
	}, deps)
}

package hooks

type memoCell[T any] struct {
	deps  Deps
	value T
}

// UseMemo returns factory's result, computing it again only when deps is nil
// or not Same as on the previous render. Otherwise the previous result is
// returned unchanged.
func UseMemo[T any](c *Ctx, factory func() T, deps Deps) T {
	return useMemo(c, "hooks.UseMemo", factory, deps)
}

// UseCallback memoizes fn itself: while deps stay the same, the function
// value from the render that last changed them is returned, so Memo
// children receiving it keep skipping.
func UseCallback[F any](c *Ctx, fn F, deps Deps) F {
	return useMemo(c, "hooks.UseCallback", func() F { return fn }, deps)
}

func useMemo[T any](c *Ctx, op string, factory func() T, deps Deps) T {
	cl, first := c.next(op, cellMemo)
	if first {
		m := &memoCell[T]{value: factory(), deps: deps}
		cl.data = m
		return m.value
	}
	m := payload[*memoCell[T]](c, op, cl)
	if depsChanged(m.deps, deps) {
		m.value = factory()
		m.deps = deps
	}
	return m.value
}

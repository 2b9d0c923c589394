package hooks

import "github.com/delaneyj/hookparty/pkg/observability"

// valueCell is the storage shared by state and reducer cells.
type valueCell[S any] struct {
	inst    *Instance
	value   S
	version uint64
}

// store keeps next and schedules the instance, unless next is the same as
// the stored value.
func (v *valueCell[S]) store(next S) {
	if v.inst.dead {
		v.drop()
		return
	}
	if Same(v.value, next) {
		return
	}
	v.value = next
	v.version++
	v.inst.root.scheduleWork(v.inst)
}

// drop records an update addressed to an unmounted instance.
func (v *valueCell[S]) drop() {
	v.inst.root.emit(EventUpdateDropped, observability.LevelCommit, v.inst.name(), map[string]any{
		"instance": v.inst.id,
	})
}

// Setter updates a state cell. The pointer returned by UseState is the same
// on every render of the instance.
type Setter[T any] struct {
	cell *valueCell[T]
}

// Set stores next. Same values schedule nothing.
func (s *Setter[T]) Set(next T) {
	s.cell.store(next)
}

// Update stores fn applied to the latest stored value, which includes
// updates made earlier in the same batch.
func (s *Setter[T]) Update(fn func(prev T) T) {
	s.cell.store(fn(s.cell.value))
}

// UseState returns the current value of a state cell and its setter.
func UseState[T any](c *Ctx, initial T) (T, *Setter[T]) {
	return useState(c, "hooks.UseState", func() T { return initial })
}

// UseStateFunc is UseState with a lazily computed initial value: init runs
// once, on the first render.
func UseStateFunc[T any](c *Ctx, init func() T) (T, *Setter[T]) {
	return useState(c, "hooks.UseStateFunc", init)
}

type stateCell[T any] struct {
	valueCell[T]
	setter *Setter[T]
}

func useState[T any](c *Ctx, op string, init func() T) (T, *Setter[T]) {
	cl, first := c.next(op, cellState)
	if first {
		s := &stateCell[T]{valueCell: valueCell[T]{inst: c.inst, value: init()}}
		s.setter = &Setter[T]{cell: &s.valueCell}
		cl.data = s
	}
	s := payload[*stateCell[T]](c, op, cl)
	return s.value, s.setter
}

package hooks

import "fmt"

// Reducer computes the next state for an action. A returned error leaves
// the state unchanged and comes back from Dispatch.
type Reducer[S, A any] func(state S, action A) (S, error)

// Dispatcher sends actions to a reducer cell. The pointer is the same on
// every render of the instance.
type Dispatcher[A any] struct {
	dispatch func(A) error
}

// Dispatch runs the reducer synchronously against the latest state. A
// reducer error or panic is returned as a *Fault of KindReducer, also
// reported to the error handler, and nothing is scheduled. A result that is Same as the current state schedules
// nothing either.
func (d *Dispatcher[A]) Dispatch(action A) error {
	return d.dispatch(action)
}

type reducerCell[S, A any] struct {
	valueCell[S]
	reducer    Reducer[S, A]
	dispatcher *Dispatcher[A]
}

func (rc *reducerCell[S, A]) dispatch(action A) error {
	if rc.inst.dead {
		rc.drop()
		return nil
	}
	next, f := rc.reduce(action)
	if f != nil {
		rc.inst.root.report(f)
		return f
	}
	rc.store(next)
	return nil
}

// reduce recovers panics of the reducer call only. Panics from the render
// pass that store may start propagate to the caller of Dispatch.
func (rc *reducerCell[S, A]) reduce(action A) (next S, f *Fault) {
	defer func() {
		if r := recover(); r != nil {
			f = faultFromPanic("hooks.Dispatch", KindReducer, rc.inst.name(), ErrReducer, r)
		}
	}()
	next, err := rc.reducer(rc.value, action)
	if err != nil {
		return next, newFault("hooks.Dispatch", KindReducer, rc.inst.name(), fmt.Errorf("%w: %w", ErrReducer, err))
	}
	return next, nil
}

// UseReducer returns the current state of a reducer cell and its
// dispatcher. The reducer given on the latest render is the one Dispatch
// uses.
func UseReducer[S, A any](c *Ctx, reducer Reducer[S, A], initial S) (S, *Dispatcher[A]) {
	return useReducer(c, "hooks.UseReducer", reducer, func() S { return initial })
}

// UseReducerInit is UseReducer whose first state is init(initialArg).
func UseReducerInit[S, A, I any](c *Ctx, reducer Reducer[S, A], initialArg I, init func(I) S) (S, *Dispatcher[A]) {
	return useReducer(c, "hooks.UseReducerInit", reducer, func() S { return init(initialArg) })
}

func useReducer[S, A any](c *Ctx, op string, reducer Reducer[S, A], init func() S) (S, *Dispatcher[A]) {
	cl, first := c.next(op, cellReducer)
	if first {
		rc := &reducerCell[S, A]{valueCell: valueCell[S]{inst: c.inst, value: init()}}
		rc.dispatcher = &Dispatcher[A]{dispatch: rc.dispatch}
		cl.data = rc
	}
	rc := payload[*reducerCell[S, A]](c, op, cl)
	rc.reducer = reducer
	return rc.value, rc.dispatcher
}

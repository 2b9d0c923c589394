package hooks

import "fmt"

type cellKind uint8

const (
	cellState cellKind = iota
	cellReducer
	cellContext
	cellEffect
	cellMemo
	cellRef
)

func (k cellKind) String() string {
	switch k {
	case cellState:
		return "state"
	case cellReducer:
		return "reducer"
	case cellContext:
		return "context"
	case cellEffect:
		return "effect"
	case cellMemo:
		return "memo"
	case cellRef:
		return "ref"
	default:
		return "unknown"
	}
}

// cell is one hook slot. data holds the typed payload, e.g. *stateCell[int].
type cell struct {
	kind cellKind
	data any
}

// Ctx is the cell store cursor of one instance. The runtime hands it to the
// render function; hooks must only be called through it while that render
// function is running.
type Ctx struct {
	inst   *Instance
	cursor int
	active bool
}

// Dispatch queues fn on the owning root's task loop. It is safe to call from
// any goroutine, which makes it the way timers and network callbacks
// started in effects get back to the root.
func (c *Ctx) Dispatch(fn func()) {
	c.inst.root.Dispatch(fn)
}

// Name returns the name of the component being rendered.
func (c *Ctx) Name() string {
	return c.inst.name()
}

func (c *Ctx) begin() {
	c.cursor = 0
	c.active = true
}

// end checks the cursor against the recorded cell count. The first
// successful render fixes the shape of the instance.
func (c *Ctx) end() {
	c.active = false
	inst := c.inst
	if !inst.shaped {
		inst.shaped = true
		return
	}
	if c.cursor != len(inst.cells) {
		panic(c.orderFault("hooks.endRender", fmt.Errorf(
			"%w: rendered %d hooks, previous renders used %d", ErrHookOrder, c.cursor, len(inst.cells))))
	}
}

// next consumes the cell at the cursor, creating it on the first render.
func (c *Ctx) next(op string, kind cellKind) (cl *cell, first bool) {
	if c == nil || !c.active {
		panic(&Fault{Op: op, Kind: KindHookOrder, Err: ErrNotRendering})
	}
	inst := c.inst
	if c.cursor < len(inst.cells) {
		cl = inst.cells[c.cursor]
		if cl.kind != kind {
			panic(c.orderFault(op, fmt.Errorf(
				"%w: hook %d was %s on the first render, now %s", ErrHookOrder, c.cursor, cl.kind, kind)))
		}
		c.cursor++
		return cl, false
	}
	if inst.shaped {
		panic(c.orderFault(op, fmt.Errorf(
			"%w: rendered more hooks than the %d of previous renders", ErrHookOrder, len(inst.cells))))
	}
	cl = &cell{kind: kind}
	inst.cells = append(inst.cells, cl)
	c.cursor++
	return cl, true
}

func (c *Ctx) orderFault(op string, err error) *Fault {
	return newFault(op, KindHookOrder, c.inst.name(), err)
}

// payload returns the typed data of cl. A different type in a slot of the
// right kind is an order violation too: another hook of the same kind was
// called in its place.
func payload[T any](c *Ctx, op string, cl *cell) T {
	v, ok := cl.data.(T)
	if !ok {
		var want T
		panic(c.orderFault(op, fmt.Errorf(
			"%w: hook %d holds %T, asked for %T", ErrHookOrder, c.cursor-1, cl.data, want)))
	}
	return v
}

package hooks

import "fmt"

// Cleanup undoes an effect. A nil Cleanup means there is nothing to undo.
type Cleanup func()

// EffectFunc is an effect body. It runs after a commit and returns the
// cleanup to run before its next run and at unmount.
type EffectFunc func() Cleanup

type effectPhase uint8

const (
	phasePassive effectPhase = iota
	phaseLayout
)

func (p effectPhase) String() string {
	if p == phaseLayout {
		return "layout"
	}
	return "passive"
}

type effectCell struct {
	slot  int
	phase effectPhase

	// committed side
	lastDeps Deps
	cleanup  Cleanup
	ran      bool

	// set by the latest render, consumed by the flush
	pending  bool
	fn       EffectFunc
	nextDeps Deps
}

// UseEffect schedules fn to run after the tree is presented: after the first
// render, and after every render whose deps are not Same as those of the
// last run. Passive effects never delay the commit.
func UseEffect(c *Ctx, fn EffectFunc, deps Deps) {
	useEffect(c, "hooks.UseEffect", phasePassive, fn, deps)
}

// UseLayoutEffect is UseEffect run synchronously after the host received
// the commit and before the surface is presented. State updates made by a
// layout effect are rendered and committed before presenting.
func UseLayoutEffect(c *Ctx, fn EffectFunc, deps Deps) {
	useEffect(c, "hooks.UseLayoutEffect", phaseLayout, fn, deps)
}

func useEffect(c *Ctx, op string, phase effectPhase, fn EffectFunc, deps Deps) {
	cl, first := c.next(op, cellEffect)
	if first {
		e := &effectCell{slot: c.cursor - 1, phase: phase}
		cl.data = e
		c.inst.effects = append(c.inst.effects, e)
	}
	e := payload[*effectCell](c, op, cl)
	if e.phase != phase {
		panic(c.orderFault(op, errPhaseMismatch(e.slot, e.phase, phase)))
	}
	e.fn = fn
	e.nextDeps = deps
	e.pending = !e.ran || depsChanged(e.lastDeps, deps)
}

func errPhaseMismatch(slot int, was, now effectPhase) error {
	return fmt.Errorf("%w: effect %d was a %s effect on the first render, now %s", ErrHookOrder, slot, was, now)
}

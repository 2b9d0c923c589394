package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/hookparty/pkg/observability"
	"github.com/google/uuid"
)

const (
	EventRender        observability.EventType = "hooks.render"
	EventSkip          observability.EventType = "hooks.skip"
	EventCommit        observability.EventType = "hooks.commit"
	EventPresent       observability.EventType = "hooks.present"
	EventEffectRun     observability.EventType = "hooks.effect.run"
	EventEffectCleanup observability.EventType = "hooks.effect.cleanup"
	EventUnmount       observability.EventType = "hooks.unmount"
	EventFault         observability.EventType = "hooks.fault"
	EventUpdateDropped observability.EventType = "hooks.update.dropped"
	EventRefIgnored    observability.EventType = "hooks.ref.ignored"
)

const (
	defaultNestedUpdateLimit = 50
	renderPhaseUpdateLimit   = 25
	maxFlushRounds           = 1000
)

// Root owns a tree of instances and schedules their renders and effects.
//
// A Root is not safe for concurrent use. Dispatch is the exception: it may
// be called from any goroutine and queues work for Run or Flush.
type Root struct {
	id       uuid.UUID
	idString string
	ctx      context.Context
	host     Host
	observer observability.Observer
	onFault  ErrorHandler
	logger   *slog.Logger

	nestedLimit int

	container *fiber
	pending   Node
	rootDirty bool
	closed    bool

	dirty      mapset.Set[*Instance]
	batchDepth int
	working    bool
	nextID     uint64

	bindings     []binding
	deletions    []*fiber
	refOps       []func()
	layoutQueue  []*Instance
	passiveQueue []*Instance
	passiveTask  bool

	committed Surface
	presented Surface
	faults    []error

	tasks *taskQueue
}

// NewRoot creates a root committing to host.
func NewRoot(host Host, opts ...Option) *Root {
	id := uuid.New()
	r := &Root{
		id:          id,
		idString:    id.String(),
		ctx:         context.Background(),
		host:        host,
		observer:    observability.NoOpObserver{},
		logger:      slog.Default(),
		nestedLimit: defaultNestedUpdateLimit,
		container:   &fiber{kind: fiberRoot},
		dirty:       mapset.NewThreadUnsafeSet[*Instance](),
		tasks:       newTaskQueue(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.onFault == nil {
		r.onFault = r.logFault
	}
	return r
}

// ID identifies the root in every event it emits.
func (r *Root) ID() uuid.UUID {
	return r.id
}

// Surface returns the last presented surface, nil before the first commit.
func (r *Root) Surface() Surface {
	return r.presented
}

// Render makes node the root's tree. Outside a batch the tree is rendered,
// committed and presented before Render returns; passive effects are
// queued for the next Flush or Run.
func (r *Root) Render(node Node) error {
	if r.closed {
		return ErrUnmounted
	}
	r.pending = node
	r.rootDirty = true
	if r.batchDepth > 0 || r.working {
		return nil
	}
	return r.performWork()
}

// Unmount removes the whole tree: every effect cleanup runs once, children
// before parents. The root refuses further renders.
func (r *Root) Unmount() error {
	if r.closed {
		return nil
	}
	err := r.Render(nil)
	r.closed = true
	r.passiveQueue = nil
	return err
}

// Batch runs fn and renders the updates it made once, when the outermost
// batch returns. Event handlers should run inside a batch so that several
// updates produce a single render.
func (r *Root) Batch(fn func()) error {
	r.batchDepth++
	func() {
		defer func() { r.batchDepth-- }()
		fn()
	}()
	if r.batchDepth > 0 || r.working {
		return nil
	}
	return r.performWork()
}

// Pending reports how many tasks are queued, passive effect flushes
// included.
func (r *Root) Pending() int {
	return r.tasks.len()
}

// Dispatch queues fn to run as its own batch on the root's goroutine. It is
// safe for concurrent use.
func (r *Root) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	r.tasks.push(fn)
}

// Flush runs queued tasks, including passive effect flushes, until the
// queue is empty. It returns the faults of the work it did.
func (r *Root) Flush() error {
	var errs []error
	for round := 0; ; round++ {
		tasks := r.tasks.take()
		if len(tasks) == 0 {
			break
		}
		if round >= maxFlushRounds {
			r.tasks.pushFront(tasks)
			r.fault(newFault("hooks.Flush", KindRender, "", fmt.Errorf(
				"%w: task queue still busy after %d rounds", ErrTooManyRenders, maxFlushRounds)))
			errs = append(errs, r.takeFaults())
			break
		}
		for _, task := range tasks {
			if err := r.Batch(task); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Run drains the task queue until ctx is done. Faults go to the error
// handler.
func (r *Root) Run(ctx context.Context) error {
	r.ctx = ctx
	for {
		_ = r.Flush()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.tasks.wake:
		}
	}
}

func (r *Root) hasWork() bool {
	return r.rootDirty || r.dirty.Cardinality() > 0
}

// scheduleWork marks inst dirty. Outside a batch, render or flush the work
// runs immediately.
func (r *Root) scheduleWork(inst *Instance) {
	if inst.dead || inst.broken || r.closed {
		return
	}
	if inst.rendering {
		inst.renderAgain = true
		return
	}
	if !inst.dirty {
		inst.dirty = true
		r.dirty.Add(inst)
	}
	if r.batchDepth > 0 || r.working {
		return
	}
	// faults already went to the error handler
	_ = r.performWork()
}

// performWork flushes passive effects left over from the previous pass,
// then renders, commits and presents everything dirty.
func (r *Root) performWork() error {
	if !r.hasWork() {
		return r.takeFaults()
	}
	r.working = true
	defer func() { r.working = false }()

	r.flushPassive()
	if r.hasWork() {
		r.renderPass()
	}
	return r.takeFaults()
}

func (r *Root) renderPass() {
	for nested := 0; ; nested++ {
		r.renderDirty()
		r.commit()
		if !r.hasWork() {
			break
		}
		if nested+1 >= r.nestedLimit {
			r.abandonDirty()
			break
		}
	}
	r.present()
	r.postPassive()
}

func (r *Root) renderDirty() {
	if r.rootDirty {
		r.rootDirty = false
		r.bindings = r.bindings[:0]
		r.reconcileChildren(r.container, []Node{r.pending})
	}
	for {
		inst := r.nextDirty()
		if inst == nil {
			return
		}
		r.bindings = r.bindingsFor(inst.fiber)
		r.renderComponent(inst)
	}
}

// nextDirty picks the shallowest dirty instance so that an ancestor renders
// before its descendants.
func (r *Root) nextDirty() *Instance {
	var next *Instance
	r.dirty.Each(func(inst *Instance) bool {
		if next == nil || inst.depth() < next.depth() ||
			(inst.depth() == next.depth() && inst.id < next.id) {
			next = inst
		}
		return false
	})
	return next
}

func (r *Root) abandonDirty() {
	r.dirty.Each(func(inst *Instance) bool {
		inst.dirty = false
		return false
	})
	r.dirty.Clear()
	r.rootDirty = false
	r.fault(newFault("hooks.commit", KindRender, "", fmt.Errorf(
		"%w: updates kept arriving after %d commits", ErrTooManyRenders, r.nestedLimit)))
}

func (r *Root) renderComponent(inst *Instance) {
	if inst.dirty {
		inst.dirty = false
		r.dirty.Remove(inst)
	}
	if inst.dead || inst.broken {
		return
	}
	node, ok := r.callRender(inst)
	if !ok {
		return
	}
	r.reconcileChildren(inst.fiber, []Node{node})
	r.queueEffects(inst)
}

// callRender runs the render function with the cursor discipline, re-running
// it while it updates its own state.
func (r *Root) callRender(inst *Instance) (node Node, ok bool) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		inst.rendering = false
		inst.ctx.active = false
		inst.discardPending()
		f := faultFromPanic("hooks.render", KindRender, inst.name(), ErrRender, rec)
		switch {
		case f.Kind == KindHookOrder:
			inst.broken = true
			r.reconcileChildren(inst.fiber, nil)
		case !inst.shaped:
			r.unsubscribe(inst)
			inst.cells = inst.cells[:0]
			inst.effects = inst.effects[:0]
		}
		r.fault(f)
		node, ok = nil, false
	}()

	for attempt := 1; ; attempt++ {
		inst.ctx.begin()
		inst.rendering = true
		inst.renderAgain = false
		node = inst.comp.call(&inst.ctx, inst.props, inst.ref)
		inst.rendering = false
		inst.ctx.end()
		if !inst.renderAgain {
			break
		}
		if attempt >= renderPhaseUpdateLimit {
			panic(newFault("hooks.render", KindRender, inst.name(), fmt.Errorf(
				"%w: %d updates during render", ErrTooManyRenders, attempt)))
		}
	}
	inst.generation++
	r.emit(EventRender, observability.LevelRender, inst.name(), map[string]any{
		"instance":   inst.id,
		"generation": inst.generation,
	})
	return node, true
}

func (r *Root) queueEffects(inst *Instance) {
	for _, e := range inst.effects {
		if !e.pending {
			continue
		}
		switch e.phase {
		case phaseLayout:
			if !inst.queuedLayout {
				inst.queuedLayout = true
				r.layoutQueue = append(r.layoutQueue, inst)
			}
		default:
			if !inst.queuedPassive {
				inst.queuedPassive = true
				r.passiveQueue = append(r.passiveQueue, inst)
			}
		}
	}
}

// commit unmounts deleted subtrees, hands the tree to the host, attaches
// refs and runs layout effects.
func (r *Root) commit() {
	deletions := r.deletions
	r.deletions = nil
	for _, f := range deletions {
		r.unmount(f)
	}

	nodes := collect(r.container, nil)
	surface, err := r.host.Commit(nodes)
	if err != nil {
		r.fault(newFault("hooks.commit", KindCommit, "", err))
	} else {
		r.committed = surface
	}

	refOps := r.refOps
	r.refOps = nil
	for _, op := range refOps {
		op()
	}
	r.emit(EventCommit, observability.LevelCommit, "", map[string]any{
		"nodes":     len(nodes),
		"deletions": len(deletions),
	})

	layout := r.layoutQueue
	r.layoutQueue = nil
	for _, inst := range layout {
		inst.queuedLayout = false
		if inst.dead {
			continue
		}
		r.runEffects(inst, phaseLayout)
	}
}

func (r *Root) present() {
	if r.committed == nil {
		return
	}
	surface := r.committed
	r.committed = nil
	if err := surface.Present(); err != nil {
		r.fault(newFault("hooks.present", KindCommit, "", err))
		return
	}
	r.presented = surface
	r.emit(EventPresent, observability.LevelCommit, "", nil)
}

func (r *Root) postPassive() {
	if len(r.passiveQueue) == 0 || r.passiveTask {
		return
	}
	r.passiveTask = true
	r.tasks.push(func() {
		r.passiveTask = false
		r.flushPassive()
	})
}

// flushPassive runs queued passive effects, children before parents.
func (r *Root) flushPassive() {
	queue := r.passiveQueue
	r.passiveQueue = nil
	for _, inst := range queue {
		inst.queuedPassive = false
		if inst.dead {
			continue
		}
		r.runEffects(inst, phasePassive)
	}
}

// runEffects runs the pending effects of one phase in registration order.
// Each effect's previous cleanup completes before its next run starts.
func (r *Root) runEffects(inst *Instance, phase effectPhase) {
	for _, e := range inst.effects {
		if e.phase != phase || !e.pending {
			continue
		}
		e.pending = false
		if e.cleanup != nil {
			cleanup := e.cleanup
			e.cleanup = nil
			r.runCleanup(inst, e, cleanup)
		}
		e.lastDeps = e.nextDeps
		e.ran = true
		e.cleanup = r.runEffect(inst, e)
	}
}

func (r *Root) runEffect(inst *Instance, e *effectCell) (cleanup Cleanup) {
	defer func() {
		if rec := recover(); rec != nil {
			cleanup = nil
			r.fault(faultFromPanic("hooks.effect", KindEffect, inst.name(), ErrEffect, rec))
		}
	}()
	r.emit(EventEffectRun, observability.LevelRender, inst.name(), map[string]any{
		"instance": inst.id,
		"slot":     e.slot,
		"phase":    e.phase.String(),
	})
	return e.fn()
}

func (r *Root) runCleanup(inst *Instance, e *effectCell, cleanup Cleanup) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fault(faultFromPanic("hooks.cleanup", KindEffect, inst.name(), ErrEffect, rec))
		}
	}()
	r.emit(EventEffectCleanup, observability.LevelRender, inst.name(), map[string]any{
		"instance": inst.id,
		"slot":     e.slot,
		"phase":    e.phase.String(),
	})
	cleanup()
}

// unmount tears down a deleted subtree bottom-up. Each instance runs its
// cleanups in reverse registration order.
func (r *Root) unmount(f *fiber) {
	for _, child := range f.children {
		r.unmount(child)
	}
	switch f.kind {
	case fiberComponent:
		inst := f.inst
		for i := len(inst.effects) - 1; i >= 0; i-- {
			e := inst.effects[i]
			e.pending = false
			if e.cleanup == nil {
				continue
			}
			cleanup := e.cleanup
			e.cleanup = nil
			r.runCleanup(inst, e, cleanup)
		}
		r.unsubscribe(inst)
		r.emit(EventUnmount, observability.LevelCommit, inst.name(), map[string]any{
			"instance":   inst.id,
			"generation": inst.generation,
		})
	case fiberHost:
		if f.ref != nil {
			f.ref.Current = nil
		}
	case fiberProvider:
		f.provider.consumers.Clear()
	}
}

// unsubscribe removes inst from the providers its context cells read.
func (r *Root) unsubscribe(inst *Instance) {
	for _, cl := range inst.cells {
		if cc, ok := cl.data.(*contextCell); ok && cc.provider != nil {
			cc.provider.consumers.Remove(inst)
			cc.provider = nil
		}
	}
}

// fault records f for the caller of the current operation and reports it.
func (r *Root) fault(f *Fault) {
	r.faults = append(r.faults, f)
	r.report(f)
}

// report sends f to the observer and the error handler without recording
// it, for faults that are returned directly.
func (r *Root) report(f *Fault) {
	r.emit(EventFault, observability.LevelFault, f.Component, map[string]any{
		"op":    f.Op,
		"kind":  f.Kind.String(),
		"error": f.Error(),
	})
	r.onFault(f)
}

func (r *Root) takeFaults() error {
	if len(r.faults) == 0 {
		return nil
	}
	err := errors.Join(r.faults...)
	r.faults = nil
	return err
}

func (r *Root) logFault(f *Fault) {
	r.logger.Error("hooks fault",
		"op", f.Op,
		"kind", f.Kind.String(),
		"component", f.Component,
		"err", f.Err,
	)
}

func (r *Root) emit(typ observability.EventType, level observability.Level, component string, data map[string]any) {
	if _, ok := r.observer.(observability.NoOpObserver); ok {
		return
	}
	r.observer.OnEvent(r.ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Time:      time.Now(),
		Root:      r.idString,
		Component: component,
		Data:      data,
	})
}

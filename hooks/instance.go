package hooks

type fiberKind uint8

const (
	fiberRoot fiberKind = iota
	fiberComponent
	fiberHost
	fiberText
	fiberProvider
)

// fiber is one mounted position in the tree.
type fiber struct {
	kind     fiberKind
	key      string
	depth    int
	parent   *fiber
	children []*fiber

	// host and text fibers
	node *HostNode
	ref  *Ref[*HostNode]

	inst     *Instance
	provider *provider
}

// Instance is one mounted occurrence of a component. It owns the cell store,
// the effect list and the generation counter.
type Instance struct {
	id    uint64
	root  *Root
	fiber *fiber
	comp  componentType
	props any
	ref   any

	ctx     Ctx
	cells   []*cell
	effects []*effectCell
	shaped  bool

	generation uint64

	dirty       bool
	rendering   bool
	renderAgain bool
	dead        bool
	broken      bool

	queuedLayout  bool
	queuedPassive bool
}

func (inst *Instance) name() string {
	return inst.comp.componentName()
}

// Name returns the component name.
func (inst *Instance) Name() string {
	return inst.name()
}

// Generation returns how many renders of this instance have completed.
func (inst *Instance) Generation() uint64 {
	return inst.generation
}

func (inst *Instance) depth() int {
	return inst.fiber.depth
}

// discardPending forgets effects queued by a render that failed.
func (inst *Instance) discardPending() {
	for _, e := range inst.effects {
		e.pending = false
	}
}

package hooks

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"
)

type FaultKind int

const (
	KindUnknown FaultKind = iota
	// KindHookOrder: the cell sequence of a render differs from the first
	// render of the same instance. Fatal to the instance.
	KindHookOrder
	// KindReducer: a reducer failed during Dispatch. Returned to the caller.
	KindReducer
	// KindEffect: an effect callback or cleanup panicked.
	KindEffect
	// KindRender: a render function panicked, or kept scheduling itself.
	KindRender
	// KindCommit: the host rejected a commit.
	KindCommit
)

func (k FaultKind) String() string {
	switch k {
	case KindHookOrder:
		return "hook-order"
	case KindReducer:
		return "reducer"
	case KindEffect:
		return "effect"
	case KindRender:
		return "render"
	case KindCommit:
		return "commit"
	default:
		return "unknown"
	}
}

var (
	ErrHookOrder      = errors.New("hook order violation")
	ErrNotRendering   = errors.New("hook called outside of a render")
	ErrReducer        = errors.New("reducer failed")
	ErrEffect         = errors.New("effect failed")
	ErrRender         = errors.New("render failed")
	ErrTooManyRenders = errors.New("too many re-renders")
	ErrUnmounted      = errors.New("root is unmounted")
)

// Fault is the error type for everything the runtime reports.
type Fault struct {
	// Op is the operation that failed, e.g. "hooks.UseState".
	Op   string
	Kind FaultKind
	// Component is the name of the instance the fault belongs to, if any.
	Component string
	Err       error
	// Recovered is the panic value when the fault came from a recovered panic.
	Recovered  any
	StackTrace string
	Timestamp  time.Time
}

func (f *Fault) Error() string {
	var sb strings.Builder
	sb.WriteString(f.Op)
	sb.WriteString(" [")
	sb.WriteString(f.Kind.String())
	sb.WriteString("]")
	if f.Component != "" {
		sb.WriteString(" in ")
		sb.WriteString(f.Component)
	}
	sb.WriteString(": ")
	if f.Err != nil {
		sb.WriteString(f.Err.Error())
	} else {
		fmt.Fprintf(&sb, "panic: %v", f.Recovered)
	}
	return sb.String()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// ErrorHandler receives every fault the root reports.
type ErrorHandler func(f *Fault)

func newFault(op string, kind FaultKind, component string, err error) *Fault {
	return &Fault{
		Op:        op,
		Kind:      kind,
		Component: component,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// faultFromPanic turns a recovered value into a fault. Faults raised by hooks
// pass through unchanged so their kind survives the unwind.
func faultFromPanic(op string, kind FaultKind, component string, sentinel error, r any) *Fault {
	if f, ok := r.(*Fault); ok {
		if f.Component == "" {
			f.Component = component
		}
		return f
	}
	var err error
	if e, ok := r.(error); ok {
		err = fmt.Errorf("%w: %w", sentinel, e)
	} else {
		err = fmt.Errorf("%w: panic: %v", sentinel, r)
	}
	return &Fault{
		Op:         op,
		Kind:       kind,
		Component:  component,
		Err:        err,
		Recovered:  r,
		StackTrace: captureStack(),
		Timestamp:  time.Now(),
	}
}

// captureStack returns the call stack of the panicking goroutine, skipping
// the runtime's own frames.
func captureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(4, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}

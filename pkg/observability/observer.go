// Package observability carries the hook runtime's event stream: renders,
// skips, commits, effect runs, unmounts and faults of a root.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level orders events by how much of a render pass they describe. Each
// render pass emits many LevelRender events, a few LevelCommit events, and
// LevelWarn or LevelFault only when something went wrong.
type Level uint8

const (
	// LevelRender covers per-instance work: render, skip, effect run and
	// cleanup.
	LevelRender Level = iota
	// LevelCommit covers per-pass work: commit, present, unmount and
	// dropped updates.
	LevelCommit
	// LevelWarn is misuse the runtime tolerates, e.g. a ref passed to a
	// component that does not forward it.
	LevelWarn
	// LevelFault is a *hooks.Fault.
	LevelFault
)

func (l Level) String() string {
	switch l {
	case LevelRender:
		return "render"
	case LevelCommit:
		return "commit"
	case LevelWarn:
		return "warn"
	case LevelFault:
		return "fault"
	default:
		return "unknown"
	}
}

// SlogLevel is the slog level an event of this level is logged at.
// Render events sit below slog.LevelDebug so a debug handler shows commits
// without the per-instance noise.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelRender:
		return slog.LevelDebug - 4
	case LevelCommit:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event, e.g. "hooks.render" or "hooks.effect.run".
type EventType string

// Event is one thing a root did. Component is the name of the instance it
// concerns, empty for root-wide events like commits.
type Event struct {
	Type      EventType
	Level     Level
	Time      time.Time
	Root      string
	Component string
	Data      map[string]any
}

// Observer receives events. Implementations are called on the goroutine that
// owns the emitting root and must not call back into it.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// NoOpObserver discards all events.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}

// MultiObserver fans out events to multiple observers.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver creates a MultiObserver forwarding to every non-nil
// observer given.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		obs.OnEvent(ctx, event)
	}
}

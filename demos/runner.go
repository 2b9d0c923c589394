package demos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/observability"
	"github.com/delaneyj/hookparty/pkg/texthost"
)

var ErrNoRoute = errors.New("no such route")

// Session is a mounted demo driven by a script.
type Session struct {
	Root    *hooks.Root
	Host    *texthost.Host
	Clock   *FakeClock
	Console *Console
}

// Click clicks the node id inside one batch.
func (s *Session) Click(id string) error {
	var err error
	if berr := s.Root.Batch(func() { err = s.Host.Click(id) }); berr != nil {
		return errors.Join(err, berr)
	}
	return err
}

// Input types value into the node id inside one batch.
func (s *Session) Input(id, value string) error {
	var err error
	if berr := s.Root.Batch(func() { err = s.Host.Input(id, value) }); berr != nil {
		return errors.Join(err, berr)
	}
	return err
}

// Step is one scripted interaction.
type Step struct {
	Name string
	Do   func(s *Session) error
}

func Click(id string) Step {
	return Step{
		Name: "click #" + id,
		Do:   func(s *Session) error { return s.Click(id) },
	}
}

func Input(id, value string) Step {
	return Step{
		Name: fmt.Sprintf("input #%s %q", id, value),
		Do:   func(s *Session) error { return s.Input(id, value) },
	}
}

func Advance(d time.Duration) Step {
	return Step{
		Name: "advance " + d.String(),
		Do: func(s *Session) error {
			s.Clock.Advance(d)
			return nil
		},
	}
}

// Frame is the state of a session after one step and the flush that
// follows it.
type Frame struct {
	Step    string
	Markup  string
	Digest  uint64
	Console []string
	// Renders counts completed renders per component during the step.
	Renders map[string]int
	Skips   int
	Effects int
	Commits int
	Elapsed time.Duration
}

// Trace is the record of a scripted run.
type Trace struct {
	Path   string
	RootID string
	Frames []Frame
	Faults []*hooks.Fault
}

type runConfig struct {
	observer observability.Observer
	steps    []Step
}

type RunOption func(*runConfig)

// WithEventObserver also sends the runtime events of the run to obs.
func WithEventObserver(obs observability.Observer) RunOption {
	return func(cfg *runConfig) {
		cfg.observer = obs
	}
}

// WithSteps replaces the route's script.
func WithSteps(steps ...Step) RunOption {
	return func(cfg *runConfig) {
		cfg.steps = steps
	}
}

// Run mounts the route at path, plays its script and returns a frame per
// step. The first frame is the mount.
func Run(ctx context.Context, path string, opts ...RunOption) (*Trace, error) {
	branch := Match(path)
	if branch == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}
	cfg := &runConfig{steps: branch[len(branch)-1].Script}
	for _, opt := range opts {
		opt(cfg)
	}

	trace := &Trace{Path: branch[len(branch)-1].Path}
	events := observability.NewRecorder()
	host := texthost.New()
	root := hooks.NewRoot(host,
		hooks.WithObserver(observability.NewMultiObserver(events, cfg.observer)),
		hooks.WithErrorHandler(func(f *hooks.Fault) {
			trace.Faults = append(trace.Faults, f)
		}),
	)
	trace.RootID = root.ID().String()
	s := &Session{
		Root:    root,
		Host:    host,
		Clock:   NewFakeClock(),
		Console: &Console{},
	}
	defer func() {
		_ = root.Unmount()
	}()

	play := func(name string, do func() error) error {
		events.Reset()
		commits := host.CommitCount()
		start := time.Now()
		err := do()
		// faults are on the trace already
		_ = root.Flush()
		trace.Frames = append(trace.Frames, frameOf(name, host, s.Console, events, commits, time.Since(start)))
		return err
	}

	app := ClockContext.Provider(s.Clock,
		ConsoleContext.Provider(s.Console, Element(branch)),
	)
	if err := play("mount", func() error {
		// faults are on the trace already
		_ = root.Render(app)
		return nil
	}); err != nil {
		return trace, err
	}
	for _, step := range cfg.steps {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		if err := play(step.Name, func() error { return step.Do(s) }); err != nil {
			return trace, fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return trace, nil
}

func frameOf(name string, host *texthost.Host, console *Console, events *observability.Recorder, commits int, elapsed time.Duration) Frame {
	f := Frame{
		Step:    name,
		Markup:  host.Markup(),
		Console: console.Take(),
		Renders: map[string]int{},
		Commits: host.CommitCount() - commits,
		Elapsed: elapsed,
	}
	if s := host.Presented(); s != nil {
		f.Digest = s.Digest
	}
	for _, e := range events.Events() {
		switch e.Type {
		case hooks.EventRender:
			f.Renders[e.Component]++
		case hooks.EventSkip:
			f.Skips++
		case hooks.EventEffectRun:
			f.Effects++
		}
	}
	return f
}

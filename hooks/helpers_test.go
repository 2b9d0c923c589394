package hooks_test

import (
	"testing"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/observability"
	"github.com/delaneyj/hookparty/pkg/texthost"
)

type harness struct {
	root   *hooks.Root
	host   *texthost.Host
	events *observability.Recorder
	faults []*hooks.Fault
}

func newHarness(t *testing.T, opts ...hooks.Option) *harness {
	t.Helper()
	h := &harness{
		host:   texthost.New(),
		events: observability.NewRecorder(),
	}
	opts = append([]hooks.Option{
		hooks.WithObserver(h.events),
		hooks.WithErrorHandler(func(f *hooks.Fault) {
			h.faults = append(h.faults, f)
		}),
	}, opts...)
	h.root = hooks.NewRoot(h.host, opts...)
	t.Cleanup(func() {
		_ = h.root.Unmount()
	})
	return h
}

func (h *harness) renders(name string) int {
	return h.events.Count(hooks.EventRender, name)
}

type none struct{}

package hooks_test

import (
	"testing"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProps struct {
	Extra bool
	Drop  bool
	Tail  bool
}

var flaky = hooks.Define("Flaky", func(c *hooks.Ctx, p flakyProps) hooks.Node {
	if p.Extra {
		hooks.UseRef(c, 0)
	}
	n, _ := hooks.UseState(c, 7)
	if !p.Drop {
		hooks.UseMemo(c, func() int { return n * 2 }, hooks.Deps{n})
	}
	if p.Tail {
		hooks.UseRef(c, "")
	}
	return hooks.H("b", nil, hooks.Textf(n))
})

// should fail a render whose hook kinds differ from the first render
func TestHookOrderKindMismatch(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.root.Render(flaky.El(flakyProps{})))
	assert.Equal(t, "<b>7</b>", h.host.Markup())

	err := h.root.Render(flaky.El(flakyProps{Extra: true}))
	require.ErrorIs(t, err, hooks.ErrHookOrder)

	var f *hooks.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, hooks.KindHookOrder, f.Kind)
	assert.Equal(t, "Flaky", f.Component)
	assert.Equal(t, "hooks.UseRef", f.Op)

	// broken instances render nothing from then on
	assert.Equal(t, "", h.host.Markup())
	require.NoError(t, h.root.Render(flaky.El(flakyProps{})))
	assert.Equal(t, "", h.host.Markup())
	assert.Equal(t, 1, h.renders("Flaky"))
}

// should fail a render that calls fewer hooks than the first render
func TestHookOrderFewerHooks(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.root.Render(flaky.El(flakyProps{})))

	err := h.root.Render(flaky.El(flakyProps{Drop: true}))
	require.ErrorIs(t, err, hooks.ErrHookOrder)
	require.Len(t, h.faults, 1)
	assert.Equal(t, hooks.KindHookOrder, h.faults[0].Kind)
}

// should fail a render that calls more hooks than the first render
func TestHookOrderMoreHooks(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.root.Render(flaky.El(flakyProps{})))

	err := h.root.Render(flaky.El(flakyProps{Tail: true}))
	require.ErrorIs(t, err, hooks.ErrHookOrder)
	assert.ErrorContains(t, err, "rendered more hooks")

	require.Len(t, h.faults, 1)
	assert.Equal(t, hooks.KindHookOrder, h.faults[0].Kind)
	assert.Equal(t, "hooks.UseRef", h.faults[0].Op)
	assert.Equal(t, "", h.host.Markup())
}

// should leave siblings of a broken instance working
func TestHookOrderSiblingsUnaffected(t *testing.T) {
	h := newHarness(t)
	var set *hooks.Setter[int]
	counter := counterComponent(&set)
	tree := func(extra bool) hooks.Node {
		return hooks.H("div", nil, flaky.El(flakyProps{Extra: extra}), counter.El(none{}))
	}
	require.NoError(t, h.root.Render(tree(false)))
	require.Error(t, h.root.Render(tree(true)))

	set.Set(9)
	assert.Equal(t, `<div><span id="n">9</span></div>`, h.host.Markup())
}

// should refuse hooks called outside of a render
func TestHookOutsideRender(t *testing.T) {
	h := newHarness(t)
	var captured *hooks.Ctx
	comp := hooks.Define("Leak", func(c *hooks.Ctx, _ none) hooks.Node {
		captured = c
		return nil
	})
	require.NoError(t, h.root.Render(comp.El(none{})))

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		hooks.UseState(captured, 0)
	}()
	f, ok := recovered.(*hooks.Fault)
	require.True(t, ok)
	assert.ErrorIs(t, f, hooks.ErrNotRendering)
	assert.Equal(t, hooks.KindHookOrder, f.Kind)
}

// should keep the previous output of a render that panics
func TestRenderPanic(t *testing.T) {
	h := newHarness(t)
	comp := hooks.Define("Boom", func(c *hooks.Ctx, label string) hooks.Node {
		n, _ := hooks.UseState(c, 1)
		if label == "boom" {
			panic("render exploded")
		}
		return hooks.H("i", nil, hooks.Text(label), hooks.Textf(n))
	})
	require.NoError(t, h.root.Render(comp.El("ok")))

	err := h.root.Render(comp.El("boom"))
	require.ErrorIs(t, err, hooks.ErrRender)
	var f *hooks.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, hooks.KindRender, f.Kind)
	assert.Equal(t, "render exploded", f.Recovered)
	assert.Equal(t, "<i>ok1</i>", h.host.Markup())

	require.NoError(t, h.root.Render(comp.El("again")))
	assert.Equal(t, "<i>again1</i>", h.host.Markup())
}

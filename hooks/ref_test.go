package hooks_test

import (
	"testing"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should keep one ref per instance and never render on writes
func TestUseRef(t *testing.T) {
	h := newHarness(t)
	var refs []*hooks.Ref[int]
	var set *hooks.Setter[int]
	comp := hooks.Define("Refs", func(c *hooks.Ctx, _ none) hooks.Node {
		_, s := hooks.UseState(c, 0)
		set = s
		refs = append(refs, hooks.UseRef(c, 10))
		return nil
	})
	require.NoError(t, h.root.Render(comp.El(none{})))
	refs[0].Current = 99
	assert.Equal(t, 1, h.renders("Refs"))

	set.Set(1)
	require.Len(t, refs, 2)
	assert.Same(t, refs[0], refs[1])
	assert.Equal(t, 99, refs[1].Current)
}

// should attach host nodes to refs before layout effects run
func TestHostRef(t *testing.T) {
	h := newHarness(t)
	var seen *hooks.HostNode
	var ref *hooks.Ref[*hooks.HostNode]
	comp := hooks.Define("Input", func(c *hooks.Ctx, _ none) hooks.Node {
		ref = hooks.UseRef[*hooks.HostNode](c, nil)
		hooks.UseLayoutEffect(c, func() hooks.Cleanup {
			seen = ref.Current
			return nil
		}, hooks.Deps{})
		return hooks.H("input", hooks.Attrs{"id": "in"}).WithRef(ref)
	})
	require.NoError(t, h.root.Render(comp.El(none{})))
	require.NotNil(t, seen)
	assert.Equal(t, "input", seen.Tag)
	assert.Same(t, h.host.Find("in"), seen)

	require.NoError(t, h.root.Unmount())
	assert.Nil(t, ref.Current)
}

type fancyHandle struct {
	Focus func()
	Name  func() string
}

// should expose only the handle a ForwardRef child publishes
func TestImperativeHandle(t *testing.T) {
	h := newHarness(t)
	focused := ""
	fancy := hooks.ForwardRef("FancyInput", func(c *hooks.Ctx, label string, ref *hooks.Ref[fancyHandle]) hooks.Node {
		input := hooks.UseRef[*hooks.HostNode](c, nil)
		hooks.UseImperativeHandle(c, ref, func() fancyHandle {
			return fancyHandle{
				Focus: func() { focused = input.Current.Attrs["id"].(string) },
				Name:  func() string { return "FancyInput" },
			}
		}, hooks.Deps{})
		return hooks.H("input", hooks.Attrs{"id": label}).WithRef(input)
	})

	var handle *hooks.Ref[fancyHandle]
	var set *hooks.Setter[int]
	app := hooks.Define("App", func(c *hooks.Ctx, _ none) hooks.Node {
		handle = hooks.UseRef(c, fancyHandle{})
		n, s := hooks.UseState(c, 0)
		set = s
		return hooks.H("div", nil,
			fancy.El("fancy", hooks.WithRef(handle)),
			hooks.Textf(n),
		)
	})
	require.NoError(t, h.root.Render(app.El(none{})))
	require.NotNil(t, handle.Current.Focus)

	handle.Current.Focus()
	assert.Equal(t, "fancy", focused)
	assert.Equal(t, "FancyInput", handle.Current.Name())
	assert.Equal(t, 1, h.renders("FancyInput"))

	set.Set(1)
	assert.Equal(t, 2, h.renders("FancyInput"))
	assert.Equal(t, "FancyInput", handle.Current.Name())

	require.NoError(t, h.root.Unmount())
	assert.Nil(t, handle.Current.Focus)
}

// should report refs attached to components that cannot take them
func TestRefIgnored(t *testing.T) {
	h := newHarness(t)
	plain := hooks.Define("Plain", func(c *hooks.Ctx, _ none) hooks.Node { return nil })
	ref := hooks.NewRef(0)
	require.NoError(t, h.root.Render(plain.El(none{}, hooks.WithRef(ref))))
	assert.Equal(t, 1, h.events.Count(hooks.EventRefIgnored, "Plain"))
	assert.Equal(t, 0, ref.Current)
}

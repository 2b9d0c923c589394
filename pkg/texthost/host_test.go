package texthost_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/texthost"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkup(t *testing.T) {
	nodes := []*hooks.HostNode{
		{
			Tag:   "div",
			Attrs: hooks.Attrs{"id": "app", "class": "a<b", "onClick": func() {}},
			Children: []*hooks.HostNode{
				{Tag: "span", Attrs: hooks.Attrs{"tabindex": 1}, Children: []*hooks.HostNode{{Text: "x & y"}}},
				{Text: "tail"},
			},
		},
	}
	want := `<div class="a&lt;b" id="app"><span tabindex="1">x &amp; y</span>tail</div>`
	if diff := cmp.Diff(want, texthost.Markup(nodes)); diff != "" {
		t.Errorf("markup mismatch (-want +got):\n%s", diff)
	}
}

// should commit, present and expose handlers of the presented tree
func TestHostWithRoot(t *testing.T) {
	host := texthost.New()
	root := hooks.NewRoot(host)

	counter := hooks.Define("Counter", func(c *hooks.Ctx, _ struct{}) hooks.Node {
		n, setN := hooks.UseState(c, 0)
		return hooks.H("button", hooks.Attrs{
			"id":      "inc",
			"onClick": func() { setN.Set(n + 1) },
		}, hooks.Textf(n))
	})

	require.NoError(t, root.Render(counter.El(struct{}{})))
	assert.Equal(t, `<button id="inc">0</button>`, host.Markup())
	assert.Equal(t, 1, host.Presents())

	require.NoError(t, host.Click("inc"))
	assert.Equal(t, "1", host.TextOf("inc"))
	assert.Equal(t, 2, host.CommitCount())

	commits := host.Commits()
	require.Len(t, commits, 2)
	assert.NotEqual(t, commits[0].Digest, commits[1].Digest)
	assert.True(t, commits[1].Presented)
	assert.Same(t, host.Presented(), commits[1])

	assert.ErrorIs(t, host.Click("missing"), texthost.ErrNotFound)
	assert.ErrorIs(t, host.Input("inc", "x"), texthost.ErrNoHandler)
}

// should report a failed commit as a commit fault and keep the last surface
func TestHostFailNextCommit(t *testing.T) {
	host := texthost.New(texthost.WithHistory(1))
	root := hooks.NewRoot(host, hooks.WithErrorHandler(func(*hooks.Fault) {}))

	require.NoError(t, root.Render(hooks.H("p", nil, hooks.Text("one"))))

	boom := errors.New("boom")
	host.FailNextCommit(boom)
	err := root.Render(hooks.H("p", nil, hooks.Text("two")))
	require.ErrorIs(t, err, boom)
	var f *hooks.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, hooks.KindCommit, f.Kind)
	assert.Equal(t, "<p>one</p>", host.Markup())

	require.NoError(t, root.Render(hooks.H("p", nil, hooks.Text("three"))))
	assert.Equal(t, "<p>three</p>", host.Markup())
	assert.Len(t, host.Commits(), 1)
}

func TestPresentHook(t *testing.T) {
	var seen []int
	host := texthost.New(texthost.WithPresentHook(func(s *texthost.Surface) {
		seen = append(seen, s.Version)
	}))
	root := hooks.NewRoot(host)
	require.NoError(t, root.Render(hooks.Text("a")))
	require.NoError(t, root.Render(hooks.Text("b")))
	assert.Equal(t, []int{1, 2}, seen)
	assert.Equal(t, "b", host.Markup())
}

package demos_test

import (
	"context"
	"testing"

	"github.com/delaneyj/hookparty/demos"
	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/texthost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, path string, opts ...demos.RunOption) []demos.Frame {
	t.Helper()
	trace, err := demos.Run(context.Background(), path, opts...)
	require.NoError(t, err)
	require.Empty(t, trace.Faults)
	assert.Equal(t, path, trace.Path)
	assert.NotEmpty(t, trace.RootID)
	return trace.Frames
}

func TestUseStateDemo(t *testing.T) {
	frames := run(t, "/useState")
	require.Len(t, frames, 7)

	assert.Contains(t, frames[0].Markup, `<li><a href="/useState/optimize_1">optimize_1</a></li>`)
	assert.Contains(t, frames[0].Markup, `<p id="num">0</p>`)
	assert.Equal(t, []string{"InitialState render 0"}, frames[0].Console)

	// the child keeps the state it was seeded with
	assert.Contains(t, frames[1].Markup, `<p id="num">1</p>`)
	assert.Contains(t, frames[1].Markup, `<p id="initial">0</p>`)
	assert.Equal(t, 1, frames[1].Renders["UseState"])
	assert.Equal(t, 1, frames[1].Renders["InitialState"])

	// the alert reports the count of the render it was clicked in
	assert.Equal(t, "advance 3s", frames[4].Step)
	assert.Equal(t, []string{"alert: 1"}, frames[4].Console)
	assert.Empty(t, frames[4].Renders)

	assert.Contains(t, frames[5].Markup, `<p id="initial">1</p>`)

	// setting the same value renders nothing
	assert.Empty(t, frames[6].Renders)
	assert.Zero(t, frames[6].Commits)
}

// should freeze the child with the first data and click handler
func TestOptimize1Demo(t *testing.T) {
	frames := run(t, "/useState/optimize_1")
	require.Len(t, frames, 4)

	assert.Contains(t, frames[1].Markup, `value="hooks"`)
	assert.Equal(t, 1, frames[1].Renders["Optimize_1"])
	assert.Zero(t, frames[1].Renders["SubCounter"])
	assert.Positive(t, frames[1].Skips)

	assert.Equal(t, 1, frames[2].Renders["Optimize_1"])
	assert.Contains(t, frames[2].Markup, `<button id="sub">0</button>`)
	assert.Equal(t, []string{"Counter render"}, frames[2].Console)

	// the stale handler sets the count it already set
	assert.Empty(t, frames[3].Renders)
}

// should only render the memo child when the count changes
func TestOptimize2Demo(t *testing.T) {
	frames := run(t, "/useState/optimize_2")
	require.Len(t, frames, 4)

	assert.Zero(t, frames[1].Renders["SubCounter"])
	assert.Contains(t, frames[1].Console, "data === oldData ? true")
	assert.Contains(t, frames[1].Console, "addClick === oldAddClick ? true")

	assert.Equal(t, 1, frames[2].Renders["SubCounter"])
	assert.Contains(t, frames[2].Markup, `<button id="sub">1</button>`)
	assert.Contains(t, frames[2].Console, "data === oldData ? false")

	assert.Contains(t, frames[3].Markup, `<button id="sub">2</button>`)
}

func TestUseReducerDemo(t *testing.T) {
	frames := run(t, "/useReducer")
	require.Len(t, frames, 5)

	assert.Contains(t, frames[0].Markup, `<span id="count">Count: 0</span>`)
	assert.Contains(t, frames[3].Markup, `<span id="count">Count: 1</span>`)

	require.Len(t, frames[4].Console, 1)
	assert.Contains(t, frames[4].Console[0], "unknown action")
	assert.Empty(t, frames[4].Renders)
}

// should render the memo consumer through its context subscription
func TestUseContextDemo(t *testing.T) {
	frames := run(t, "/useContext")
	require.Len(t, frames, 3)

	assert.Equal(t, 1, frames[1].Renders["SubCounter"])
	assert.Contains(t, frames[2].Markup, `<p id="num">2</p>`)
}

// should restart the timer on text changes only
func TestUseEffectDemo(t *testing.T) {
	frames := run(t, "/useEffect")
	require.Len(t, frames, 6)

	assert.Equal(t, []string{"useEffect"}, frames[0].Console)
	assert.Contains(t, frames[1].Markup, `<p id="num">1</p>`)
	assert.Empty(t, frames[1].Console)

	assert.Equal(t, []string{"cleanup", "useEffect"}, frames[2].Console)
	assert.Equal(t, []string{"cleanup", "useEffect"}, frames[3].Console)

	// the bump scheduled for "a" was cancelled by "ab"
	assert.Contains(t, frames[4].Markup, `<p id="num">2</p>`)

	assert.Contains(t, frames[5].Markup, `<p id="num">3</p>`)
	assert.Empty(t, frames[5].Console)
}

// should measure before presenting
func TestUseLayoutEffectDemo(t *testing.T) {
	frames := run(t, "/useLayoutEffect")
	require.Len(t, frames, 3)

	assert.Contains(t, frames[0].Markup, `<p id="width">10</p>`)
	assert.Equal(t, 2, frames[0].Commits)
	assert.Contains(t, frames[1].Markup, `<p id="width">5</p>`)
	assert.Contains(t, frames[2].Markup, `<p id="width">13</p>`)
}

// should never present a stale measurement
func TestUseLayoutEffectPresents(t *testing.T) {
	var presented []string
	host := texthost.New(texthost.WithPresentHook(func(s *texthost.Surface) {
		presented = append(presented, s.Markup)
	}))
	root := hooks.NewRoot(host)
	require.NoError(t, root.Render(demos.UseLayoutEffectPanel.El(demos.PanelProps{})))
	require.NoError(t, root.Batch(func() {
		require.NoError(t, host.Input("text", "abc"))
	}))

	require.Len(t, presented, 2)
	assert.Contains(t, presented[0], `<p id="width">10</p>`)
	assert.Contains(t, presented[1], `<p id="width">3</p>`)
	assert.Equal(t, 4, host.CommitCount())
}

func TestUseRefDemo(t *testing.T) {
	frames := run(t, "/useRef")
	require.Len(t, frames, 3)

	assert.Equal(t, []string{"input === inputRef ? false"}, frames[0].Console)
	assert.Equal(t, []string{"focus #child-input"}, frames[1].Console)
	assert.Equal(t, []string{"input === inputRef ? true"}, frames[2].Console)
}

func TestForwardRefDemo(t *testing.T) {
	frames := run(t, "/useRef/forwardRef")
	require.Len(t, frames, 3)

	assert.Equal(t, []string{"focus #fwd-input"}, frames[1].Console)
	assert.Equal(t, 1, frames[2].Renders["ForwardChild"])
}

// should drive the child only through its handle
func TestImperativeHandleDemo(t *testing.T) {
	frames := run(t, "/useRef/useImperativeHandle")
	require.Len(t, frames, 2)

	assert.Equal(t, []string{"focus #focus-input", "counter"}, frames[1].Console)
	assert.Contains(t, frames[1].Markup, `<input id="text-input" value="&lt;script&gt;alert(1)&lt;/script&gt;">`)
	assert.Equal(t, 1, frames[1].Renders["HandleChild"])
	assert.Zero(t, frames[1].Renders["UseImperativeHandle"])
}

// should keep the counts of the two counters apart
func TestCustomHookDemo(t *testing.T) {
	frames := run(t, "/customHook")
	require.Len(t, frames, 4)

	assert.Contains(t, frames[1].Markup, `<button id="counter1">1</button>`)
	assert.Contains(t, frames[1].Markup, `<button id="counter2">1</button>`)
	assert.Contains(t, frames[2].Markup, `<button id="counter1">2</button>`)
	assert.Contains(t, frames[2].Markup, `<button id="counter2">1</button>`)
	assert.Contains(t, frames[3].Markup, `<button id="counter1">4</button>`)
	assert.Contains(t, frames[3].Markup, `<button id="counter2">3</button>`)
}

func TestRunErrors(t *testing.T) {
	_, err := demos.Run(context.Background(), "/nope")
	assert.ErrorIs(t, err, demos.ErrNoRoute)

	trace, err := demos.Run(context.Background(), "/useReducer", demos.WithSteps(demos.Click("missing")))
	require.ErrorIs(t, err, texthost.ErrNotFound)
	assert.Len(t, trace.Frames, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = demos.Run(ctx, "/useReducer")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatch(t *testing.T) {
	branch := demos.Match("/useState/optimize_2")
	require.Len(t, branch, 2)
	assert.Equal(t, "/useState", branch[0].Path)
	assert.Equal(t, "optimize_2", branch[1].Title)

	branch = demos.Match("/customhook")
	require.Len(t, branch, 1)
	assert.Equal(t, "/customHook", branch[0].Path)

	assert.Nil(t, demos.Match("/useState/missing"))

	count := 0
	demos.Walk(func(r *demos.Route, depth int) {
		count++
		assert.NotNil(t, r.Panel, r.Path)
		assert.NotEmpty(t, r.Script, r.Path)
	})
	assert.Equal(t, 11, count)
}

package demos

import (
	"time"

	"github.com/delaneyj/hookparty/hooks"
)

// PanelProps are the props of every routed panel. Outlet is the matched
// child route, nil when the panel is the leaf.
type PanelProps struct {
	Outlet hooks.Node
}

type initialStateProps struct {
	Num int
}

type counter struct {
	Number int
}

// initialState seeds its state from props once. Later prop changes are
// ignored, and setting the counter to itself renders nothing.
var initialState = hooks.Define("InitialState", func(c *hooks.Ctx, props initialStateProps) hooks.Node {
	cnt, setCounter := hooks.UseStateFunc(c, func() counter {
		return counter{Number: props.Num}
	})
	useConsole(c).Printf("InitialState render %d", cnt.Number)
	return hooks.Fragment(
		hooks.H("p", hooks.Attrs{"id": "initial"}, hooks.Textf(cnt.Number)),
		hooks.H("button", hooks.Attrs{
			"id":      "initial-inc",
			"onClick": func() { setCounter.Set(counter{Number: cnt.Number + 1}) },
		}, hooks.Text("+")),
		hooks.H("button", hooks.Attrs{
			"id":      "initial-same",
			"onClick": func() { setCounter.Set(cnt) },
		}, hooks.Text("setCounter")),
	)
})

// UseStatePanel shows that every render closes over its own state: the
// delayed alert reports the count at the time of the click.
var UseStatePanel = hooks.Define("UseState", func(c *hooks.Ctx, props PanelProps) hooks.Node {
	num, setNum := hooks.UseState(c, 0)
	clock := hooks.UseContext(c, ClockContext)
	console := useConsole(c)

	alertNum := func() {
		clock.AfterFunc(3*time.Second, func() {
			c.Dispatch(func() {
				console.Printf("alert: %d", num)
			})
		})
	}
	return hooks.Fragment(
		navLinks(
			link{Path: "/useState/optimize_1", Title: "optimize_1"},
			link{Path: "/useState/optimize_2", Title: "optimize_2"},
		),
		hooks.H("div", nil,
			hooks.H("p", hooks.Attrs{"id": "num"}, hooks.Textf(num)),
			hooks.H("button", hooks.Attrs{
				"id":      "inc",
				"onClick": func() { setNum.Set(num + 1) },
			}, hooks.Text("+")),
			hooks.H("button", hooks.Attrs{"id": "alert", "onClick": alertNum}, hooks.Text("alertNum")),
			initialState.El(initialStateProps{Num: num}),
		),
		hooks.H("hr", nil),
		hooks.H("p", nil, hooks.Text("part of children")),
		props.Outlet,
	)
})

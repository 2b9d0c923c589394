package demos

import "github.com/delaneyj/hookparty/hooks"

type counterValue struct {
	State    countState
	Dispatch *hooks.Dispatcher[string]
}

// CounterContext shares a reducer's state and dispatcher with a subtree.
var CounterContext = hooks.CreateContext("counter", counterValue{})

var contextSubCounter = hooks.Define("SubCounter", func(c *hooks.Ctx, _ struct{}) hooks.Node {
	value := hooks.UseContext(c, CounterContext)
	return hooks.Fragment(
		hooks.H("p", hooks.Attrs{"id": "num"}, hooks.Textf(value.State.Num)),
		dispatchButton("add", "+", "ADD", value.Dispatch, useConsole(c)),
	)
})

// memoContextSubCounter has no props, so its Memo skips every render of the
// panel and only the context subscription renders it.
var memoContextSubCounter = hooks.Memo(contextSubCounter, nil)

// UseContextPanel provides a reducer through context.
var UseContextPanel = hooks.Define("UseContext", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	state, dispatch := hooks.UseReducerInit(c, countReducer, 0, initCount)
	return CounterContext.Provider(
		counterValue{State: state, Dispatch: dispatch},
		memoContextSubCounter.El(struct{}{}),
	)
})

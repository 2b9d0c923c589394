package demos

import (
	"errors"
	"fmt"

	"github.com/delaneyj/hookparty/hooks"
)

var ErrUnknownAction = errors.New("unknown action")

type countState struct {
	Num int
}

func countReducer(state countState, action string) (countState, error) {
	switch action {
	case "increment", "ADD":
		return countState{Num: state.Num + 1}, nil
	case "decrement":
		return countState{Num: state.Num - 1}, nil
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

func initCount(initial int) countState {
	return countState{Num: initial}
}

// dispatchButton dispatches action on click and prints a rejected action.
func dispatchButton(id, label, action string, d *hooks.Dispatcher[string], console *Console) hooks.Node {
	return hooks.H("button", hooks.Attrs{
		"id": id,
		"onClick": func() {
			if err := d.Dispatch(action); err != nil {
				console.Printf("dispatch %s: %v", action, err)
			}
		},
	}, hooks.Text(label))
}

// UseReducerPanel keeps a count in a reducer with a lazily built first
// state.
var UseReducerPanel = hooks.Define("UseReducer", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	state, dispatch := hooks.UseReducerInit(c, countReducer, 0, initCount)
	console := useConsole(c)
	return hooks.Fragment(
		hooks.H("span", hooks.Attrs{"id": "count"}, hooks.Text("Count: "), hooks.Textf(state.Num)),
		dispatchButton("inc", "+", "increment", dispatch, console),
		dispatchButton("dec", "-", "decrement", dispatch, console),
		dispatchButton("reset", "reset", "reset", dispatch, console),
	)
})

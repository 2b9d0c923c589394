package demos

import (
	"time"

	"github.com/delaneyj/hookparty/hooks"
)

// useNumber counts up once a second from the clock in context. Every
// instance calling it gets its own count and its own timer.
func useNumber(c *hooks.Ctx) (int, *hooks.Setter[int]) {
	number, setNumber := hooks.UseState(c, 0)
	clock := hooks.UseContext(c, ClockContext)
	hooks.UseEffect(c, func() hooks.Cleanup {
		stop := Every(clock, time.Second, func() {
			c.Dispatch(func() {
				setNumber.Update(func(n int) int { return n + 1 })
			})
		})
		return hooks.Cleanup(stop)
	}, hooks.Deps{clock})
	return number, setNumber
}

func numberCounter(name, id string) *hooks.Component[struct{}] {
	return hooks.Define(name, func(c *hooks.Ctx, _ struct{}) hooks.Node {
		number, setNumber := useNumber(c)
		return hooks.H("div", nil,
			hooks.H("button", hooks.Attrs{
				"id":      id,
				"onClick": func() { setNumber.Set(number + 1) },
			}, hooks.Textf(number)),
		)
	})
}

var (
	counter1 = numberCounter("Counter1", "counter1")
	counter2 = numberCounter("Counter2", "counter2")
)

// CustomHookPanel renders two counters sharing useNumber's logic but not
// its state.
var CustomHookPanel = hooks.Define("CustomHook", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	return hooks.Fragment(
		counter1.El(struct{}{}),
		counter2.El(struct{}{}),
	)
})

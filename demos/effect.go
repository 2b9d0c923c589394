package demos

import (
	"time"

	"github.com/delaneyj/hookparty/hooks"
)

// UseEffectPanel bumps the count one second after every text change. A
// change within that second cancels the pending bump.
var UseEffectPanel = hooks.Define("UseEffect", func(c *hooks.Ctx, _ PanelProps) hooks.Node {
	num, setNum := hooks.UseState(c, 0)
	text, setText := hooks.UseState(c, "")
	clock := hooks.UseContext(c, ClockContext)
	console := useConsole(c)

	hooks.UseEffect(c, func() hooks.Cleanup {
		console.Printf("useEffect")
		stop := clock.AfterFunc(time.Second, func() {
			c.Dispatch(func() {
				setNum.Update(func(n int) int { return n + 1 })
			})
		})
		return func() {
			console.Printf("cleanup")
			stop()
		}
	}, hooks.Deps{text})

	return hooks.Fragment(
		hooks.H("p", hooks.Attrs{"id": "num"}, hooks.Textf(num)),
		hooks.H("button", hooks.Attrs{
			"id":      "inc",
			"onClick": func() { setNum.Set(num + 1) },
		}, hooks.Text("+")),
		hooks.H("input", hooks.Attrs{
			"id":      "text",
			"value":   text,
			"onInput": func(v string) { setText.Set(v) },
		}),
	)
})

// Package hooks is a per-instance hook-state and effect-scheduling runtime.
//
// A component is a plain render function. The runtime calls it with a *Ctx
// every time the instance renders; hooks called through that Ctx get slots
// ("cells") that persist between renders, addressed purely by call order:
//
//	var Counter = hooks.Define("Counter", func(c *hooks.Ctx, props CounterProps) hooks.Node {
//	    count, setCount := hooks.UseState(c, 0)
//	    hooks.UseEffect(c, func() hooks.Cleanup {
//	        log.Printf("count is %d", count)
//	        return nil
//	    }, hooks.Deps{count})
//	    return hooks.H("button", hooks.Attrs{
//	        "onClick": func() { setCount.Update(func(n int) int { return n + 1 }) },
//	    }, hooks.Text(strconv.Itoa(count)))
//	})
//
// Hooks must be called unconditionally and in the same order on every render.
// A render that asks for a different sequence of cells fails with
// ErrHookOrder and the instance stops rendering.
//
// # Roots
//
// A Root owns a tree of instances, a Host that receives committed trees, and
// a task queue. Everything except Root.Dispatch must be called from the
// goroutine that owns the root:
//
//	root := hooks.NewRoot(host)
//	root.Render(Counter.El(CounterProps{}))
//	go root.Run(ctx)
//
// # Effects
//
// Layout effects run synchronously after the host has received the commit
// and before the surface is presented. Passive effects are queued on the task
// queue after presenting and always run before the next render pass.
package hooks
